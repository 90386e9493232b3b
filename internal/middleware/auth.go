package middleware

import (
	"context"
	"strings"

	"github.com/greenquest-lab/backend/pkg/authenticator"
	"github.com/greenquest-lab/backend/pkg/errorx"
	"github.com/greenquest-lab/backend/pkg/router"
	"github.com/greenquest-lab/backend/pkg/xcontext"
)

// VerifyAccessToken identifies the user of the request. The access token is
// read from the Authorization header, then from the session cookie. Requests
// without a valid token continue anonymously.
func VerifyAccessToken() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := bearerToken(ctx)
		if token == "" {
			token = sessionToken(ctx)
		}

		if token == "" {
			return ctx, nil
		}

		engine := xcontext.TokenEngine(ctx)
		if engine == nil {
			return ctx, nil
		}

		var user authenticator.User
		if err := engine.Verify(token, &user); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return ctx, nil
		}

		if user.ID == "" {
			return ctx, nil
		}

		return xcontext.WithRequestUser(ctx, user), nil
	}
}

func Authenticate(ctx context.Context) (context.Context, error) {
	if xcontext.RequestUserID(ctx) == "" {
		return ctx, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	return ctx, nil
}

func bearerToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return ""
	}

	scheme, token, found := strings.Cut(req.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}

func sessionToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	store := xcontext.SessionStore(ctx)
	if req == nil || store == nil {
		return ""
	}

	cfg := xcontext.Configs(ctx)
	session, err := store.Get(req, cfg.Session.Name)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get session: %v", err)
		return ""
	}

	token, _ := session.Values[cfg.Auth.AccessToken.Name].(string)
	return token
}
