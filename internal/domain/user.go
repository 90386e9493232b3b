package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/greenquest-lab/backend/internal/common"
	"github.com/greenquest-lab/backend/internal/entity"
	"github.com/greenquest-lab/backend/internal/model"
	"github.com/greenquest-lab/backend/internal/repository"
	"github.com/greenquest-lab/backend/pkg/authenticator"
	"github.com/greenquest-lab/backend/pkg/errorx"
	"github.com/greenquest-lab/backend/pkg/xcontext"
	"github.com/greenquest-lab/backend/pkg/xredis"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	SetSession(context.Context, *model.SetSessionRequest) (*model.SetSessionResponse, error)
	SignOut(context.Context, *model.SignOutRequest) (*model.SignOutResponse, error)
}

type userDomain struct {
	profileRepo repository.ProfileRepository
	redisClient xredis.Client
}

func NewUserDomain(profileRepo repository.ProfileRepository, redisClient xredis.Client) *userDomain {
	return &userDomain{profileRepo: profileRepo, redisClient: redisClient}
}

func (d *userDomain) GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error) {
	user, ok := xcontext.RequestUser(ctx)
	if !ok {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	profile, err := d.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get profile: %v", err)
			return nil, errorx.Unknown
		}

		profile = &entity.Profile{UserID: user.ID}
	}

	return &model.GetMeResponse{
		User:    model.User{ID: user.ID, Email: user.Email},
		Profile: model.ConvertProfile(profile),
	}, nil
}

// SetSession verifies an access token issued by the identity provider and
// keeps it in the session cookie. The first session of a user creates the
// profile shown on the leaderboard.
func (d *userDomain) SetSession(
	ctx context.Context, req *model.SetSessionRequest,
) (*model.SetSessionResponse, error) {
	if req.AccessToken == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty access token")
	}

	var user authenticator.User
	if err := xcontext.TokenEngine(ctx).Verify(req.AccessToken, &user); err != nil || user.ID == "" {
		xcontext.Logger(ctx).Debugf("Invalid access token: %v", err)
		return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
	}

	cfg := xcontext.Configs(ctx)
	if err := d.saveSession(ctx, map[any]any{cfg.Auth.AccessToken.Name: req.AccessToken}, 0); err != nil {
		return nil, err
	}

	_, err := d.profileRepo.GetByUserID(ctx, user.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = d.profileRepo.Upsert(ctx, &entity.Profile{
			UserID:      user.ID,
			DisplayName: displayName(user.Email),
		})
		if err == nil {
			common.InvalidateSnapshots(ctx, d.redisClient, common.RedisKeyLeaderBoard)
		}
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot prepare profile of user %s: %v", user.ID, err)
		return nil, errorx.Unknown
	}

	return &model.SetSessionResponse{User: model.User{ID: user.ID, Email: user.Email}}, nil
}

func (d *userDomain) SignOut(ctx context.Context, req *model.SignOutRequest) (*model.SignOutResponse, error) {
	if err := d.saveSession(ctx, nil, -1); err != nil {
		return nil, err
	}

	return &model.SignOutResponse{}, nil
}

// saveSession replaces the values of the session cookie. A negative maxAge
// deletes the cookie.
func (d *userDomain) saveSession(ctx context.Context, values map[any]any, maxAge int) error {
	req, w := xcontext.HTTPRequest(ctx), xcontext.HTTPWriter(ctx)
	store := xcontext.SessionStore(ctx)
	if req == nil || w == nil || store == nil {
		xcontext.Logger(ctx).Errorf("Session is not available in this context")
		return errorx.Unknown
	}

	cfg := xcontext.Configs(ctx)
	session, err := store.Get(req, cfg.Session.Name)
	if err != nil {
		// A cookie signed by an old secret is replaced by a fresh session.
		xcontext.Logger(ctx).Debugf("Cannot decode session: %v", err)
	}

	session.Values = map[any]any{}
	for k, v := range values {
		session.Values[k] = v
	}

	session.Options.MaxAge = maxAge
	if maxAge == 0 {
		session.Options.MaxAge = int(cfg.Auth.AccessToken.Expiration.Seconds())
	}

	if err := session.Save(req, w); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save session: %v", err)
		return errorx.Unknown
	}

	return nil
}

func displayName(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}
