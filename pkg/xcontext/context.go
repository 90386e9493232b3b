package xcontext

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/greenquest-lab/backend/config"
	"github.com/greenquest-lab/backend/pkg/authenticator"
	"github.com/greenquest-lab/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	httpRequestKey  struct{}
	httpWriterKey   struct{}
	requestUserKey  struct{}
	configsKey      struct{}
	loggerKey       struct{}
	dbKey           struct{}
	dbTxKey         struct{}
	sessionStoreKey struct{}
	tokenEngineKey  struct{}
	startTimeKey    struct{}
)

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	r := ctx.Value(httpRequestKey{})
	if r == nil {
		return nil
	}

	return r.(*http.Request)
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	w := ctx.Value(httpWriterKey{})
	if w == nil {
		return nil
	}

	return w.(http.ResponseWriter)
}

// WithRequestUser stores the identity verified from the access token of the
// current request.
func WithRequestUser(ctx context.Context, user authenticator.User) context.Context {
	return context.WithValue(ctx, requestUserKey{}, user)
}

func RequestUser(ctx context.Context) (authenticator.User, bool) {
	user := ctx.Value(requestUserKey{})
	if user == nil {
		return authenticator.User{}, false
	}

	return user.(authenticator.User), true
}

// WithRequestUserID is a shortcut for WithRequestUser when only the id is
// known.
func WithRequestUserID(ctx context.Context, id string) context.Context {
	return WithRequestUser(ctx, authenticator.User{ID: id})
}

// RequestUserID returns an empty string if the request is anonymous.
func RequestUserID(ctx context.Context) string {
	user, _ := RequestUser(ctx)
	return user.ID
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg := ctx.Value(configsKey{})
	if cfg == nil {
		return config.Configs{}
	}

	return cfg.(config.Configs)
}

func WithLogger(ctx context.Context, logger logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

func Logger(ctx context.Context) logger.Logger {
	l := ctx.Value(loggerKey{})
	if l == nil {
		return logger.NewLogger(logger.SILENCE)
	}

	return l.(logger.Logger)
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the gorm session bound to ctx, so cancellation of the request
// also cancels its queries.
func DB(ctx context.Context) *gorm.DB {
	db := ctx.Value(dbKey{})
	if db == nil {
		return nil
	}

	return db.(*gorm.DB).WithContext(ctx)
}

type dbTransaction struct {
	tx   *gorm.DB
	done bool
}

// WithDBTransaction begins a transaction on the database of ctx. DB on the
// returned context yields the transaction until it is committed or rolled
// back.
func WithDBTransaction(ctx context.Context) context.Context {
	tx := DB(ctx).Begin()
	ctx = context.WithValue(ctx, dbKey{}, tx)
	return context.WithValue(ctx, dbTxKey{}, &dbTransaction{tx: tx})
}

func WithCommitDBTransaction(ctx context.Context) error {
	t, ok := ctx.Value(dbTxKey{}).(*dbTransaction)
	if !ok || t.done {
		return nil
	}

	t.done = true
	return t.tx.Commit().Error
}

// WithRollbackDBTransaction is a no-op once the transaction has been
// committed, so it can always be deferred.
func WithRollbackDBTransaction(ctx context.Context) {
	t, ok := ctx.Value(dbTxKey{}).(*dbTransaction)
	if !ok || t.done {
		return
	}

	t.done = true
	t.tx.Rollback()
}

func WithSessionStore(ctx context.Context, store sessions.Store) context.Context {
	return context.WithValue(ctx, sessionStoreKey{}, store)
}

func SessionStore(ctx context.Context) sessions.Store {
	store := ctx.Value(sessionStoreKey{})
	if store == nil {
		return nil
	}

	return store.(sessions.Store)
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine {
	engine := ctx.Value(tokenEngineKey{})
	if engine == nil {
		return nil
	}

	return engine.(authenticator.TokenEngine)
}

func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

// StartTime returns the zero time if the request start was not recorded.
func StartTime(ctx context.Context) time.Time {
	t, _ := ctx.Value(startTimeKey{}).(time.Time)
	return t
}
