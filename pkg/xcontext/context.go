package xcontext

import (
	"context"
	"net/http"
	"time"

	"github.com/nasalinha/backend/config"
	"github.com/nasalinha/backend/pkg/authenticator"
	"github.com/nasalinha/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	dbKey          struct{}
	dbTxKey        struct{}
	loggerKey      struct{}
	configsKey     struct{}
	tokenEngineKey struct{}
	httpRequestKey struct{}
	requestUserKey struct{}
	startTimeKey   struct{}
	errorKey       struct{}
)

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the transaction began by WithDBTransaction if any, otherwise the
// root database handle.
func DB(ctx context.Context) *gorm.DB {
	if holder, ok := ctx.Value(dbTxKey{}).(*txHolder); ok && !holder.done {
		return holder.tx
	}

	return ctx.Value(dbKey{}).(*gorm.DB)
}

type txHolder struct {
	tx   *gorm.DB
	done bool
}

// WithDBTransaction begins a database transaction and makes DB return it
// until the transaction is committed or rolled back.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, dbTxKey{}, &txHolder{tx: DB(ctx).Begin()})
}

// WithCommitDBTransaction commits the current transaction. It is a no-op if
// the transaction already completed.
func WithCommitDBTransaction(ctx context.Context) {
	if holder, ok := ctx.Value(dbTxKey{}).(*txHolder); ok && !holder.done {
		holder.tx.Commit()
		holder.done = true
	}
}

// WithRollbackDBTransaction rollbacks the current transaction. Safe to defer
// unconditionally after WithDBTransaction.
func WithRollbackDBTransaction(ctx context.Context) {
	if holder, ok := ctx.Value(dbTxKey{}).(*txHolder); ok && !holder.done {
		holder.tx.Rollback()
		holder.done = true
	}
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	return ctx.Value(loggerKey{}).(logger.Logger)
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	return ctx.Value(configsKey{}).(config.Configs)
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine {
	return ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine)
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	return ctx.Value(httpRequestKey{}).(*http.Request)
}

func WithRequestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, requestUserKey{}, userID)
}

// RequestUserID returns the authenticated user id resolved by the auth
// middleware, or an empty string for anonymous requests.
func RequestUserID(ctx context.Context) string {
	if id, ok := ctx.Value(requestUserKey{}).(string); ok {
		return id
	}

	return ""
}

func WithStartTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, startTimeKey{}, t)
}

func StartTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(startTimeKey{}).(time.Time); ok {
		return t
	}

	return time.Time{}
}

type errorHolder struct {
	err error
}

// WithErrorHolder prepares a slot the router uses to expose the handler error
// to closers. Called once per request by the router.
func WithErrorHolder(ctx context.Context) context.Context {
	return context.WithValue(ctx, errorKey{}, &errorHolder{})
}

func SetError(ctx context.Context, err error) {
	if holder, ok := ctx.Value(errorKey{}).(*errorHolder); ok {
		holder.err = err
	}
}

func Error(ctx context.Context) error {
	if holder, ok := ctx.Value(errorKey{}).(*errorHolder); ok {
		return holder.err
	}

	return nil
}
