package router

import (
	"context"
	"net/http"

	"github.com/nasalinha/backend/config"
	"github.com/nasalinha/backend/pkg/authenticator"
	"github.com/nasalinha/backend/pkg/logger"
	"gorm.io/gorm"
)

// HandlerFunc is the shape of every endpoint. The request is bound from the
// query string (GET) or the JSON body (POST) before the handler runs.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can replace the context by
// returning a non-nil one, or abort the request by returning an error.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc always runs after the response is written, even on error.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux         *http.ServeMux
	cfg         config.Configs
	db          *gorm.DB
	logger      logger.Logger
	tokenEngine authenticator.TokenEngine

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	return &Router{
		mux:         http.NewServeMux(),
		cfg:         cfg,
		db:          db,
		logger:      logger,
		tokenEngine: authenticator.NewTokenEngine(cfg.Auth.TokenSecret),
	}
}

// Branch returns a router sharing the same mux but with its own middleware
// chain, seeded from the current one.
func (r *Router) Branch() *Router {
	return &Router{
		mux:         r.mux,
		cfg:         r.cfg,
		db:          r.db,
		logger:      r.logger,
		tokenEngine: r.tokenEngine,
		befores:     append([]MiddlewareFunc{}, r.befores...),
		afters:      append([]MiddlewareFunc{}, r.afters...),
		closers:     append([]CloserFunc{}, r.closers...),
	}
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) After(m MiddlewareFunc) {
	r.afters = append(r.afters, m)
}

func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append(r.closers, c)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}
