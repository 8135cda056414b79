package middleware

import (
	"context"
	"time"

	"github.com/nasalinha/backend/pkg/router"
	"github.com/nasalinha/backend/pkg/xcontext"
)

// Logger writes one line per request after it completes.
func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		r := xcontext.HTTPRequest(ctx)
		elapsed := time.Since(xcontext.StartTime(ctx))

		if err := xcontext.Error(ctx); err != nil {
			xcontext.Logger(ctx).Warnf("%s %s (%s): %v", r.Method, r.URL.Path, elapsed, err)
			return
		}

		xcontext.Logger(ctx).Infof("%s %s (%s)", r.Method, r.URL.Path, elapsed)
	}
}
