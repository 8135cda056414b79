package middleware

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/nasalinha/backend/internal/common"
	"github.com/nasalinha/backend/pkg/errorx"
	"github.com/nasalinha/backend/pkg/router"
	"github.com/nasalinha/backend/pkg/xcontext"
)

// Prometheus records the request counter and latency histogram.
func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		r := xcontext.HTTPRequest(ctx)

		code := 0
		if err := xcontext.Error(ctx); err != nil {
			var errx errorx.Error
			if !errors.As(err, &errx) {
				errx = errorx.Unknown
			}

			code = int(errx.Code)
		}

		common.PromHTTPRequestTotal.
			WithLabelValues(r.URL.Path, strconv.Itoa(code)).
			Inc()

		common.PromHTTPRequestDuration.
			WithLabelValues(r.URL.Path).
			Observe(time.Since(xcontext.StartTime(ctx)).Seconds())
	}
}
