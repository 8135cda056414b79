package middleware

import (
	"context"
	"strings"

	"github.com/nasalinha/backend/internal/model"
	"github.com/nasalinha/backend/pkg/errorx"
	"github.com/nasalinha/backend/pkg/router"
	"github.com/nasalinha/backend/pkg/xcontext"
)

// NewAuthVerifier resolves the caller identity from the Authorization header
// or the access token cookie and records it in the context. Requests without
// a valid token are rejected.
func NewAuthVerifier() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := getAccessToken(ctx)
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to login before")
		}

		var info model.AccessToken
		if err := xcontext.TokenEngine(ctx).Verify(token, &info); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify the access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid or expired token")
		}

		return xcontext.WithRequestUserID(ctx, info.ID), nil
	}
}

func getAccessToken(ctx context.Context) string {
	r := xcontext.HTTPRequest(ctx)

	authorization := r.Header.Get("Authorization")
	if strings.HasPrefix(authorization, "Bearer ") {
		return strings.TrimPrefix(authorization, "Bearer ")
	}

	cookie, err := r.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
