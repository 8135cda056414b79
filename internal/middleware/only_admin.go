package middleware

import (
	"context"

	"github.com/nasalinha/backend/internal/common"
	"github.com/nasalinha/backend/internal/entity"
	"github.com/nasalinha/backend/internal/repository"
	"github.com/nasalinha/backend/pkg/errorx"
	"github.com/nasalinha/backend/pkg/router"
	"github.com/nasalinha/backend/pkg/xcontext"
)

// NewOnlyAdmin allows only users with the global admin role past this point.
func NewOnlyAdmin(userRepo repository.UserRepository) router.MiddlewareFunc {
	verifier := common.NewGlobalRoleVerifier(userRepo)

	return func(ctx context.Context) (context.Context, error) {
		if err := verifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
			xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}

		return nil, nil
	}
}
