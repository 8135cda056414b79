package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/nasalinha/backend/internal/entity"
	"github.com/nasalinha/backend/internal/repository"
	"github.com/nasalinha/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

type GlobalRoleVerifier struct {
	userRepo repository.UserRepository
}

func NewGlobalRoleVerifier(userRepo repository.UserRepository) *GlobalRoleVerifier {
	return &GlobalRoleVerifier{userRepo: userRepo}
}

func (verifier *GlobalRoleVerifier) Verify(ctx context.Context, requiredRoles ...entity.GlobalRole) error {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return errors.New("not authenticated yet")
	}

	user, err := verifier.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !slices.Contains(requiredRoles, user.Role) {
		return fmt.Errorf("user role %s is not allowed", user.Role)
	}

	return nil
}
