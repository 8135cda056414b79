package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/nasalinha/backend/internal/entity"
	"github.com/nasalinha/backend/pkg/crypto"
	"github.com/nasalinha/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

// Plaintext password of every fixture user.
const Password = "senha123"

var (
	Admin = &entity.User{
		Base:     entity.Base{ID: "user-admin"},
		Name:     "Admin",
		Email:    "admin@nasalinha.com",
		Role:     entity.RoleAdmin,
		IsActive: true,
	}

	Member = &entity.User{
		Base:     entity.Base{ID: "user-member"},
		Name:     "Membro",
		Email:    "membro@nasalinha.com",
		Role:     entity.RoleMember,
		IsActive: true,
	}

	Trainee = &entity.User{
		Base:     entity.Base{ID: "user-trainee"},
		Name:     "Trainee",
		Email:    "trainee@nasalinha.com",
		Role:     entity.RoleTrainee,
		IsActive: true,
	}

	ActiveSeason = &entity.Season{
		Base:             entity.Base{ID: "season-active"},
		Name:             "Temporada 2025.1",
		Description:      "Primeira temporada do ano",
		StartDate:        time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
		PointsPerCheckIn: 10,
		IsActive:         true,
	}

	PastSeason = &entity.Season{
		Base:             entity.Base{ID: "season-past"},
		Name:             "Temporada 2024.2",
		StartDate:        time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC),
		PointsPerCheckIn: 5,
		IsActive:         false,
	}
)

func InsertFixtures(t *testing.T, ctx context.Context) {
	hashed, err := crypto.HashPassword(Password)
	require.NoError(t, err)

	for _, user := range []*entity.User{Admin, Member, Trainee} {
		u := *user
		u.Password = hashed
		require.NoError(t, xcontext.DB(ctx).Create(&u).Error)
	}

	for _, season := range []*entity.Season{ActiveSeason, PastSeason} {
		s := *season
		require.NoError(t, xcontext.DB(ctx).Create(&s).Error)
	}
}
