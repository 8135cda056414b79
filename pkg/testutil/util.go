package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nasalinha/backend/config"
	"github.com/nasalinha/backend/internal/entity"
	"github.com/nasalinha/backend/pkg/authenticator"
	"github.com/nasalinha/backend/pkg/logger"
	"github.com/nasalinha/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MockContext builds a context backed by an in-memory database with the full
// schema migrated and the fixture rows inserted.
func MockContext(t *testing.T) context.Context {
	// A named shared in-memory database keeps every pooled connection of
	// this test on the same schema.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	// sqlite allows a single writer; one pooled connection serializes the
	// concurrent paths the tests drive instead of surfacing lock errors.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	cfg := MockConfigs()

	ctx := context.Background()
	ctx = xcontext.WithDB(ctx, db)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))

	require.NoError(t, entity.MigrateTable(ctx))
	InsertFixtures(t, ctx)

	return ctx
}

// MockContextWithUserID is MockContext plus an authenticated caller.
func MockContextWithUserID(t *testing.T, userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(t), userID)
}

func MockConfigs() config.Configs {
	return config.Configs{
		Env: "testing",
		ApiServer: config.APIServerConfigs{
			DefaultLimit: 10,
			MaxLimit:     50,
		},
		Auth: config.AuthConfigs{
			TokenSecret: "testing-secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: time.Hour,
			},
			RefreshToken: config.TokenConfigs{
				Name:       "refresh_token",
				Expiration: 24 * time.Hour,
			},
			PasswordReset: config.TokenConfigs{
				Name:       "password_reset",
				Expiration: time.Hour,
			},
		},
		File: config.FileConfigs{
			MaxSize:       2 * 1024 * 1024,
			CheckInBucket: "checkin",
		},
		Email: config.EmailConfigs{
			From:        "nasalinha@example.com",
			FrontendURL: "http://localhost:3000",
		},
	}
}
