package entity

import (
	"context"

	"github.com/nasalinha/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Season{},
		&CheckIn{},
		&Point{},
		&RefreshToken{},
		&File{},
		&Migration{},
	)
}
