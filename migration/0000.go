package migration

import (
	"context"

	"github.com/nasalinha/backend/internal/entity"
)

// migrate0000 creates the database with the initial version of every table.
func migrate0000(ctx context.Context) error {
	return entity.MigrateTable(ctx)
}
