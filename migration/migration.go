package migration

import (
	"context"

	"github.com/nasalinha/backend/internal/entity"
	"github.com/nasalinha/backend/pkg/xcontext"
)

type migrator struct {
	version string
	migrate func(context.Context) error
}

// Migrators run in order. Append a new entry for every schema change; never
// edit an applied one.
var migrators = []migrator{
	{"0000", migrate0000},
}

// Migrate applies every pending migrator and records its version.
func Migrate(ctx context.Context) error {
	if err := xcontext.DB(ctx).AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	for _, m := range migrators {
		var count int64
		err := xcontext.DB(ctx).
			Model(&entity.Migration{}).
			Where("version=?", m.version).
			Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			continue
		}

		xcontext.Logger(ctx).Infof("Applying migration %s", m.version)
		if err := m.migrate(ctx); err != nil {
			return err
		}

		err = xcontext.DB(ctx).Create(&entity.Migration{Version: m.version}).Error
		if err != nil {
			return err
		}
	}

	return nil
}
