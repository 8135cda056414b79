package main

import (
	"github.com/nasalinha/backend/migration"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cliCtx *cli.Context) error {
	s.loadAll(cliCtx)
	return migration.Migrate(s.ctx)
}
