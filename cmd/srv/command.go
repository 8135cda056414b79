package main

import (
	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	server := &srv{}

	return &cli.App{
		Name:  "nasalinha",
		Usage: "Check-in tracker backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path of the toml configuration file",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "api",
				Usage:  "Start the api server",
				Action: server.startApi,
			},
			{
				Name:   "migrate",
				Usage:  "Migrate the database schema",
				Action: server.startMigrate,
			},
			{
				Name:   "seed",
				Usage:  "Insert the initial users and season",
				Action: server.startSeed,
			},
		},
	}
}
