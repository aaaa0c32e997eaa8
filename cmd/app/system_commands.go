package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/hname/cmd/app/commands"
	"github.com/allisson/hname/internal/app"
	"github.com/allisson/hname/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP API and metrics servers",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "down",
					Usage: "Revert every migration instead of applying pending ones",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString, cmd.Bool("down"))
			},
		},
	}
}
