package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/hname/cmd/app/commands"
	"github.com/allisson/hname/internal/app"
	"github.com/allisson/hname/internal/config"
)

func getHNameCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "hash",
			Usage:     "Print the hname of each name (no database needed)",
			ArgsUsage: "[name...]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "file",
					Usage: "Read additional names from a file, one per line ('-' for stdin)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunHash(commands.DefaultIO(), cmd.Args().Slice(), cmd.String("file"), cmd.String("format"))
			},
		},
		{
			Name:  "register",
			Usage: "Register a name in the registry",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Name to register",
				},
				&cli.StringFlag{
					Name:    "kind",
					Aliases: []string{"k"},
					Value:   "function",
					Usage:   "One of contract, function, view, field, event",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.RegistryUseCase()
				if err != nil {
					return err
				}

				return commands.RunRegister(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.String("kind"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "resolve",
			Usage: "Look up the registered name of an hname",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "hname",
					Aliases:  []string{"x"},
					Required: true,
					Usage:    "Hex hname, '0x' prefix optional",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.RegistryUseCase()
				if err != nil {
					return err
				}

				return commands.RunResolve(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("hname"),
					cmd.String("format"),
				)
			},
		},
	}
}
