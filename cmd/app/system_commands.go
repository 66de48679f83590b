package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/go-api-starter/cmd/app/commands"
	"github.com/allisson/go-api-starter/internal/app"
	"github.com/allisson/go-api-starter/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				db, err := container.DB()
				if err != nil {
					return err
				}

				return commands.RunMigrations(container.Logger(), db, cfg.DBDriver, cfg.MigrationsPath)
			},
		},
		{
			Name:  "create-secret-key",
			Usage: "Generate a token signing key, optionally encrypted with a KMS key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "kms-key-uri",
					Aliases: []string{"k"},
					Value:   "",
					Usage:   "gocloud.dev secrets keeper URI (gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCreateSecretKey(ctx, commands.DefaultIO(), cmd.String("kms-key-uri"))
			},
		},
	}
}
