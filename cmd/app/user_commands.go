package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/go-api-starter/cmd/app/commands"
	"github.com/allisson/go-api-starter/internal/app"
	"github.com/allisson/go-api-starter/internal/config"
)

func getUserCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-user",
			Usage: "Create a user, prompting for the password when it is not given",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Username (3-50 characters)",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Email address",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Value:   "",
					Usage:   "Password; read from stdin when omitted",
				},
				&cli.BoolFlag{
					Name:  "admin",
					Value: false,
					Usage: "Grant administrator privileges",
				},
				&cli.BoolFlag{
					Name:  "active",
					Value: true,
					Usage: "Create the account enabled (--active=false to create it disabled)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateUser(
					ctx,
					userUseCase,
					container.Logger(),
					commands.DefaultIO(),
					commands.CreateUserParams{
						Username: cmd.String("username"),
						Email:    cmd.String("email"),
						Password: cmd.String("password"),
						IsActive: cmd.Bool("active"),
						IsAdmin:  cmd.Bool("admin"),
					},
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "set-user-status",
			Usage: "Activate, deactivate, promote or demote a user",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Username of the account to change",
				},
				&cli.BoolFlag{
					Name:  "active",
					Usage: "Set the active flag (--active or --active=false)",
				},
				&cli.BoolFlag{
					Name:  "admin",
					Usage: "Set the admin flag (--admin or --admin=false)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				var isActive, isAdmin *bool
				if cmd.IsSet("active") {
					v := cmd.Bool("active")
					isActive = &v
				}
				if cmd.IsSet("admin") {
					v := cmd.Bool("admin")
					isAdmin = &v
				}

				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				return commands.RunSetUserStatus(
					ctx,
					userUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("username"),
					isActive,
					isAdmin,
					cmd.String("format"),
				)
			},
		},
	}
}
