package main

import (
	"context"

	"github.com/steveiliop56/tinynotion/internal/utils"

	"github.com/traefik/paerser/cli"
)

func whoamiCmd() *cli.Command {
	return &cli.Command{
		Name:          "whoami",
		Description:   "Show the stored Notion user.",
		Configuration: nil,
		Resources:     nil,
		Run: func(_ []string) error {
			app, err := initApp()

			if err != nil {
				return err
			}

			defer app.Close()

			user, err := app.SessionService().CurrentUser(context.Background())

			if err != nil {
				return err
			}

			utils.Log.App.Info().Str("id", user.ID).Str("name", user.Name).Str("email", user.Email).Str("image", user.Image).Msg("Current user")

			return nil
		},
	}
}
