package main

import (
	"context"

	"github.com/steveiliop56/tinynotion/internal/utils"

	"github.com/traefik/paerser/cli"
)

func logoutCmd() *cli.Command {
	return &cli.Command{
		Name:          "logout",
		Description:   "Revoke the stored token and forget the user.",
		Configuration: nil,
		Resources:     nil,
		Run: func(_ []string) error {
			app, err := initApp()

			if err != nil {
				return err
			}

			defer app.Close()

			err = app.SessionService().Logout(context.Background())

			if err != nil {
				return err
			}

			utils.Log.App.Info().Msg("Logged out")

			return nil
		},
	}
}
