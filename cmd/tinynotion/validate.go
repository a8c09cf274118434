package main

import (
	"context"
	"errors"

	"github.com/steveiliop56/tinynotion/internal/utils"

	"github.com/traefik/paerser/cli"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:          "validate",
		Description:   "Check whether the stored token is still active.",
		Configuration: nil,
		Resources:     nil,
		Run: func(_ []string) error {
			app, err := initApp()

			if err != nil {
				return err
			}

			defer app.Close()

			active, err := app.SessionService().Validate(context.Background())

			if err != nil {
				return err
			}

			if active == nil {
				return errors.New("notion could not confirm the token")
			}

			utils.Log.App.Info().Bool("active", *active).Msg("Token checked")

			return nil
		},
	}
}
