package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/steveiliop56/tinynotion/internal/service"
	"github.com/steveiliop56/tinynotion/internal/utils"

	"github.com/charmbracelet/huh"
	"github.com/traefik/paerser/cli"
)

type LoginConfig struct {
	Interactive bool   `description:"Enter the authorization code interactively."`
	Code        string `description:"Authorization code from the Notion redirect."`
}

func NewLoginConfig() *LoginConfig {
	return &LoginConfig{
		Interactive: false,
		Code:        "",
	}
}

func loginCmd() *cli.Command {
	tCfg := NewLoginConfig()

	loaders := []cli.ResourceLoader{
		&cli.FlagLoader{},
	}

	return &cli.Command{
		Name:          "login",
		Description:   "Exchange an authorization code for a Notion token.",
		Configuration: tCfg,
		Resources:     loaders,
		Run: func(_ []string) error {
			if tCfg.Interactive {
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().Title("Authorization code").Value(&tCfg.Code).Validate((func(s string) error {
							if s == "" {
								return errors.New("code cannot be empty")
							}
							return nil
						})),
					),
				)

				var baseTheme *huh.Theme = huh.ThemeBase()

				err := form.WithTheme(baseTheme).Run()

				if err != nil {
					return fmt.Errorf("failed to run interactive prompt: %w", err)
				}
			}

			if tCfg.Code == "" {
				return errors.New("code cannot be empty")
			}

			app, err := initApp()

			if err != nil {
				return err
			}

			defer app.Close()

			ctx := context.Background()
			session := app.SessionService()

			_, err = session.Login(ctx, tCfg.Code)

			if errors.Is(err, service.ErrNoToken) {
				return errors.New("notion did not accept the authorization code")
			}

			if err != nil {
				return err
			}

			user, err := session.CurrentUser(ctx)

			if err != nil {
				return err
			}

			utils.Log.App.Info().Str("id", user.ID).Str("name", user.Name).Str("email", user.Email).Msg("Logged in")

			return nil
		},
	}
}
