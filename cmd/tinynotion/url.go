package main

import (
	"fmt"

	"github.com/traefik/paerser/cli"
)

func urlCmd() *cli.Command {
	return &cli.Command{
		Name:          "url",
		Description:   "Print the Notion authorization URL.",
		Configuration: nil,
		Resources:     nil,
		Run: func(_ []string) error {
			app, err := initApp()

			if err != nil {
				return err
			}

			defer app.Close()

			notion := app.NotionOAuthService()

			authURL, err := notion.GetAuthURL(notion.GenerateState())

			if err != nil {
				return fmt.Errorf("failed to build auth url: %w", err)
			}

			fmt.Println(authURL)

			return nil
		},
	}
}
