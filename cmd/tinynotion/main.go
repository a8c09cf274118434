package main

import (
	"fmt"

	"github.com/steveiliop56/tinynotion/internal/bootstrap"
	"github.com/steveiliop56/tinynotion/internal/config"
	"github.com/steveiliop56/tinynotion/internal/utils"
	"github.com/steveiliop56/tinynotion/internal/utils/loaders"

	"github.com/rs/zerolog/log"
	"github.com/traefik/paerser/cli"
)

func main() {
	tConfig := config.NewDefaultConfiguration()

	loaders := []cli.ResourceLoader{
		&loaders.FileLoader{},
		&loaders.FlagLoader{},
		&loaders.EnvLoader{},
	}

	cmdTinynotion := &cli.Command{
		Name:          "tinynotion",
		Description:   "Log in with Notion and keep the session locally.",
		Configuration: tConfig,
		Resources:     loaders,
		Run: func(_ []string) error {
			return runCmd(*tConfig)
		},
	}

	subcommands := []*cli.Command{
		versionCmd(),
		healthcheckCmd(),
		urlCmd(),
		loginCmd(),
		validateCmd(),
		logoutCmd(),
		whoamiCmd(),
	}

	for _, subcommand := range subcommands {
		err := cmdTinynotion.AddCommand(subcommand)

		if err != nil {
			log.Fatal().Err(err).Msgf("Failed to add %s command", subcommand.Name)
		}
	}

	err := cli.Execute(cmdTinynotion)

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to execute command")
	}
}

func runCmd(cfg config.Config) error {
	utils.NewLogger(cfg.Log).Init()

	utils.Log.App.Info().Str("version", config.Version).Msg("Starting tinynotion")

	app := bootstrap.NewBootstrapApp(cfg)

	err := app.Setup()

	if err != nil {
		return fmt.Errorf("failed to bootstrap app: %w", err)
	}

	return nil
}

// loadAppConfig reads the main configuration for subcommands, which only
// parse their own flags
func loadAppConfig() (*config.Config, error) {
	cfg := config.NewDefaultConfiguration()

	_, err := loaders.LoadEnv(cfg)

	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func initApp() (*bootstrap.BootstrapApp, error) {
	cfg, err := loadAppConfig()

	if err != nil {
		return nil, err
	}

	utils.NewLogger(cfg.Log).Init()

	app := bootstrap.NewBootstrapApp(*cfg)

	err = app.Init()

	if err != nil {
		return nil, fmt.Errorf("failed to bootstrap app: %w", err)
	}

	return app, nil
}
