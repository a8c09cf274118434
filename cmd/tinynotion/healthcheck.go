package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/steveiliop56/tinynotion/internal/utils"

	"github.com/traefik/paerser/cli"
)

type healthzResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func healthcheckCmd() *cli.Command {
	return &cli.Command{
		Name:          "healthcheck",
		Description:   "Perform a health check",
		Configuration: nil,
		Resources:     nil,
		AllowArg:      true,
		Run: func(args []string) error {
			cfg, err := loadAppConfig()

			if err != nil {
				return err
			}

			utils.NewSimpleLogger().Init()

			appUrl := fmt.Sprintf("http://%s:%d", cfg.Server.Address, cfg.Server.Port)

			if len(args) > 0 {
				appUrl = args[0]
			}

			utils.Log.App.Info().Str("app_url", appUrl).Msg("Performing health check")

			client := http.Client{
				Timeout: 30 * time.Second,
			}

			req, err := http.NewRequest("GET", appUrl+"/api/healthz", nil)

			if err != nil {
				return fmt.Errorf("failed to create request: %w", err)
			}

			resp, err := client.Do(req)

			if err != nil {
				return fmt.Errorf("failed to perform request: %w", err)
			}

			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("service is not healthy, got: %s", resp.Status)
			}

			var healthResp healthzResponse

			body, err := io.ReadAll(resp.Body)

			if err != nil {
				return fmt.Errorf("failed to read response: %w", err)
			}

			err = json.Unmarshal(body, &healthResp)

			if err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}

			utils.Log.App.Info().Interface("response", healthResp).Msg("tinynotion is healthy")

			return nil
		},
	}
}
