package loaders

import (
	"fmt"
	"os"

	"github.com/steveiliop56/tinynotion/internal/config"

	"github.com/traefik/paerser/cli"
	"github.com/traefik/paerser/env"
)

type EnvLoader struct{}

func (e *EnvLoader) Load(_ []string, cmd *cli.Command) (bool, error) {
	return LoadEnv(cmd.Configuration)
}

// LoadEnv decodes the TINYNOTION_ prefixed environment variables into element
func LoadEnv(element any) (bool, error) {
	vars := env.FindPrefixedEnvVars(os.Environ(), config.DefaultNamePrefix, element)
	if len(vars) == 0 {
		return false, nil
	}

	if err := env.Decode(vars, config.DefaultNamePrefix, element); err != nil {
		return false, fmt.Errorf("failed to decode configuration from environment variables: %w", err)
	}

	return true, nil
}
