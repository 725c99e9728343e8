package main

import "github.com/osse101/FishBot_Go/internal/config"

type CheckEnvCommand struct{}

func (c *CheckEnvCommand) Name() string { return "check-env" }

func (c *CheckEnvCommand) Description() string {
	return "Validate required environment variables"
}

func (c *CheckEnvCommand) Run(args []string) error {
	PrintHeader("Environment")

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		PrintWarning("%s", w)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Game.Validate(); err != nil {
		return err
	}
	PrintSuccess("Environment looks good (storage: %s)", cfg.Storage)
	return nil
}
