package main

import (
	"fmt"

	"github.com/osse101/FishBot_Go/internal/catalog"
)

type ValidateCatalogCommand struct{}

func (c *ValidateCatalogCommand) Name() string { return "validate-catalog" }

func (c *ValidateCatalogCommand) Description() string {
	return "Validate a catalog JSON file (default: embedded catalog)"
}

func (c *ValidateCatalogCommand) Run(args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	PrintHeader("Validating catalog")

	loader, err := catalog.NewLoader()
	if err != nil {
		return err
	}
	if _, err := loader.Load(path); err != nil {
		return fmt.Errorf("catalog invalid: %w", err)
	}

	if path == "" {
		path = "embedded"
	}
	PrintInfo("Source: %s", path)
	PrintSuccess("Catalog is valid")
	return nil
}
