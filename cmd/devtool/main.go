package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	registry := NewRegistry()
	registry.Register(&CheckEnvCommand{})
	registry.Register(&WaitForDBCommand{})
	registry.Register(&MigrateCommand{})
	registry.Register(&HealthCheckCommand{})
	registry.Register(&ValidateCatalogCommand{})

	if len(os.Args) < 2 {
		registry.PrintHelp()
		os.Exit(1)
	}

	cmd, ok := registry.Get(os.Args[1])
	if !ok {
		PrintError("Unknown command: %s", os.Args[1])
		registry.PrintHelp()
		os.Exit(1)
	}

	if err := cmd.Run(os.Args[2:]); err != nil {
		PrintError("%s failed: %v", cmd.Name(), err)
		os.Exit(1)
	}
}
