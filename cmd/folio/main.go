package main

import (
	"github.com/joho/godotenv"

	"github.com/folio-labs/folio-cli/internal/adapters/driving/cli"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	// A .env file is optional; environment variables win either way.
	_ = godotenv.Load()
	cli.Execute(version)
}
