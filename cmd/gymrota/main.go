package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/2beens/gymrota/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	// secrets may live in a local .env file, missing file is fine
	_ = godotenv.Load()

	cli.SetVersionInfo(version, commit)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
