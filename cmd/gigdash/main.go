package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/gigdash/cmd/gigdash/internal/cli"
)

func main() {
	_ = godotenv.Load()

	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
