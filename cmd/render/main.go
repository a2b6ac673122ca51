// Command render expands auto-gallery placeholders in a content file without
// starting the HTTP server.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"autogallery/pkg/logger"
)

func main() {
	logger.Init()
	logger.SetOutput(os.Stderr)

	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using environment variables", nil)
	}

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
