// Package main is the entry point for the assetpack CLI.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/assetpack/internal/telemetry"
)

func main() {
	// Load .env file for local development. Not fatal - env vars might be
	// set directly.
	_ = godotenv.Load()

	ctx := context.Background()

	// Initialize telemetry only when an exporter endpoint is configured,
	// the CLI is useful without any collector
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	Execute()
}
