package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"invoicedesk/cmd"
	"invoicedesk/internal/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Commands reconfigure the logger once their config is loaded
	if err := logger.Setup(logger.DefaultConfig()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	log := logger.WithComponent("main")
	log.Debug().Msg("Starting invoicedesk")

	cmd.Execute()

	log.Debug().Msg("invoicedesk shutdown")
	os.Exit(0)
}
