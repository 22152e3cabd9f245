package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/bbenammar-07/analyse-magazin-AXONEDATA/config"
	"github.com/bbenammar-07/analyse-magazin-AXONEDATA/pipeline"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()
	cfg := config.Load()

	if _, err := pipeline.New(cfg).Run(); err != nil {
		log.Printf("❌ Extraction failed: %v", err)
		os.Exit(1)
	}
}
