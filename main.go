package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/Divyaeh-iitm/Simpledashboard/app"
	"github.com/Divyaeh-iitm/Simpledashboard/domain/epd"
	"github.com/Divyaeh-iitm/Simpledashboard/internal"
	"github.com/Divyaeh-iitm/Simpledashboard/internal/config"
	"github.com/Divyaeh-iitm/Simpledashboard/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
	internal.DefaultLogger = logger

	analyzer := epd.NewMaterialStatsAnalyzer()
	service := app.NewAnalysisService(analyzer, cfg.Analysis.MaxConcurrent)

	server, err := ui.NewServer(cfg, service)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	if err := server.Run(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
