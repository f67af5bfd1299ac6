package main

import (
	"net/http"
	"os"

	"github.com/s-soya2421/muscle-pal-sub000/internal/api"
	"github.com/s-soya2421/muscle-pal-sub000/internal/config"
	"github.com/s-soya2421/muscle-pal-sub000/internal/database"
	"github.com/s-soya2421/muscle-pal-sub000/internal/handler"
	"github.com/s-soya2421/muscle-pal-sub000/internal/logger"
	"github.com/s-soya2421/muscle-pal-sub000/internal/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// Wire services
	handler.Init(cfg)

	// Initialize routes
	router := api.SetupRouter()

	// Wrap router with CORS middleware
	h := middleware.CORSMiddleware(router)

	// Start server
	logger.Success("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, h); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
