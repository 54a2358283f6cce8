package main

import (
	"log"
	"net/http"

	"dechets_ko/internal/config"
	"dechets_ko/internal/logger"
	"dechets_ko/internal/middleware"
	"dechets_ko/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database and run migrations
	config.InitDB()

	// Setup Gin router
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Println("🚀 Server running at :8080")
	log.Fatal(http.ListenAndServe("0.0.0.0:8080", handler))
}
