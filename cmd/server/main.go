package main

import (
	"log"
	"net/http"
	"os"

	"fleet_manager/internal/config"
	"fleet_manager/internal/logger"
	"fleet_manager/internal/middleware"
	"fleet_manager/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Setup Gin router (recovery + request logging are attached there)
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Fleet manager API running at :%s", port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+port, handler))
}
