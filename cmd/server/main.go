package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/agenthands/resolve/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	srv := server.NewServer()
	router := srv.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = srv.Port
	}

	log.Printf("Starting resolution server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
