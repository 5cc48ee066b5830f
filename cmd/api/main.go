package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopello/shopello-golang/internal/database"
	"github.com/shopello/shopello-golang/internal/handlers"
	"github.com/shopello/shopello-golang/internal/routes"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// 1. --- Database Connection ---
	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// 2. --- Schema & Super Admin Bootstrap ---
	if err := database.InitSchema(db); err != nil {
		log.Fatalf("Failed to initialize database schema: %v", err)
	}
	if err := database.EnsureSuperAdmin(db); err != nil {
		log.Fatalf("Failed to bootstrap super admin: %v", err)
	}

	// 3. --- Application Setup ---
	app := handlers.New(db)
	router := routes.SetupRouter(app)

	// 4. --- Start Server ---
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting Shopello API server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
