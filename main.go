package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/wallet-guard/api-go/config"
	"github.com/wallet-guard/api-go/routes"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg := config.LoadAppConfig()
	if cfg.AdminWallet == "" {
		log.Println("Warning: ADMIN_WALLET is not set, admin verdicts will be rejected")
	}

	// Initialize database
	db := config.InitDB()

	// Create a new Gin router
	r := gin.Default()
	r.HandleMethodNotAllowed = true

	// Add logging middleware
	r.Use(gin.LoggerWithWriter(os.Stdout))

	// Initialize routes
	routes.SetupRoutes(r, db, cfg)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	r.Run(":" + port)
}
