package main

import (
	"context"
	"log"

	"github.com/Rituchoudhary67/Community-Feed/internal/router"
	"github.com/Rituchoudhary67/Community-Feed/pkg/config"
	"github.com/Rituchoudhary67/Community-Feed/pkg/firebase"
	"github.com/Rituchoudhary67/Community-Feed/validators"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.CloseDB(db)

	// Firebase auth is optional; local JWT auth works without it
	var authClient *firebaseauth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		authClient = firebaseApp.AuthClient
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db, authClient)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
