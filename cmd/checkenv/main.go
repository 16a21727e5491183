package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/xyz-asif/travlr/internal/config"
	"github.com/xyz-asif/travlr/internal/database"
	"github.com/xyz-asif/travlr/internal/pkg/cloudinary"
)

// checkenv verifies that the services in .env are reachable before the API is started.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := config.Load()

	fmt.Println("Testing MongoDB connection...")
	db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("MongoDB connection failed:", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	defer db.Disconnect(ctx)

	if err := db.HealthCheck(ctx); err != nil {
		log.Fatal("MongoDB ping failed:", err)
	}
	fmt.Printf("✅ MongoDB connected (database %q)\n", cfg.MongoDB)

	fmt.Println("\nTesting Cloudinary configuration...")
	cld, err := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryUploadFolder)
	if err != nil {
		fmt.Println("⚠️  Cloudinary not configured, image uploads will return 503:", err)
	} else {
		fmt.Println("✅ Cloudinary configured")
		fmt.Printf("  Cloud Name: %s\n", cld.CloudName())
		fmt.Printf("  Upload Folder: %s/trips\n", cfg.CloudinaryUploadFolder)
	}

	if cfg.GoogleClientID == "" {
		fmt.Println("\nGoogle sign-in disabled (GOOGLE_CLIENT_ID not set)")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	fmt.Println("\n🎉 All systems ready.")
}
