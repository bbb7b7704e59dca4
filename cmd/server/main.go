package main

import (
	"fmt"
	"log"

	"terptickets/internal/config"
	"terptickets/internal/handler"
	"terptickets/internal/identity"
	"terptickets/internal/repository/postgres"
	"terptickets/internal/router"
	s3storage "terptickets/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	docStore := postgres.NewDocumentStore(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize identity provider
	idp := identity.NewLocalProvider(userRepo, cfg.JWT)

	// Initialize handlers
	authH := handler.NewAuthHandler(idp)
	profileH := handler.NewProfileHandler(idp, s3Client)
	listingH := handler.NewListingHandler(s3Client, docStore)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, idp, authH, profileH, listingH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
