package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sidenotehq/sidenote/internal/archive"
	"github.com/sidenotehq/sidenote/internal/config"
	"github.com/sidenotehq/sidenote/internal/db"
	"github.com/sidenotehq/sidenote/internal/model"
	"github.com/sidenotehq/sidenote/internal/repository"
)

const uploadTimeout = 30 * time.Second

func main() {
	log.Println("Starting archive sync...")

	configPath := flag.String("config", "config.yaml", "Path to the config file")
	dbPath := flag.String("db", "", "Path to the SQLite database (defaults to the configured path)")
	force := flag.Bool("force", false, "Re-upload annotations that are already archived")
	flag.Parse()

	// Credentials come from the environment, same as the server
	_ = godotenv.Load()

	if err := config.LoadConfig(*configPath); err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if !config.AppConfig.Archive.Enabled {
		log.Fatal("Archiving is not enabled in the config")
	}

	if *dbPath == "" {
		*dbPath = config.AppConfig.Database.Path
	}

	// Initialize database connection
	database := db.NewSQLite(*dbPath)
	if err := database.InitDB(); err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	defer database.Close()

	repo := repository.NewDBAnnotationRepository(database)

	annotations, _, err := repo.GetAnnotations()
	if err != nil {
		log.Fatalf("Failed to load annotations: %v", err)
	}
	log.Printf("Found %d annotations to process.", len(annotations))

	arch, err := archive.NewS3Archive(
		os.Getenv("ARCHIVE_ACCESS_KEY_ID"),
		os.Getenv("ARCHIVE_SECRET_ACCESS_KEY"),
		config.AppConfig.Archive,
	)
	if err != nil {
		log.Fatalf("Error creating archive client: %v", err)
	}

	archived, err := arch.ListIDs(context.Background())
	if err != nil {
		log.Fatalf("Failed to list archived annotations: %v", err)
	}
	archivedSet := make(map[model.AnnotationID]bool, len(archived))
	for _, id := range archived {
		archivedSet[id] = true
	}

	// Process each annotation
	var uploaded, skipped, failed int
	for i := range annotations {
		annotation := &annotations[i]

		if archivedSet[annotation.ID] && !*force {
			skipped++
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
		err := arch.PutAnnotation(ctx, annotation)
		cancel()
		if err != nil {
			log.Printf("ID %s: Failed to upload: %v", annotation.ID, err)
			failed++
			continue
		}

		log.Printf("ID %s: Successfully archived", annotation.ID)
		uploaded++
	}

	log.Printf("Archive sync complete: %d uploaded, %d skipped, %d failed.", uploaded, skipped, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
