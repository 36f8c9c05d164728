package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sidenotehq/sidenote/internal/db"
	"github.com/sidenotehq/sidenote/internal/group"
	"github.com/sidenotehq/sidenote/internal/model"
	"github.com/sidenotehq/sidenote/internal/repository"
)

// exportRecord is one annotation in a JSON export file. Exports are an array
// of these records.
type exportRecord struct {
	URI      string    `json:"uri"`
	Text     string    `json:"text"`
	Tags     []string  `json:"tags"`
	Private  bool      `json:"private"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

// main is the entry point of the script, parsing flags and orchestrating the migration.
func main() {
	// Define command-line flags
	path := flag.String("path", "", "Path to the JSON export file")
	ownerID := flag.String("owner-id", "", "Owner user ID for the annotations")
	dbPath := flag.String("db", db.DefaultPath, "Path to the SQLite database")
	flag.Parse()

	// Validate required flags
	if *path == "" || *ownerID == "" {
		log.Fatal("Both --path and --owner-id flags are required")
	}

	// Initialize the SQLite database and ensure tables exist
	DB := db.NewSQLite(*dbPath)
	if err := DB.InitDB(); err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Create a repository instance to interact with the database
	repo := repository.NewDBAnnotationRepository(DB)

	// Annotations from exports land in the default group
	groups := group.NewDBGroupLookup(DB)
	if err := groups.EnsureDefaultGroup(); err != nil {
		log.Fatalf("Error ensuring default group: %v", err)
	}

	records, err := readExport(*path)
	if err != nil {
		log.Fatalf("Error reading export file %s: %v", *path, err)
	}

	// Process each record
	for i, record := range records {
		err := processRecord(record, repo, *ownerID)
		if err != nil {
			log.Printf("Error processing record %d (%s): %v", i, record.URI, err)
			continue
		}
		log.Printf("Successfully imported annotation for: %s", record.URI)
	}
}

// readExport parses the export file into records.
func readExport(path string) ([]exportRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []exportRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// processRecord handles the migration of a single export record to the database.
func processRecord(record exportRecord, repo repository.AnnotationRepository, ownerID string) error {
	now := time.Now().UTC()

	// Set creation and modification dates, falling back to import time
	createdDate := record.Created.UTC()
	if record.Created.IsZero() {
		createdDate = now
	}
	modifiedDate := record.Modified.UTC()
	if record.Modified.IsZero() {
		modifiedDate = createdDate
	}

	// Create a new annotation struct
	annotation := &model.Annotation{
		ID:           model.AnnotationID(uuid.New().String()),
		URI:          record.URI,
		Group:        group.DefaultGroupID,
		Text:         record.Text,
		Tags:         record.Tags,
		IsPrivate:    record.Private,
		CreatedDate:  createdDate,
		ModifiedDate: modifiedDate,
		Owner:        model.UserID(ownerID),
	}

	// Save the annotation to the database
	return repo.SaveAnnotation(annotation)
}
