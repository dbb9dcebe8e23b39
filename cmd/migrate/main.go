// Command main applies the database schema. Connect already migrates in
// non-production environments; this command exists for production, where the
// schema is applied as an explicit deploy step.
package main

import (
	"log"

	"relay/internal/config"
	"relay/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("schema migration completed")
}
