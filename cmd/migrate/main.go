// Command migrate applies or rolls back the database schema.
//
//	migrate -up
//	migrate -down 1
//	migrate -version
package main

import (
	"flag"
	"log"

	"fleet-management/internal/config"
	"fleet-management/internal/database"
)

func main() {
	up := flag.Bool("up", false, "apply all pending migrations")
	down := flag.Int("down", 0, "roll back N migrations")
	version := flag.Bool("version", false, "print the current schema version")
	flag.Parse()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	switch {
	case *up:
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
	case *down > 0:
		if err := database.RollbackMigrations(cfg.DatabaseURL, *down); err != nil {
			log.Fatalf("Rollback failed: %v", err)
		}
	case *version:
		v, dirty, err := database.Version(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Unable to read schema version: %v", err)
		}
		log.Printf("schema version %d (dirty=%t)", v, dirty)
	default:
		flag.Usage()
	}
}
