package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/shared/config"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/shared/database"
)

func main() {
	var command string
	var stateURL string

	flag.StringVar(&command, "cmd", "up", "Migration command (up, down, version, force)")
	flag.StringVar(&stateURL, "db", "", "State database URL (defaults to STATE_DATABASE_URL)")
	flag.Parse()

	if stateURL == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("❌ Failed to load config: %v", err)
		}
		stateURL = cfg.StateDatabaseURL
	}

	log.Printf("💾 State database: %s", database.MaskURL(stateURL))

	m, err := database.NewMigrator(stateURL)
	if err != nil {
		log.Fatalf("❌ Failed to create migrate instance: %v", err)
	}
	defer m.Close()

	switch command {
	case "up":
		log.Println("⬆️  Running UP migrations...")
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("❌ Migration UP failed: %v", err)
		}
		log.Println("✅ Migrations UP completed!")

	case "down":
		log.Println("⬇️  Running DOWN migrations...")
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("❌ Migration DOWN failed: %v", err)
		}
		log.Println("✅ Migrations DOWN completed!")

	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatalf("❌ Failed to get version: %v", err)
		}
		log.Printf("📌 Current version: %d (dirty: %t)", version, dirty)

	case "force":
		if flag.NArg() < 1 {
			log.Fatal("❌ Please provide version number for force command")
		}
		var forceVersion int
		if _, err := fmt.Sscanf(flag.Arg(0), "%d", &forceVersion); err != nil {
			log.Fatalf("❌ Invalid version %q", flag.Arg(0))
		}
		if err := m.Force(forceVersion); err != nil {
			log.Fatalf("❌ Force failed: %v", err)
		}
		log.Printf("✅ Forced version to: %d", forceVersion)

	default:
		log.Fatalf("❌ Unknown command: %s (use: up, down, version, force)", command)
	}
}
