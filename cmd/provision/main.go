package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/railyatra/railbook/internal/config"
	"github.com/railyatra/railbook/internal/database"
	"github.com/sirupsen/logrus"
)

func main() {
	var skipSeed bool
	flag.BoolVar(&skipSeed, "skip-seed", false, "create the schema only, do not insert sample data")
	flag.Parse()

	// Load config (.env is honored for local development)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	fmt.Println("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	fmt.Println("Database connected")

	fmt.Println("Applying schema...")
	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}
	fmt.Println("Schema is up to date")

	if skipSeed {
		fmt.Println("Skipping sample data (-skip-seed)")
		return
	}

	logger := logrus.New()
	if err := database.SeedSampleData(db, logger); err != nil {
		log.Fatalf("Failed to seed sample data: %v", err)
	}
	fmt.Println("Sample data is in place")

	// Print row counts so the operator can eyeball the result
	tables := []string{"trains", "schedules", "bookings", "passengers", "payments"}
	fmt.Println("Row counts:")
	for _, t := range tables {
		var count int
		if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", t)).Scan(&count); err != nil {
			fmt.Printf("  %s: error: %v\n", t, err)
			continue
		}
		fmt.Printf("  %s: %d\n", t, count)
	}
}
