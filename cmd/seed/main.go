package main

import (
	"context"
	"flag"
	"log"
	"os"

	"equishare-storefront/internal/config"
	"equishare-storefront/internal/logger"
	"equishare-storefront/internal/repository/memory"
	"equishare-storefront/internal/repository/postgres"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	dataPath := flag.String("data", "", "Optional YAML file with users and items; defaults to the built-in demo data")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	data := SetupData{Users: memory.SeedUsers(), Items: memory.SeedItems()}
	if *dataPath != "" {
		raw, err := os.ReadFile(*dataPath)
		if err != nil {
			log.Fatalf("Failed to read setup file: %v", err)
		}
		if data, err = ParseSetupData(raw); err != nil {
			log.Fatalf("Failed to parse setup file: %v", err)
		}
	}

	ctx := context.Background()
	db, err := postgres.Open(ctx, cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Connected to database", "host", cfg.Database.Host, "database", cfg.Database.Database)

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Failed to prepare schema: %v", err)
	}

	store := postgres.NewStore(db)
	report, err := Populate(ctx, store.UserRepository, store.CatalogRepository, data)
	if err != nil {
		log.Fatalf("Failed to populate data: %v", err)
	}
	logger.Info("Seed data populated",
		"users_created", report.UsersCreated,
		"users_skipped", report.UsersSkipped,
		"items_created", report.ItemsCreated)
}
