package main

import (
	"context"
	"flag"
	"log"

	"usersvc/internal/config"
	"usersvc/internal/db"
	"usersvc/internal/model"
	"usersvc/internal/repository"
	"usersvc/internal/router"
	"usersvc/internal/seed"
	"usersvc/internal/service"
)

func main() {
	source := flag.String("source", "users.json", "JSON file path or http(s) URL with an array of {name, email, age}")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, cfg.DBLogLevel)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()

	log.Printf("Fetching users from: %s", *source)
	records, err := seed.Fetch(ctx, *source)
	if err != nil {
		log.Fatalf("Failed to fetch users: %v", err)
	}
	log.Printf("Fetched %d users", len(records))

	userService := service.NewUserService(repository.NewUserRepository(gormDB))

	res, err := seed.Run(ctx, userService, router.NewValidator(), records)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", res.Created)
	log.Printf("  - Existing emails skipped: %d", res.Skipped)
	log.Printf("  - Invalid records skipped: %d", res.Invalid)
}
