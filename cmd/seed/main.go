// Command seed populates a development database with fake data.
package main

import (
	"flag"
	"log"

	"tasteboard/internal/config"
	"tasteboard/internal/database"
	"tasteboard/internal/seed"
)

func main() {
	items := flag.Int("items", 20, "number of items to create")
	users := flag.Int("users", 10, "number of users to create")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.DefaultOptions()
	opts.Items = *items
	opts.Users = *users

	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
