// Command main runs the database seeder for MindHaven.
package main

import (
	"flag"
	"log"

	"mindhaven/internal/config"
	"mindhaven/internal/database"
	"mindhaven/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numArticles := flag.Int("articles", 100, "Number of articles to create")
	numGroups := flag.Int("groups", 10, "Number of groups to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)
	if err := s.Run(seed.Options{
		NumUsers:    *numUsers,
		NumArticles: *numArticles,
		NumGroups:   *numGroups,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Done. All seeded users have the password: password123")
}
