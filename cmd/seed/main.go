// Command main runs the database seeder for the microblog API.
package main

import (
	"flag"
	"log"

	"microblog/internal/config"
	"microblog/internal/database"
	"microblog/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	tweetsPerUser := flag.Int("tweets", 5, "Tweets per user")
	followsPerUser := flag.Int("follows", 5, "Followees per user")
	maxLikes := flag.Int("likes", 8, "Maximum likes per tweet")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	randSeed := flag.Int64("seed", 0, "Random seed (0 = time based)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	_, err = seed.NewSeeder(db, *randSeed).Run(seed.Options{
		NumUsers:       *numUsers,
		TweetsPerUser:  *tweetsPerUser,
		FollowsPerUser: *followsPerUser,
		MaxLikes:       *maxLikes,
		ShouldClean:    *shouldClean,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete. The first user has api key \"test\".")
}
