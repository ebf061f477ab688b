package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"inkboard/pkg/config"
	"inkboard/pkg/logger"
)

func main() {
	var (
		fixturesPath string
		ifEmpty      bool
	)
	flag.StringVar(&fixturesPath, "fixtures", "fixtures/posts.yaml", "Path to YAML post fixtures")
	flag.BoolVar(&ifEmpty, "if-empty", false, "Only seed when the store has no posts")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()

	f, err := os.Open(fixturesPath)
	if err != nil {
		log.Error("Failed to open fixtures: %v", err)
		panic(err)
	}
	defer f.Close()

	posts, err := loadFixtures(f, time.Now())
	if err != nil {
		log.Error("Invalid fixtures: %v", err)
		panic(err)
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Error("Failed to open post store: %v", err)
		panic(err)
	}
	defer closeStore()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := seedPosts(ctx, store, posts, ifEmpty)
	if err != nil {
		log.Error("Seeding stopped after %d posts: %v", n, err)
		panic(err)
	}

	log.Info("Seeded %d posts into the %s store", n, cfg.StorageBackend)
}
