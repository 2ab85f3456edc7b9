package main

import (
	"vidtube/internal/app"
	"vidtube/pkg/cache"
	"vidtube/pkg/config"
	"vidtube/pkg/database"
	"vidtube/pkg/logger"
	"vidtube/pkg/s3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Migrations are handled by goose - see cmd/migrate/main.go

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	app.Run(cfg, log, db, s3Client, redisClient)
}
