package main

import (
	"fmt"

	"vidtube/internal/entity"
	"vidtube/internal/repo/persistent"
	"vidtube/pkg/config"
	"vidtube/pkg/database"
	"vidtube/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	userRepo := persistent.NewUserRepository(db)
	videoRepo := persistent.NewVideoRepository(db)
	subRepo := persistent.NewSubscriptionRepository(db)

	testUsers := []struct {
		fullName string
		email    string
		username string
		password string
	}{
		{"Alice Anderson", "alice@test.com", "alice", "password123"},
		{"Bob Brown", "bob@test.com", "bob", "password123"},
		{"Charlie Clark", "charlie@test.com", "charlie", "password123"},
		{"Diana Davis", "diana@test.com", "diana", "password123"},
	}

	userIDs := make([]string, 0, len(testUsers))
	for _, tu := range testUsers {
		if existing, err := userRepo.GetByUsername(tu.username); err == nil {
			log.Info("User %s already exists, skipping", tu.username)
			userIDs = append(userIDs, existing.ID)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(tu.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user := &entity.User{
			FullName: tu.fullName,
			Username: tu.username,
			Email:    tu.email,
			Password: string(hashed),
			Avatar: entity.Asset{
				URL:  fmt.Sprintf("https://placehold.co/256x256?text=%s", tu.username),
				Key:  fmt.Sprintf("avatars/seed-%s", tu.username),
				Kind: "image",
			},
		}
		if err := userRepo.Create(user); err != nil {
			return fmt.Errorf("failed to create user %s: %w", tu.username, err)
		}
		log.Info("Created user %s", tu.username)
		userIDs = append(userIDs, user.ID)
	}

	for i, ownerID := range userIDs {
		for j := 1; j <= 2; j++ {
			video := &entity.Video{
				OwnerID:     ownerID,
				Title:       fmt.Sprintf("Demo video %d by %s", j, testUsers[i].username),
				Description: "Seeded demo content",
				VideoFile: entity.Asset{
					URL:  fmt.Sprintf("https://example.com/videos/seed-%d-%d.mp4", i, j),
					Key:  fmt.Sprintf("videos/seed-%d-%d", i, j),
					Kind: "video",
				},
				Thumbnail: entity.Asset{
					URL:  fmt.Sprintf("https://placehold.co/640x360?text=video-%d-%d", i, j),
					Key:  fmt.Sprintf("thumbnails/seed-%d-%d", i, j),
					Kind: "image",
				},
				Duration:    60 * float64(j),
				IsPublished: true,
			}
			if err := videoRepo.Create(video); err != nil {
				return fmt.Errorf("failed to create video: %w", err)
			}
		}
	}
	log.Info("Created %d demo videos", len(userIDs)*2)

	// Everyone subscribes to alice.
	for _, id := range userIDs[1:] {
		if err := subRepo.Create(id, userIDs[0]); err != nil {
			log.Warn("Failed to create subscription: %v", err)
		}
	}

	return nil
}
