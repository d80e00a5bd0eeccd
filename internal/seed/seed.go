// Package seed inserts starter data for development environments.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tribewave/internal/models"
	"tribewave/internal/repository"
	"tribewave/internal/service"

	"gorm.io/gorm"
)

// Run inserts a default admin and a starter content set for each tribe.
// It is idempotent per admin username and skips content seeding when any
// content already exists.
func Run(ctx context.Context, db *gorm.DB, adminPassword string) error {
	admins := repository.NewAdminRepository(db)
	auth := service.NewAuthService(admins, "")

	if _, err := admins.GetByUsername(ctx, "admin"); errors.Is(err, gorm.ErrRecordNotFound) {
		if _, err := auth.CreateAdmin(ctx, "admin", "admin@tribewave.local", adminPassword); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		slog.Info("seeded default admin")
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.ContentPost{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	posts := []models.ContentPost{
		{
			Title:         "Welcome to the collective",
			Body:          "Three tribes, one sound. Pick your color and step in.",
			Kind:          models.ContentKindAnnouncement,
			TargetSection: models.SectionHome,
			TargetTribe:   models.TribeAll,
			Active:        true,
			Pinned:        true,
			Author:        "admin",
		},
		{
			Title:         "New single out now",
			Body:          "https://cdn.tribewave.local/tracks/first-light.mp3",
			Kind:          models.ContentKindMusic,
			TargetSection: models.SectionMusic,
			TargetTribe:   models.TribeAll,
			Active:        true,
			Author:        "admin",
		},
	}
	for _, tribe := range models.Tribes {
		posts = append(posts, models.ContentPost{
			Title:         fmt.Sprintf("The %s tribe gathers", tribe),
			Body:          fmt.Sprintf("Exclusive drops and stories for the %s tribe.", tribe),
			Kind:          models.ContentKindAnnouncement,
			TargetSection: models.SectionTribe,
			TargetTribe:   tribe,
			Active:        true,
			Author:        "admin",
		})
	}

	for i := range posts {
		if err := db.WithContext(ctx).Create(&posts[i]).Error; err != nil {
			return fmt.Errorf("seed content: %w", err)
		}
	}
	slog.Info("seeded starter content", "posts", len(posts))
	return nil
}
