package database

import (
	"fmt"

	"gorm.io/gorm"

	"gaming-community-api/internal/domain"
)

// AutoMigrate runs GORM auto-migration for all domain models.
// Tables, indexes, unique constraints and foreign keys are derived from
// the struct definitions in the domain package.
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&domain.User{},
		&domain.Comment{},
		&domain.CommentVote{},
		&domain.CommentReaction{},
		&domain.UserGame{},
		&domain.AffiliateLink{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}

	return nil
}
