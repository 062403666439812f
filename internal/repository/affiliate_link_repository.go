package repository

import (
	"context"

	"gorm.io/gorm"

	"gaming-community-api/internal/domain"
)

// AffiliateLinkRepository defines the interface for affiliate link data access
type AffiliateLinkRepository interface {
	Create(ctx context.Context, link *domain.AffiliateLink) error
	FindActiveByGameID(ctx context.Context, gameID int) ([]*domain.AffiliateLink, error)
	FindByGameAndPlatform(ctx context.Context, gameID int, platform string) (*domain.AffiliateLink, error)
}

// affiliateLinkRepositoryImpl is the GORM implementation of AffiliateLinkRepository
type affiliateLinkRepositoryImpl struct {
	db *gorm.DB
}

// NewAffiliateLinkRepository creates a new instance of AffiliateLinkRepository
func NewAffiliateLinkRepository(db *gorm.DB) AffiliateLinkRepository {
	return &affiliateLinkRepositoryImpl{db: db}
}

// Create creates a new affiliate link
func (r *affiliateLinkRepositoryImpl) Create(ctx context.Context, link *domain.AffiliateLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

// FindActiveByGameID returns the active links for a game
func (r *affiliateLinkRepositoryImpl) FindActiveByGameID(ctx context.Context, gameID int) ([]*domain.AffiliateLink, error) {
	var links []*domain.AffiliateLink
	if err := r.db.WithContext(ctx).
		Where("igdb_game_id = ? AND is_active = ?", gameID, true).
		Order("platform ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// FindByGameAndPlatform finds a link by its unique (game, platform) pair
func (r *affiliateLinkRepositoryImpl) FindByGameAndPlatform(ctx context.Context, gameID int, platform string) (*domain.AffiliateLink, error) {
	var link domain.AffiliateLink
	if err := r.db.WithContext(ctx).
		Where("igdb_game_id = ? AND platform = ?", gameID, platform).
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}
