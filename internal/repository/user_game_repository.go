package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gaming-community-api/internal/domain"
)

// UserGameRepository defines the interface for user library data access
type UserGameRepository interface {
	Create(ctx context.Context, userGame *domain.UserGame) error
	FindByUserAndGame(ctx context.Context, userID uuid.UUID, gameID int) (*domain.UserGame, error)
	FindSavedByUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserGame, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserGame, error)
	Update(ctx context.Context, userGame *domain.UserGame) error
	Delete(ctx context.Context, userID uuid.UUID, gameID int) (int64, error)
}

// userGameRepositoryImpl is the GORM implementation of UserGameRepository
type userGameRepositoryImpl struct {
	db *gorm.DB
}

// NewUserGameRepository creates a new instance of UserGameRepository
func NewUserGameRepository(db *gorm.DB) UserGameRepository {
	return &userGameRepositoryImpl{db: db}
}

// Create creates a new library entry
func (r *userGameRepositoryImpl) Create(ctx context.Context, userGame *domain.UserGame) error {
	return r.db.WithContext(ctx).Create(userGame).Error
}

// FindByUserAndGame finds a library entry by its unique (user, game) pair
func (r *userGameRepositoryImpl) FindByUserAndGame(ctx context.Context, userID uuid.UUID, gameID int) (*domain.UserGame, error) {
	var userGame domain.UserGame
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND igdb_game_id = ?", userID, gameID).
		First(&userGame).Error; err != nil {
		return nil, err
	}
	return &userGame, nil
}

// FindSavedByUser returns the user's saved games, most recently saved first
func (r *userGameRepositoryImpl) FindSavedByUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserGame, error) {
	var games []*domain.UserGame
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_saved = ?", userID, true).
		Order("saved_at DESC").
		Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

// FindAllByUser returns every library row for a user, saved or not
func (r *userGameRepositoryImpl) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserGame, error) {
	var games []*domain.UserGame
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

// Update saves all fields of the entry, including cleared toggles and
// nulled timestamps
func (r *userGameRepositoryImpl) Update(ctx context.Context, userGame *domain.UserGame) error {
	return r.db.WithContext(ctx).Save(userGame).Error
}

// Delete hard-deletes a library entry, returning the number of affected rows
func (r *userGameRepositoryImpl) Delete(ctx context.Context, userID uuid.UUID, gameID int) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND igdb_game_id = ?", userID, gameID).
		Delete(&domain.UserGame{})
	return result.RowsAffected, result.Error
}
