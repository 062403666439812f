package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gaming-community-api/internal/domain"
)

// CommentRepository defines the interface for comment data access.
// Soft-deleted comments are excluded from every lookup; the rows stay in
// place so votes, reactions and replies keep valid foreign keys.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindByGameID(ctx context.Context, gameID, page, limit int) ([]*domain.Comment, int64, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*domain.Comment, int64, error)
	FindReplies(ctx context.Context, parentID uuid.UUID) ([]*domain.Comment, error)
	CountByGameID(ctx context.Context, gameID int) (int64, error)
	Update(ctx context.Context, comment *domain.Comment) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	IncrementRepliesCount(ctx context.Context, id uuid.UUID) error
}

// commentRepositoryImpl is the GORM implementation of CommentRepository
type commentRepositoryImpl struct {
	db *gorm.DB
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepositoryImpl{db: db}
}

// Create creates a new comment
func (r *commentRepositoryImpl) Create(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// FindByID finds a non-deleted comment by ID with its author preloaded
func (r *commentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByGameID returns one page of non-deleted comments for a game,
// newest first, along with the total count
func (r *commentRepositoryImpl) FindByGameID(ctx context.Context, gameID, page, limit int) ([]*domain.Comment, int64, error) {
	var comments []*domain.Comment
	var total int64

	base := r.db.WithContext(ctx).Model(&domain.Comment{}).Where("igdb_game_id = ?", gameID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("igdb_game_id = ?", gameID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// FindByUserID returns one page of a user's non-deleted comments, newest first
func (r *commentRepositoryImpl) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*domain.Comment, int64, error) {
	var comments []*domain.Comment
	var total int64

	base := r.db.WithContext(ctx).Model(&domain.Comment{}).Where("user_id = ?", userID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// FindReplies returns the direct non-deleted children of a comment, oldest first.
// Deeper levels are fetched by the client one level at a time.
func (r *commentRepositoryImpl) FindReplies(ctx context.Context, parentID uuid.UUID) ([]*domain.Comment, error) {
	var replies []*domain.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("parent_comment_id = ?", parentID).
		Order("created_at ASC").
		Find(&replies).Error; err != nil {
		return nil, err
	}
	return replies, nil
}

// CountByGameID counts the non-deleted comments on a game
func (r *commentRepositoryImpl) CountByGameID(ctx context.Context, gameID int) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Comment{}).
		Where("igdb_game_id = ?", gameID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Update saves all fields of the comment
func (r *commentRepositoryImpl) Update(ctx context.Context, comment *domain.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// SoftDelete sets the tombstone timestamp on a comment
func (r *commentRepositoryImpl) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Comment{}, "id = ?", id).Error
}

// IncrementRepliesCount adds one to the denormalized reply counter of a comment
func (r *commentRepositoryImpl) IncrementRepliesCount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Comment{}).
		Where("id = ?", id).
		UpdateColumn("replies_count", gorm.Expr("replies_count + ?", 1)).Error
}
