package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gaming-community-api/internal/domain"
)

// ReactionCount is one row of the grouped per-type reaction count query
type ReactionCount struct {
	ReactionType domain.ReactionType `json:"reaction_type"`
	Count        int64               `json:"count"`
}

// CommentReactionRepository defines the interface for comment reaction data access
type CommentReactionRepository interface {
	// Toggle inserts the (comment, user, type) row if absent and deletes it if
	// present, returning whether the reaction is now active. Only the "helpful"
	// type also maintains the denormalized helpful_count on the comment; every
	// other type is counted live via CountByType.
	Toggle(ctx context.Context, commentID, userID uuid.UUID, reactionType domain.ReactionType) (bool, error)
	CountByType(ctx context.Context, commentID uuid.UUID, reactionType domain.ReactionType) (int64, error)
	GroupCounts(ctx context.Context, commentID uuid.UUID) ([]ReactionCount, error)
	FindUserReactions(ctx context.Context, commentID, userID uuid.UUID) ([]domain.ReactionType, error)
}

// commentReactionRepositoryImpl is the GORM implementation of CommentReactionRepository
type commentReactionRepositoryImpl struct {
	db *gorm.DB
}

// NewCommentReactionRepository creates a new instance of CommentReactionRepository
func NewCommentReactionRepository(db *gorm.DB) CommentReactionRepository {
	return &commentReactionRepositoryImpl{db: db}
}

func adjustHelpfulCount(tx *gorm.DB, commentID uuid.UUID, delta int) error {
	return tx.Model(&domain.Comment{}).
		Where("id = ?", commentID).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + ?", delta)).Error
}

// Toggle flips the existence of the reaction row inside one transaction
func (r *commentReactionRepositoryImpl) Toggle(ctx context.Context, commentID, userID uuid.UUID, reactionType domain.ReactionType) (bool, error) {
	var added bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.CommentReaction
		findErr := tx.Where("comment_id = ? AND user_id = ? AND reaction_type = ?",
			commentID, userID, reactionType).First(&existing).Error

		switch {
		case findErr == nil:
			if err := tx.Delete(&domain.CommentReaction{}, "id = ?", existing.ID).Error; err != nil {
				return err
			}
			if reactionType == domain.ReactionHelpful {
				if err := adjustHelpfulCount(tx, commentID, -1); err != nil {
					return err
				}
			}
			added = false
			return nil

		case errors.Is(findErr, gorm.ErrRecordNotFound):
			reaction := &domain.CommentReaction{
				CommentID:    commentID,
				UserID:       userID,
				ReactionType: reactionType,
			}
			if err := tx.Create(reaction).Error; err != nil {
				// Concurrent insert of the same triple; treat as already active
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					added = true
					return nil
				}
				return err
			}
			if reactionType == domain.ReactionHelpful {
				if err := adjustHelpfulCount(tx, commentID, 1); err != nil {
					return err
				}
			}
			added = true
			return nil

		default:
			return findErr
		}
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

// CountByType counts active reactions of one type on a comment
func (r *commentReactionRepositoryImpl) CountByType(ctx context.Context, commentID uuid.UUID, reactionType domain.ReactionType) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.CommentReaction{}).
		Where("comment_id = ? AND reaction_type = ?", commentID, reactionType).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GroupCounts returns per-type reaction counts for a comment
func (r *commentReactionRepositoryImpl) GroupCounts(ctx context.Context, commentID uuid.UUID) ([]ReactionCount, error) {
	var counts []ReactionCount
	if err := r.db.WithContext(ctx).
		Model(&domain.CommentReaction{}).
		Select("reaction_type, COUNT(*) as count").
		Where("comment_id = ?", commentID).
		Group("reaction_type").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// FindUserReactions returns the reaction types a user holds on a comment
func (r *commentReactionRepositoryImpl) FindUserReactions(ctx context.Context, commentID, userID uuid.UUID) ([]domain.ReactionType, error) {
	var reactions []domain.CommentReaction
	if err := r.db.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Find(&reactions).Error; err != nil {
		return nil, err
	}

	types := make([]domain.ReactionType, 0, len(reactions))
	for _, reaction := range reactions {
		types = append(types, reaction.ReactionType)
	}
	return types, nil
}
