package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gaming-community-api/internal/domain"
)

// VoteAction describes the outcome of applying a vote
type VoteAction string

const (
	VoteActionLiked    VoteAction = "liked"
	VoteActionDisliked VoteAction = "disliked"
	VoteActionRemoved  VoteAction = "removed"
)

// errVoteConflict signals a unique-constraint race on insert; the operation
// is retried as a vote change.
var errVoteConflict = errors.New("concurrent vote insert conflict")

// VoteResult is the outcome of a three-way vote toggle
type VoteResult struct {
	Action       VoteAction
	PreviousVote *domain.VoteType
}

// CommentVoteRepository defines the interface for comment vote data access
type CommentVoteRepository interface {
	// ApplyVote runs the three-way toggle: no row inserts, same type removes,
	// different type flips. The row mutation and the paired counter adjustment
	// on the comment run inside one transaction; the unique (comment, user)
	// index is the backstop against concurrent double-inserts.
	ApplyVote(ctx context.Context, commentID, userID uuid.UUID, voteType domain.VoteType) (*VoteResult, error)
	FindVote(ctx context.Context, commentID, userID uuid.UUID) (*domain.CommentVote, error)
}

// commentVoteRepositoryImpl is the GORM implementation of CommentVoteRepository
type commentVoteRepositoryImpl struct {
	db *gorm.DB
}

// NewCommentVoteRepository creates a new instance of CommentVoteRepository
func NewCommentVoteRepository(db *gorm.DB) CommentVoteRepository {
	return &commentVoteRepositoryImpl{db: db}
}

func actionForVote(voteType domain.VoteType) VoteAction {
	if voteType == domain.VoteTypeLike {
		return VoteActionLiked
	}
	return VoteActionDisliked
}

func voteCounterColumn(voteType domain.VoteType) string {
	if voteType == domain.VoteTypeLike {
		return "likes_count"
	}
	return "dislikes_count"
}

func adjustVoteCounter(tx *gorm.DB, commentID uuid.UUID, voteType domain.VoteType, delta int) error {
	column := voteCounterColumn(voteType)
	return tx.Model(&domain.Comment{}).
		Where("id = ?", commentID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}

// ApplyVote applies the toggle, retrying once as a vote change when a
// concurrent insert hits the uniqueness constraint
func (r *commentVoteRepositoryImpl) ApplyVote(ctx context.Context, commentID, userID uuid.UUID, voteType domain.VoteType) (*VoteResult, error) {
	result, err := r.applyVoteOnce(ctx, commentID, userID, voteType)
	if errors.Is(err, errVoteConflict) {
		result, err = r.applyVoteOnce(ctx, commentID, userID, voteType)
	}
	return result, err
}

func (r *commentVoteRepositoryImpl) applyVoteOnce(ctx context.Context, commentID, userID uuid.UUID, voteType domain.VoteType) (*VoteResult, error) {
	result := &VoteResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.CommentVote
		findErr := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&existing).Error

		switch {
		case findErr == nil:
			previous := existing.VoteType
			result.PreviousVote = &previous

			if existing.VoteType == voteType {
				// Toggle off
				if err := tx.Delete(&domain.CommentVote{}, "id = ?", existing.ID).Error; err != nil {
					return err
				}
				if err := adjustVoteCounter(tx, commentID, voteType, -1); err != nil {
					return err
				}
				result.Action = VoteActionRemoved
				return nil
			}

			// Flip the vote type
			if err := adjustVoteCounter(tx, commentID, existing.VoteType, -1); err != nil {
				return err
			}
			existing.VoteType = voteType
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			if err := adjustVoteCounter(tx, commentID, voteType, 1); err != nil {
				return err
			}
			result.Action = actionForVote(voteType)
			return nil

		case errors.Is(findErr, gorm.ErrRecordNotFound):
			vote := &domain.CommentVote{
				CommentID: commentID,
				UserID:    userID,
				VoteType:  voteType,
			}
			if err := tx.Create(vote).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return errVoteConflict
				}
				return err
			}
			if err := adjustVoteCounter(tx, commentID, voteType, 1); err != nil {
				return err
			}
			result.Action = actionForVote(voteType)
			return nil

		default:
			return findErr
		}
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FindVote returns the user's current vote on a comment, if any
func (r *commentVoteRepositoryImpl) FindVote(ctx context.Context, commentID, userID uuid.UUID) (*domain.CommentVote, error) {
	var vote domain.CommentVote
	if err := r.db.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		First(&vote).Error; err != nil {
		return nil, err
	}
	return &vote, nil
}
