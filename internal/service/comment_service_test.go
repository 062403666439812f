package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gaming-community-api/internal/domain"
	"gaming-community-api/internal/dto"
	"gaming-community-api/internal/repository"
	"gaming-community-api/internal/response"
)

func testComment(id, userID uuid.UUID, gameID int) *domain.Comment {
	comment := &domain.Comment{
		UserID:      userID,
		IgdbGameID:  gameID,
		Content:     "hello",
		CommentType: domain.CommentTypeDiscussion,
	}
	comment.ID = id
	return comment
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func TestCreateComment_ReplyToMissingParent(t *testing.T) {
	parentID := uuid.New()
	commentRepo := &mockCommentRepo{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewCommentService(commentRepo, nil, nil, zap.NewNop(), nil)

	_, err := svc.CreateComment(context.Background(), uuid.New(), 100, &dto.CreateCommentRequest{
		Content:         "reply",
		ParentCommentID: &parentID,
	})
	assertAppErrorCode(t, err, response.ErrCodeNotFound)
}

func TestCreateComment_ReplyToDifferentGame(t *testing.T) {
	parentID := uuid.New()
	commentRepo := &mockCommentRepo{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
			return testComment(parentID, uuid.New(), 999), nil
		},
	}
	svc := NewCommentService(commentRepo, nil, nil, zap.NewNop(), nil)

	_, err := svc.CreateComment(context.Background(), uuid.New(), 100, &dto.CreateCommentRequest{
		Content:         "reply",
		ParentCommentID: &parentID,
	})
	assertAppErrorCode(t, err, response.ErrCodeValidation)
}

func TestCreateComment_ReplyIncrementsParentCounter(t *testing.T) {
	parentID := uuid.New()
	userID := uuid.New()
	var incremented []uuid.UUID

	commentRepo := &mockCommentRepo{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
			if id == parentID {
				return testComment(parentID, uuid.New(), 100), nil
			}
			return testComment(id, userID, 100), nil
		},
		CreateFunc: func(ctx context.Context, comment *domain.Comment) error {
			comment.ID = uuid.New()
			return nil
		},
		IncrementRepliesCountFunc: func(ctx context.Context, id uuid.UUID) error {
			incremented = append(incremented, id)
			return nil
		},
	}
	svc := NewCommentService(commentRepo, nil, nil, zap.NewNop(), nil)

	_, err := svc.CreateComment(context.Background(), userID, 100, &dto.CreateCommentRequest{
		Content:         "reply",
		ParentCommentID: &parentID,
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{parentID}, incremented)
}

func TestCreateComment_DefaultsToDiscussion(t *testing.T) {
	userID := uuid.New()
	var created *domain.Comment

	commentRepo := &mockCommentRepo{
		CreateFunc: func(ctx context.Context, comment *domain.Comment) error {
			comment.ID = uuid.New()
			created = comment
			return nil
		},
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
			return created, nil
		},
	}
	svc := NewCommentService(commentRepo, nil, nil, zap.NewNop(), nil)

	resp, err := svc.CreateComment(context.Background(), userID, 100, &dto.CreateCommentRequest{
		Content: "first",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.CommentTypeDiscussion), resp.CommentType)
	assert.False(t, resp.IsEdited)
}

func TestUpdateComment_NotOwner(t *testing.T) {
	commentID := uuid.New()
	commentRepo := &mockCommentRepo{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
			return testComment(commentID, uuid.New(), 100), nil
		},
	}
	svc := NewCommentService(commentRepo, nil, nil, zap.NewNop(), nil)

	_, err := svc.UpdateComment(context.Background(), commentID, uuid.New(), &dto.UpdateCommentRequest{Content: "hack"})
	assertAppErrorCode(t, err, response.ErrCodeForbidden)
}

func TestUpdateComment_SetsEditedFlag(t *testing.T) {
	commentID := uuid.New()
	userID := uuid.New()
	var updated *domain.Comment

	commentRepo := &mockCommentRepo{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
			return testComment(commentID, userID, 100), nil
		},
		UpdateFunc: func(ctx context.Context, comment *domain.Comment) error {
			updated = comment
			return nil
		},
	}
	svc := NewCommentService(commentRepo, nil, nil, zap.NewNop(), nil)

	resp, err := svc.UpdateComment(context.Background(), commentID, userID, &dto.UpdateCommentRequest{Content: "new text"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, updated.IsEdited)
	assert.Equal(t, "new text", updated.Content)
	assert.True(t, resp.IsEdited)
}

func TestDeleteComment_NotOwner(t *testing.T) {
	commentID := uuid.New()
	commentRepo := &mockCommentRepo{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
			return testComment(commentID, uuid.New(), 100), nil
		},
	}
	svc := NewCommentService(commentRepo, nil, nil, zap.NewNop(), nil)

	err := svc.DeleteComment(context.Background(), commentID, uuid.New())
	assertAppErrorCode(t, err, response.ErrCodeForbidden)
}

func TestVoteComment_MissingComment(t *testing.T) {
	commentRepo := &mockCommentRepo{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewCommentService(commentRepo, &mockVoteRepo{}, nil, zap.NewNop(), nil)

	_, err := svc.VoteComment(context.Background(), uuid.New(), uuid.New(), domain.VoteTypeLike)
	assertAppErrorCode(t, err, response.ErrCodeNotFound)
}

func TestVoteComment_ReturnsFreshCounters(t *testing.T) {
	commentID := uuid.New()
	userID := uuid.New()
	likes := 0

	commentRepo := &mockCommentRepo{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
			comment := testComment(commentID, uuid.New(), 100)
			comment.LikesCount = likes
			return comment, nil
		},
	}
	voteRepo := &mockVoteRepo{
		ApplyVoteFunc: func(ctx context.Context, cID, uID uuid.UUID, voteType domain.VoteType) (*repository.VoteResult, error) {
			likes = 1
			return &repository.VoteResult{Action: repository.VoteActionLiked}, nil
		},
	}
	svc := NewCommentService(commentRepo, voteRepo, nil, zap.NewNop(), nil)

	resp, err := svc.VoteComment(context.Background(), commentID, userID, domain.VoteTypeLike)
	require.NoError(t, err)
	assert.Equal(t, string(repository.VoteActionLiked), resp.Action)
	assert.Equal(t, 1, resp.LikesCount)

	// The refreshed comment rides along with the vote outcome
	assert.Equal(t, commentID.String(), resp.Comment.ID)
	assert.Equal(t, 1, resp.Comment.LikesCount)
	assert.Equal(t, "hello", resp.Comment.Content)
}

func TestRemoveVote_NoExistingVote(t *testing.T) {
	commentID := uuid.New()
	commentRepo := &mockCommentRepo{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
			return testComment(commentID, uuid.New(), 100), nil
		},
	}
	voteRepo := &mockVoteRepo{
		FindVoteFunc: func(ctx context.Context, cID, uID uuid.UUID) (*domain.CommentVote, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewCommentService(commentRepo, voteRepo, nil, zap.NewNop(), nil)

	resp, err := svc.RemoveVote(context.Background(), commentID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, VoteActionNone, resp.Action)
}

func TestRemoveVote_TogglesOffCurrentVote(t *testing.T) {
	commentID := uuid.New()
	userID := uuid.New()
	var appliedType domain.VoteType

	commentRepo := &mockCommentRepo{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
			return testComment(commentID, uuid.New(), 100), nil
		},
	}
	voteRepo := &mockVoteRepo{
		FindVoteFunc: func(ctx context.Context, cID, uID uuid.UUID) (*domain.CommentVote, error) {
			return &domain.CommentVote{CommentID: cID, UserID: uID, VoteType: domain.VoteTypeDislike}, nil
		},
		ApplyVoteFunc: func(ctx context.Context, cID, uID uuid.UUID, voteType domain.VoteType) (*repository.VoteResult, error) {
			appliedType = voteType
			previous := voteType
			return &repository.VoteResult{Action: repository.VoteActionRemoved, PreviousVote: &previous}, nil
		},
	}
	svc := NewCommentService(commentRepo, voteRepo, nil, zap.NewNop(), nil)

	resp, err := svc.RemoveVote(context.Background(), commentID, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.VoteTypeDislike, appliedType)
	assert.Equal(t, string(repository.VoteActionRemoved), resp.Action)
}

func TestGetCommentReactions_FlagsCallerReactions(t *testing.T) {
	commentID := uuid.New()
	userID := uuid.New()

	commentRepo := &mockCommentRepo{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
			return testComment(commentID, uuid.New(), 100), nil
		},
	}
	reactionRepo := &mockReactionRepo{
		GroupCountsFunc: func(ctx context.Context, cID uuid.UUID) ([]repository.ReactionCount, error) {
			return []repository.ReactionCount{
				{ReactionType: domain.ReactionFire, Count: 3},
				{ReactionType: domain.ReactionFunny, Count: 1},
			}, nil
		},
		FindUserReactionsFunc: func(ctx context.Context, cID, uID uuid.UUID) ([]domain.ReactionType, error) {
			return []domain.ReactionType{domain.ReactionFire}, nil
		},
	}
	svc := NewCommentService(commentRepo, nil, reactionRepo, zap.NewNop(), nil)

	resp, err := svc.GetCommentReactions(context.Background(), commentID, &userID)
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.True(t, resp[0].UserHasReacted)
	assert.False(t, resp[1].UserHasReacted)
}

func TestGetCommentsByGame_Pagination(t *testing.T) {
	commentRepo := &mockCommentRepo{
		FindByGameIDFunc: func(ctx context.Context, gameID, page, limit int) ([]*domain.Comment, int64, error) {
			assert.Equal(t, 2, page)
			assert.Equal(t, 20, limit)
			return []*domain.Comment{testComment(uuid.New(), uuid.New(), gameID)}, 41, nil
		},
	}
	svc := NewCommentService(commentRepo, nil, nil, zap.NewNop(), nil)

	resp, err := svc.GetCommentsByGame(context.Background(), 100, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(41), resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
}
