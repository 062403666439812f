package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gaming-community-api/internal/domain"
	"gaming-community-api/internal/dto"
	"gaming-community-api/internal/metrics"
	"gaming-community-api/internal/repository"
	"gaming-community-api/internal/response"
)

// VoteActionNone is reported when removing a vote that does not exist
const VoteActionNone = "no_vote"

// CommentService implements the threaded comment engine
type CommentService interface {
	CreateComment(ctx context.Context, userID uuid.UUID, gameID int, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	GetCommentsByGame(ctx context.Context, gameID, page, limit int) (*dto.CommentListResponse, error)
	GetUserComments(ctx context.Context, userID uuid.UUID, page, limit int) (*dto.CommentListResponse, error)
	GetCommentsCount(ctx context.Context, gameID int) (int64, error)
	UpdateComment(ctx context.Context, commentID, userID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, commentID, userID uuid.UUID) error
	VoteComment(ctx context.Context, commentID, userID uuid.UUID, voteType domain.VoteType) (*dto.VoteResponse, error)
	RemoveVote(ctx context.Context, commentID, userID uuid.UUID) (*dto.VoteResponse, error)
	AddReaction(ctx context.Context, commentID, userID uuid.UUID, reactionType domain.ReactionType) (*dto.ReactionResponse, error)
	GetCommentReactions(ctx context.Context, commentID uuid.UUID, userID *uuid.UUID) ([]dto.ReactionCountResponse, error)
	GetReplies(ctx context.Context, commentID uuid.UUID) ([]dto.CommentResponse, error)
}

// commentServiceImpl is the default implementation of CommentService
type commentServiceImpl struct {
	commentRepo  repository.CommentRepository
	voteRepo     repository.CommentVoteRepository
	reactionRepo repository.CommentReactionRepository
	logger       *zap.Logger
	metrics      *metrics.Metrics
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(
	commentRepo repository.CommentRepository,
	voteRepo repository.CommentVoteRepository,
	reactionRepo repository.CommentReactionRepository,
	logger *zap.Logger,
	m *metrics.Metrics,
) CommentService {
	return &commentServiceImpl{
		commentRepo:  commentRepo,
		voteRepo:     voteRepo,
		reactionRepo: reactionRepo,
		logger:       logger,
		metrics:      m,
	}
}

// CreateComment creates a comment or a reply. Replies must target an existing,
// non-deleted comment on the same game.
func (s *commentServiceImpl) CreateComment(ctx context.Context, userID uuid.UUID, gameID int, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if req.ParentCommentID != nil {
		parent, err := s.commentRepo.FindByID(ctx, *req.ParentCommentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewAppError(response.ErrCodeNotFound, "Parent comment not found", nil)
			}
			return nil, err
		}
		if parent.IgdbGameID != gameID {
			return nil, response.NewAppError(response.ErrCodeValidation, "Cannot reply to comment from different game", nil)
		}
	}

	comment := &domain.Comment{
		UserID:        userID,
		IgdbGameID:    gameID,
		Content:       req.Content,
		CommentType:   domain.CommentTypeDiscussion,
		IsSpoiler:     req.IsSpoiler,
		Platform:      req.Platform,
		PlaytimeHours: req.PlaytimeHours,
	}
	comment.ParentCommentID = req.ParentCommentID
	if req.CommentType != "" {
		comment.CommentType = domain.CommentType(req.CommentType)
	}
	if req.DifficultyLevel != nil {
		level := domain.DifficultyLevel(*req.DifficultyLevel)
		comment.DifficultyLevel = &level
	}
	if req.CompletionStatus != nil {
		status := domain.CompletionStatus(*req.CompletionStatus)
		comment.CompletionStatus = &status
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	if req.ParentCommentID != nil {
		if err := s.commentRepo.IncrementRepliesCount(ctx, *req.ParentCommentID); err != nil {
			return nil, err
		}
	}

	if s.metrics != nil {
		s.metrics.CommentsCreatedTotal.Inc()
	}
	s.logger.Info("comment created",
		zap.String("user_id", userID.String()),
		zap.Int("game_id", gameID),
		zap.String("comment_type", string(comment.CommentType)))

	loaded, err := s.commentRepo.FindByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToCommentResponse(loaded)
	return &resp, nil
}

// GetCommentsByGame returns a page of a game's comments, newest first
func (s *commentServiceImpl) GetCommentsByGame(ctx context.Context, gameID, page, limit int) (*dto.CommentListResponse, error) {
	page, limit = normalizePagination(page, limit)

	comments, total, err := s.commentRepo.FindByGameID(ctx, gameID, page, limit)
	if err != nil {
		return nil, err
	}
	return buildCommentList(comments, total, page, limit), nil
}

// GetUserComments returns a page of one user's comments, newest first
func (s *commentServiceImpl) GetUserComments(ctx context.Context, userID uuid.UUID, page, limit int) (*dto.CommentListResponse, error) {
	page, limit = normalizePagination(page, limit)

	comments, total, err := s.commentRepo.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}
	return buildCommentList(comments, total, page, limit), nil
}

// GetCommentsCount counts a game's non-deleted comments
func (s *commentServiceImpl) GetCommentsCount(ctx context.Context, gameID int) (int64, error) {
	return s.commentRepo.CountByGameID(ctx, gameID)
}

// UpdateComment edits a comment's content; only the author may edit
func (s *commentServiceImpl) UpdateComment(ctx context.Context, commentID, userID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.getComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, response.NewAppError(response.ErrCodeForbidden, "You can only edit your own comments", nil)
	}

	comment.Content = req.Content
	comment.IsEdited = true
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("comment updated",
		zap.String("user_id", userID.String()),
		zap.String("comment_id", commentID.String()))

	resp := dto.ToCommentResponse(comment)
	return &resp, nil
}

// DeleteComment soft-deletes a comment; only the author may delete
func (s *commentServiceImpl) DeleteComment(ctx context.Context, commentID, userID uuid.UUID) error {
	comment, err := s.getComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return response.NewAppError(response.ErrCodeForbidden, "You can only delete your own comments", nil)
	}

	if err := s.commentRepo.SoftDelete(ctx, commentID); err != nil {
		return err
	}
	s.logger.Info("comment deleted",
		zap.String("user_id", userID.String()),
		zap.String("comment_id", commentID.String()))
	return nil
}

// VoteComment applies the three-way vote toggle and returns the fresh counters
func (s *commentServiceImpl) VoteComment(ctx context.Context, commentID, userID uuid.UUID, voteType domain.VoteType) (*dto.VoteResponse, error) {
	if _, err := s.getComment(ctx, commentID); err != nil {
		return nil, err
	}

	result, err := s.voteRepo.ApplyVote(ctx, commentID, userID, voteType)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.VotesCastTotal.WithLabelValues(string(result.Action)).Inc()
	}
	s.logger.Info("vote applied",
		zap.String("user_id", userID.String()),
		zap.String("comment_id", commentID.String()),
		zap.String("action", string(result.Action)))

	return s.voteResponse(ctx, commentID, string(result.Action), result.PreviousVote)
}

// RemoveVote clears the caller's vote if one exists
func (s *commentServiceImpl) RemoveVote(ctx context.Context, commentID, userID uuid.UUID) (*dto.VoteResponse, error) {
	if _, err := s.getComment(ctx, commentID); err != nil {
		return nil, err
	}

	vote, err := s.voteRepo.FindVote(ctx, commentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.voteResponse(ctx, commentID, VoteActionNone, nil)
		}
		return nil, err
	}

	// Toggling with the current type removes the vote
	result, err := s.voteRepo.ApplyVote(ctx, commentID, userID, vote.VoteType)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.VotesCastTotal.WithLabelValues(string(result.Action)).Inc()
	}
	return s.voteResponse(ctx, commentID, string(result.Action), result.PreviousVote)
}

func (s *commentServiceImpl) voteResponse(ctx context.Context, commentID uuid.UUID, action string, previous *domain.VoteType) (*dto.VoteResponse, error) {
	comment, err := s.getComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	resp := &dto.VoteResponse{
		Comment:       dto.ToCommentResponse(comment),
		Action:        action,
		LikesCount:    comment.LikesCount,
		DislikesCount: comment.DislikesCount,
	}
	if previous != nil {
		prev := string(*previous)
		resp.PreviousVote = &prev
	}
	return resp, nil
}

// AddReaction toggles a reaction and returns the live per-type count
func (s *commentServiceImpl) AddReaction(ctx context.Context, commentID, userID uuid.UUID, reactionType domain.ReactionType) (*dto.ReactionResponse, error) {
	if _, err := s.getComment(ctx, commentID); err != nil {
		return nil, err
	}

	added, err := s.reactionRepo.Toggle(ctx, commentID, userID, reactionType)
	if err != nil {
		return nil, err
	}
	count, err := s.reactionRepo.CountByType(ctx, commentID, reactionType)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ReactionsToggledTotal.WithLabelValues(string(reactionType), strconv.FormatBool(added)).Inc()
	}
	s.logger.Info("reaction toggled",
		zap.String("user_id", userID.String()),
		zap.String("comment_id", commentID.String()),
		zap.String("reaction_type", string(reactionType)),
		zap.Bool("added", added))

	return &dto.ReactionResponse{
		ReactionType: string(reactionType),
		Active:       added,
		Count:        count,
	}, nil
}

// GetCommentReactions returns per-type totals, flagging the caller's own reactions
func (s *commentServiceImpl) GetCommentReactions(ctx context.Context, commentID uuid.UUID, userID *uuid.UUID) ([]dto.ReactionCountResponse, error) {
	if _, err := s.getComment(ctx, commentID); err != nil {
		return nil, err
	}

	counts, err := s.reactionRepo.GroupCounts(ctx, commentID)
	if err != nil {
		return nil, err
	}

	userReactions := map[domain.ReactionType]bool{}
	if userID != nil {
		types, err := s.reactionRepo.FindUserReactions(ctx, commentID, *userID)
		if err != nil {
			return nil, err
		}
		for _, t := range types {
			userReactions[t] = true
		}
	}

	result := make([]dto.ReactionCountResponse, 0, len(counts))
	for _, c := range counts {
		result = append(result, dto.ReactionCountResponse{
			ReactionType:   string(c.ReactionType),
			Count:          c.Count,
			UserHasReacted: userReactions[c.ReactionType],
		})
	}
	return result, nil
}

// GetReplies returns a comment's direct children, oldest first
func (s *commentServiceImpl) GetReplies(ctx context.Context, commentID uuid.UUID) ([]dto.CommentResponse, error) {
	if _, err := s.getComment(ctx, commentID); err != nil {
		return nil, err
	}

	replies, err := s.commentRepo.FindReplies(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return dto.ToCommentResponses(replies), nil
}

func (s *commentServiceImpl) getComment(ctx context.Context, commentID uuid.UUID) (*domain.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Comment not found", nil)
		}
		return nil, err
	}
	return comment, nil
}

func normalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func buildCommentList(comments []*domain.Comment, total int64, page, limit int) *dto.CommentListResponse {
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	return &dto.CommentListResponse{
		Comments: dto.ToCommentResponses(comments),
		Pagination: dto.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}
