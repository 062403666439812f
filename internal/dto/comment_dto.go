package dto

import (
	"time"

	"github.com/google/uuid"

	"gaming-community-api/internal/domain"
)

// CreateCommentRequest is the payload for creating a comment or a reply
type CreateCommentRequest struct {
	IgdbGameID       int        `json:"igdb_game_id" binding:"required,min=1" example:"1942"`
	Content          string     `json:"content" binding:"required,min=1,max=5000" example:"The boss on floor 3 is brutal"`
	ParentCommentID  *uuid.UUID `json:"parent_comment_id,omitempty"`
	IsSpoiler        bool       `json:"is_spoiler" example:"false"`
	CommentType      string     `json:"comment_type" binding:"omitempty,oneof=discussion tip review bug_report fan_content meme" example:"tip"`
	Platform         *string    `json:"platform,omitempty" example:"PC"`
	DifficultyLevel  *string    `json:"difficulty_level,omitempty" binding:"omitempty,oneof=easy medium hard very_hard" example:"hard"`
	CompletionStatus *string    `json:"completion_status,omitempty" binding:"omitempty,oneof=in_progress completed dropped on_hold" example:"completed"`
	PlaytimeHours    *int       `json:"playtime_hours,omitempty" binding:"omitempty,min=0" example:"42"`
}

// UpdateCommentRequest is the payload for editing a comment's content
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// VoteRequest is the payload for the three-way vote toggle
type VoteRequest struct {
	VoteType string `json:"vote_type" binding:"required,oneof=like dislike" example:"like"`
}

// ReactionRequest is the payload for toggling a reaction
type ReactionRequest struct {
	ReactionType string `json:"reaction_type" binding:"required,oneof=fire hundred pro_tip helpful funny rip" example:"fire"`
}

// CommentResponse is the public representation of a comment
type CommentResponse struct {
	ID               string            `json:"id"`
	UserID           string            `json:"user_id"`
	User             *UserResponse     `json:"user,omitempty"`
	IgdbGameID       int               `json:"igdb_game_id"`
	Content          string            `json:"content"`
	IsEdited         bool              `json:"is_edited"`
	ParentCommentID  *string           `json:"parent_comment_id,omitempty"`
	IsSpoiler        bool              `json:"is_spoiler"`
	CommentType      string            `json:"comment_type"`
	Platform         *string           `json:"platform,omitempty"`
	DifficultyLevel  *string           `json:"difficulty_level,omitempty"`
	CompletionStatus *string           `json:"completion_status,omitempty"`
	PlaytimeHours    *int              `json:"playtime_hours,omitempty"`
	IsPinned         bool              `json:"is_pinned"`
	PinnedAt         *time.Time        `json:"pinned_at,omitempty"`
	LikesCount       int               `json:"likes_count"`
	DislikesCount    int               `json:"dislikes_count"`
	RepliesCount     int               `json:"replies_count"`
	HelpfulCount     int               `json:"helpful_count"`
	UserVote         *string           `json:"user_vote,omitempty"`
	UserReactions    []string          `json:"user_reactions,omitempty"`
	Replies          []CommentResponse `json:"replies,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// VoteResponse is returned after applying a vote toggle
type VoteResponse struct {
	Comment       CommentResponse `json:"comment"`
	Action        string          `json:"action" example:"liked"`
	PreviousVote  *string         `json:"previous_vote,omitempty" example:"dislike"`
	LikesCount    int             `json:"likes_count"`
	DislikesCount int             `json:"dislikes_count"`
}

// ReactionResponse is returned after toggling a reaction
type ReactionResponse struct {
	ReactionType string `json:"reaction_type" example:"helpful"`
	Active       bool   `json:"active"`
	Count        int64  `json:"count"`
}

// ReactionCountResponse is one entry of the per-type reaction totals
type ReactionCountResponse struct {
	ReactionType   string `json:"reaction_type" example:"fire"`
	Count          int64  `json:"count" example:"7"`
	UserHasReacted bool   `json:"user_has_reacted"`
}

// Pagination describes an offset-paginated result window
type Pagination struct {
	Page       int   `json:"page" example:"1"`
	Limit      int   `json:"limit" example:"20"`
	Total      int64 `json:"total" example:"134"`
	TotalPages int   `json:"total_pages" example:"7"`
}

// CommentListResponse is a page of comments with pagination info
type CommentListResponse struct {
	Comments   []CommentResponse `json:"comments"`
	Pagination Pagination        `json:"pagination"`
}

// ToCommentResponse converts a comment entity to its response representation
func ToCommentResponse(comment *domain.Comment) CommentResponse {
	resp := CommentResponse{
		ID:            comment.ID.String(),
		UserID:        comment.UserID.String(),
		IgdbGameID:    comment.IgdbGameID,
		Content:       comment.Content,
		IsEdited:      comment.IsEdited,
		IsSpoiler:     comment.IsSpoiler,
		CommentType:   string(comment.CommentType),
		Platform:      comment.Platform,
		PlaytimeHours: comment.PlaytimeHours,
		IsPinned:      comment.IsPinned,
		PinnedAt:      comment.PinnedAt,
		LikesCount:    comment.LikesCount,
		DislikesCount: comment.DislikesCount,
		RepliesCount:  comment.RepliesCount,
		HelpfulCount:  comment.HelpfulCount,
		CreatedAt:     comment.CreatedAt,
		UpdatedAt:     comment.UpdatedAt,
	}
	if comment.ParentCommentID != nil {
		id := comment.ParentCommentID.String()
		resp.ParentCommentID = &id
	}
	if comment.DifficultyLevel != nil {
		level := string(*comment.DifficultyLevel)
		resp.DifficultyLevel = &level
	}
	if comment.CompletionStatus != nil {
		status := string(*comment.CompletionStatus)
		resp.CompletionStatus = &status
	}
	if comment.User.ID != uuid.Nil {
		user := ToUserResponse(&comment.User)
		resp.User = &user
	}
	return resp
}

// ToCommentResponses converts a slice of comment entities
func ToCommentResponses(comments []*domain.Comment) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, ToCommentResponse(comment))
	}
	return responses
}
