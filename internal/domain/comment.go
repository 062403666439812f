package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VoteType represents the direction of a comment vote
type VoteType string

const (
	VoteTypeLike    VoteType = "like"
	VoteTypeDislike VoteType = "dislike"
)

// Valid reports whether v is a known vote type
func (v VoteType) Valid() bool {
	return v == VoteTypeLike || v == VoteTypeDislike
}

// ReactionType represents a reaction emoji category on a comment
type ReactionType string

const (
	ReactionFire    ReactionType = "fire"
	ReactionHundred ReactionType = "hundred"
	ReactionProTip  ReactionType = "pro_tip"
	ReactionHelpful ReactionType = "helpful"
	ReactionFunny   ReactionType = "funny"
	ReactionRIP     ReactionType = "rip"
)

// Valid reports whether r is a known reaction type
func (r ReactionType) Valid() bool {
	switch r {
	case ReactionFire, ReactionHundred, ReactionProTip, ReactionHelpful, ReactionFunny, ReactionRIP:
		return true
	}
	return false
}

// CommentType classifies the kind of comment
type CommentType string

const (
	CommentTypeDiscussion CommentType = "discussion"
	CommentTypeTip        CommentType = "tip"
	CommentTypeReview     CommentType = "review"
	CommentTypeBugReport  CommentType = "bug_report"
	CommentTypeFanContent CommentType = "fan_content"
	CommentTypeMeme       CommentType = "meme"
)

// Valid reports whether t is a known comment type
func (t CommentType) Valid() bool {
	switch t {
	case CommentTypeDiscussion, CommentTypeTip, CommentTypeReview,
		CommentTypeBugReport, CommentTypeFanContent, CommentTypeMeme:
		return true
	}
	return false
}

// DifficultyLevel describes how hard the commenter found the game
type DifficultyLevel string

const (
	DifficultyEasy     DifficultyLevel = "easy"
	DifficultyMedium   DifficultyLevel = "medium"
	DifficultyHard     DifficultyLevel = "hard"
	DifficultyVeryHard DifficultyLevel = "very_hard"
)

// CompletionStatus describes the commenter's progress in the game
type CompletionStatus string

const (
	CompletionInProgress CompletionStatus = "in_progress"
	CompletionCompleted  CompletionStatus = "completed"
	CompletionDropped    CompletionStatus = "dropped"
	CompletionOnHold     CompletionStatus = "on_hold"
)

// Comment represents a user comment on a game, optionally a reply to another comment.
// Vote, reply and helpful-reaction totals are denormalized onto the row and kept in
// step with the child tables by paired increment/decrement statements.
type Comment struct {
	BaseModel
	UserID           uuid.UUID         `gorm:"type:uuid;not null;index:idx_comments_user_id" json:"user_id"`
	User             User              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	IgdbGameID       int               `gorm:"not null;index:idx_comments_igdb_game_id" json:"igdb_game_id"`
	Content          string            `gorm:"type:text;not null" json:"content"`
	IsEdited         bool              `gorm:"not null;default:false" json:"is_edited"`
	ParentCommentID  *uuid.UUID        `gorm:"type:uuid;index:idx_comments_parent_comment_id" json:"parent_comment_id"`
	ParentComment    *Comment          `gorm:"foreignKey:ParentCommentID;constraint:OnDelete:CASCADE" json:"parent_comment,omitempty"`
	Replies          []Comment         `gorm:"foreignKey:ParentCommentID" json:"replies,omitempty"`
	IsSpoiler        bool              `gorm:"not null;default:false" json:"is_spoiler"`
	CommentType      CommentType       `gorm:"type:varchar(50);not null;default:'discussion';index:idx_comments_comment_type" json:"comment_type"`
	Platform         *string           `gorm:"type:varchar(100)" json:"platform"`
	DifficultyLevel  *DifficultyLevel  `gorm:"type:varchar(50)" json:"difficulty_level"`
	CompletionStatus *CompletionStatus `gorm:"type:varchar(50)" json:"completion_status"`
	PlaytimeHours    *int              `json:"playtime_hours"`
	IsPinned         bool              `gorm:"not null;default:false;index:idx_comments_is_pinned" json:"is_pinned"`
	PinnedAt         *time.Time        `gorm:"type:timestamp" json:"pinned_at"`
	PinnedByUserID   *uuid.UUID        `gorm:"type:uuid" json:"pinned_by_user_id"`
	LikesCount       int               `gorm:"not null;default:0" json:"likes_count"`
	DislikesCount    int               `gorm:"not null;default:0" json:"dislikes_count"`
	RepliesCount     int               `gorm:"not null;default:0" json:"replies_count"`
	HelpfulCount     int               `gorm:"not null;default:0" json:"helpful_count"`
	Votes            []CommentVote     `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"votes,omitempty"`
	Reactions        []CommentReaction `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"reactions,omitempty"`
	DeletedAt        gorm.DeletedAt    `gorm:"index:idx_comments_deleted_at" json:"deleted_at,omitempty"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// CommentVote represents a single user's vote on a comment.
// The unique (comment_id, user_id) index guarantees at most one active vote
// per user per comment even under concurrent toggles.
type CommentVote struct {
	BaseModel
	CommentID uuid.UUID `gorm:"type:uuid;not null;index:idx_comment_votes_comment_id;uniqueIndex:uq_comment_votes_comment_user" json:"comment_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_comment_votes_user_id;uniqueIndex:uq_comment_votes_comment_user" json:"user_id"`
	VoteType  VoteType  `gorm:"type:varchar(20);not null;index:idx_comment_votes_vote_type" json:"vote_type"`
	Comment   Comment   `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"comment,omitempty"`
}

// TableName specifies the table name for CommentVote
func (CommentVote) TableName() string {
	return "comment_votes"
}

// CommentReaction represents a reaction by a user on a comment. Unlike votes,
// the unique key includes the reaction type, so one user can hold several
// distinct reactions on the same comment at once.
type CommentReaction struct {
	BaseModel
	CommentID    uuid.UUID    `gorm:"type:uuid;not null;index:idx_comment_reactions_comment_id;uniqueIndex:uq_comment_reactions_comment_user_type" json:"comment_id"`
	UserID       uuid.UUID    `gorm:"type:uuid;not null;index:idx_comment_reactions_user_id;uniqueIndex:uq_comment_reactions_comment_user_type" json:"user_id"`
	ReactionType ReactionType `gorm:"type:varchar(20);not null;index:idx_comment_reactions_reaction_type;uniqueIndex:uq_comment_reactions_comment_user_type" json:"reaction_type"`
	Comment      Comment      `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"comment,omitempty"`
}

// TableName specifies the table name for CommentReaction
func (CommentReaction) TableName() string {
	return "comment_reactions"
}
