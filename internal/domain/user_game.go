package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserGame represents a game in a user's library with saved/played toggle state
type UserGame struct {
	BaseModel
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_games_user_id;uniqueIndex:uq_user_games_user_game" json:"user_id"`
	IgdbGameID    int        `gorm:"not null;index:idx_user_games_igdb_game_id;uniqueIndex:uq_user_games_user_game" json:"igdb_game_id"`
	IsSaved       bool       `gorm:"not null;default:true" json:"is_saved"`
	IsPlayed      bool       `gorm:"not null;default:false" json:"is_played"`
	SavedAt       *time.Time `gorm:"type:timestamp" json:"saved_at"`
	PlayedAt      *time.Time `gorm:"type:timestamp" json:"played_at"`
	PlayTimeHours *int       `json:"play_time_hours"`
}

// TableName specifies the table name for UserGame
func (UserGame) TableName() string {
	return "user_games"
}
