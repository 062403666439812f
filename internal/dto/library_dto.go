package dto

import (
	"time"

	"gaming-community-api/internal/client"
	"gaming-community-api/internal/domain"
)

// SaveGameRequest identifies the game to toggle in the caller's library
type SaveGameRequest struct {
	IgdbGameID int `json:"igdb_game_id" binding:"required,min=1" example:"1942"`
}

// UpdateLibraryEntryRequest is the payload for editing a library entry
type UpdateLibraryEntryRequest struct {
	IsSaved       *bool `json:"is_saved,omitempty"`
	IsPlayed      *bool `json:"is_played,omitempty"`
	PlayTimeHours *int  `json:"play_time_hours,omitempty" binding:"omitempty,min=0"`
}

// ToggleResponse reports the new state after a save or played toggle
type ToggleResponse struct {
	IgdbGameID int  `json:"igdb_game_id" example:"1942"`
	Active     bool `json:"active"`
}

// LibraryEntryResponse is one game in a user's library, optionally enriched
// with catalog details
type LibraryEntryResponse struct {
	ID            string       `json:"id"`
	IgdbGameID    int          `json:"igdb_game_id"`
	IsSaved       bool         `json:"is_saved"`
	IsPlayed      bool         `json:"is_played"`
	SavedAt       *time.Time   `json:"saved_at,omitempty"`
	PlayedAt      *time.Time   `json:"played_at,omitempty"`
	PlayTimeHours *int         `json:"play_time_hours,omitempty"`
	Game          *client.Game `json:"game,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// LibraryResponse is the caller's full library with inline totals
type LibraryResponse struct {
	Games       []LibraryEntryResponse `json:"games"`
	Total       int                    `json:"total"`
	SavedCount  int                    `json:"saved_count"`
	PlayedCount int                    `json:"played_count"`
}

// GameStatusResponse reports a single game's library state for the caller
type GameStatusResponse struct {
	IgdbGameID int                   `json:"igdb_game_id"`
	InLibrary  bool                  `json:"in_library"`
	Entry      *LibraryEntryResponse `json:"entry,omitempty"`
}

// LibraryStatsResponse summarizes a user's library
type LibraryStatsResponse struct {
	TotalSaved         int `json:"total_saved"`
	TotalPlayed        int `json:"total_played"`
	TotalPlayTimeHours int `json:"total_play_time_hours"`
}

// ToLibraryEntryResponse converts a library entity to its response representation
func ToLibraryEntryResponse(entry *domain.UserGame, game *client.Game) LibraryEntryResponse {
	return LibraryEntryResponse{
		ID:            entry.ID.String(),
		IgdbGameID:    entry.IgdbGameID,
		IsSaved:       entry.IsSaved,
		IsPlayed:      entry.IsPlayed,
		SavedAt:       entry.SavedAt,
		PlayedAt:      entry.PlayedAt,
		PlayTimeHours: entry.PlayTimeHours,
		Game:          game,
		CreatedAt:     entry.CreatedAt,
	}
}
