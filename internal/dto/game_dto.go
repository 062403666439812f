package dto

import "gaming-community-api/internal/client"

// GameDetailResponse is a catalog game enriched with the caller's library
// state. The library flags are only meaningful for authenticated requests.
type GameDetailResponse struct {
	*client.Game
	IsSaved  bool `json:"is_saved"`
	IsPlayed bool `json:"is_played"`
}

// GameListResponse wraps a list of catalog games
type GameListResponse struct {
	Games []client.Game `json:"games"`
	Count int           `json:"count"`
}

// ToGameListResponse wraps catalog results
func ToGameListResponse(games []client.Game) GameListResponse {
	return GameListResponse{Games: games, Count: len(games)}
}
