package dto

import (
	"encoding/json"
	"time"

	"gaming-community-api/internal/domain"
)

// CreateAffiliateLinkRequest is the payload for registering a store link
type CreateAffiliateLinkRequest struct {
	IgdbGameID int             `json:"igdb_game_id" binding:"required,min=1" example:"1942"`
	Platform   string          `json:"platform" binding:"required,min=1,max=100" example:"steam"`
	URL        string          `json:"url" binding:"required,url" example:"https://store.steampowered.com/app/1091500"`
	Metadata   json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
}

// AffiliateLinkResponse is the public representation of a store link
type AffiliateLinkResponse struct {
	ID         string          `json:"id"`
	IgdbGameID int             `json:"igdb_game_id"`
	Platform   string          `json:"platform"`
	URL        string          `json:"url"`
	IsActive   bool            `json:"is_active"`
	Metadata   json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToAffiliateLinkResponse converts a link entity to its response representation
func ToAffiliateLinkResponse(link *domain.AffiliateLink) AffiliateLinkResponse {
	return AffiliateLinkResponse{
		ID:         link.ID.String(),
		IgdbGameID: link.IgdbGameID,
		Platform:   link.Platform,
		URL:        link.URL,
		IsActive:   link.IsActive,
		Metadata:   json.RawMessage(link.Metadata),
		CreatedAt:  link.CreatedAt,
	}
}

// ToAffiliateLinkResponses converts a slice of link entities
func ToAffiliateLinkResponses(links []*domain.AffiliateLink) []AffiliateLinkResponse {
	responses := make([]AffiliateLinkResponse, 0, len(links))
	for _, link := range links {
		responses = append(responses, ToAffiliateLinkResponse(link))
	}
	return responses
}
