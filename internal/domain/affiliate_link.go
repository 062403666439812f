package domain

import "gorm.io/datatypes"

// AffiliateLink associates a store platform and purchase URL with a catalog game
type AffiliateLink struct {
	BaseModel
	IgdbGameID int            `gorm:"not null;index:idx_affiliate_links_igdb_game_id;uniqueIndex:uq_affiliate_links_game_platform" json:"igdb_game_id"`
	Platform   string         `gorm:"type:varchar(50);not null;uniqueIndex:uq_affiliate_links_game_platform" json:"platform"`
	URL        string         `gorm:"type:text;not null" json:"url"`
	IsActive   bool           `gorm:"not null;default:true" json:"is_active"`
	Metadata   datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
}

// TableName specifies the table name for AffiliateLink
func (AffiliateLink) TableName() string {
	return "affiliate_links"
}
