package domain

// User represents a local account bridged from the external identity provider
type User struct {
	BaseModel
	ProviderUID string     `gorm:"type:varchar(128);not null;uniqueIndex:uq_users_provider_uid" json:"provider_uid"`
	Email       string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email" json:"email"`
	DisplayName string     `gorm:"type:varchar(255)" json:"display_name"`
	PhotoURL    string     `gorm:"type:text" json:"photo_url"`
	Games       []UserGame `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"games,omitempty"`
	Comments    []Comment  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
