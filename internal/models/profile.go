package models

import (
	"time"
)

// Profile is the core row for one bio page, looked up by username.
type Profile struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Username    string    `gorm:"unique;not null;size:120;index" json:"username"`
	DisplayName string    `gorm:"not null;size:255" json:"display_name"`
	Tagline     *string   `gorm:"size:255" json:"tagline,omitempty"`
	AvatarURL   *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	CoverURL    *string   `gorm:"type:text" json:"cover_url,omitempty"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

type SocialLink struct {
	ID         string  `gorm:"primaryKey;size:36" json:"id"`
	ProfileID  string  `gorm:"not null;size:36;index" json:"profile_id"`
	Platform   string  `gorm:"not null;size:120" json:"platform"`
	URL        string  `gorm:"not null;type:text" json:"url"`
	Icon       *string `gorm:"size:120" json:"icon,omitempty"`
	OrderIndex int     `gorm:"not null" json:"order_index"`
}

type BioLink struct {
	ID              string  `gorm:"primaryKey;size:36" json:"id"`
	ProfileID       string  `gorm:"not null;size:36;index" json:"profile_id"`
	Name            string  `gorm:"not null;size:255" json:"name"`
	URL             string  `gorm:"not null;type:text" json:"url"`
	Description     *string `gorm:"type:text" json:"description,omitempty"`
	BackgroundImage *string `gorm:"type:text" json:"background_image,omitempty"`
	OrderIndex      int     `gorm:"not null" json:"order_index"`
}

type Product struct {
	ID         string  `gorm:"primaryKey;size:36" json:"id"`
	ProfileID  string  `gorm:"not null;size:36;index" json:"profile_id"`
	Name       string  `gorm:"not null;size:255" json:"name"`
	ImageURL   *string `gorm:"type:text" json:"image_url,omitempty"`
	Price      string  `gorm:"not null;size:120" json:"price"` // display string, not a currency value
	URL        string  `gorm:"not null;type:text" json:"url"`
	OrderIndex int     `gorm:"not null" json:"order_index"`
}

type CarouselItem struct {
	ID         string  `gorm:"primaryKey;size:36" json:"id"`
	ProfileID  string  `gorm:"not null;size:36;index" json:"profile_id"`
	Name       string  `gorm:"not null;size:255" json:"name"`
	LogoURL    *string `gorm:"type:text" json:"logo_url,omitempty"`
	URL        string  `gorm:"not null;type:text" json:"url"`
	OrderIndex int     `gorm:"not null" json:"order_index"`
}
