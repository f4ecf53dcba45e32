package models

import "time"

type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Type       string    `gorm:"size:10;not null;index" json:"type"`
	Title      string    `gorm:"size:255" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	MediaURL   string    `gorm:"size:512" json:"media_url"`
	LinkURL    string    `gorm:"size:512" json:"link_url"`
	Category   string    `gorm:"size:50;index" json:"category"`
	IsPrivate  bool      `gorm:"not null;default:false;index" json:"is_private"`
	IsArchived bool      `gorm:"not null;default:false;index" json:"is_archived"`
	ViewsCount int       `gorm:"not null;default:0" json:"views_count"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}
