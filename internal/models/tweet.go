package models

import "time"

// Tweet is a short text post. MediaIDs keeps the attachment order accepted at creation.
type Tweet struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	MediaIDs  []uint    `gorm:"column:medias;serializer:json;type:text" json:"medias"`
	CreatedAt time.Time `json:"created_at"`

	// Computed by the feed query, never persisted.
	LikesCount int `gorm:"->;-:migration" json:"likes_count"`

	// Relationships
	Author      User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"author"`
	Attachments []Media `gorm:"foreignKey:TweetID;constraint:OnDelete:CASCADE" json:"-"`
	Likes       []Like  `gorm:"foreignKey:TweetID;constraint:OnDelete:CASCADE" json:"-"`
}
