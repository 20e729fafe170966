package models

import (
	"fmt"
	"time"
)

// Media is an uploaded image. It is attached to at most one tweet.
type Media struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Ext       string    `gorm:"type:varchar(16);not null" json:"ext"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	TweetID   *uint     `gorm:"index" json:"tweet_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (Media) TableName() string {
	return "media"
}

// Filename is the on-disk name of the stored file.
func (m Media) Filename() string {
	return fmt.Sprintf("%d.%s", m.ID, m.Ext)
}

// Attached reports whether the media already belongs to a tweet.
func (m Media) Attached() bool {
	return m.TweetID != nil
}
