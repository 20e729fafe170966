// Package models contains data structures for the application's domain models.
package models

import "time"

// User is an account identified by an opaque API key.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	APIKey    string    `gorm:"column:api_key;uniqueIndex;not null" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"-"`
}

// UserSummary is the {id, name} projection embedded in tweets and profiles.
type UserSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Summary returns the public projection of the user.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name}
}
