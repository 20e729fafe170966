// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"testing"

	"microblog/internal/database"
	"microblog/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLiteDB returns a migrated in-memory database with foreign keys enforced.
// The pool is pinned to one connection so every query sees the same memory DB.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), database.GormConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

// CreateUser inserts a user with a random name and API key.
func CreateUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	u := &models.User{Name: gofakeit.Username(), APIKey: uuid.NewString()}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// CreateTweet inserts a tweet for the author.
func CreateTweet(t *testing.T, db *gorm.DB, author *models.User, content string) *models.Tweet {
	t.Helper()
	tw := &models.Tweet{UserID: author.ID, Content: content, MediaIDs: []uint{}}
	if err := db.Create(tw).Error; err != nil {
		t.Fatalf("create tweet: %v", err)
	}
	return tw
}

// CreateMedia inserts an unattached media row owned by the user.
func CreateMedia(t *testing.T, db *gorm.DB, owner *models.User, ext string) *models.Media {
	t.Helper()
	m := &models.Media{UserID: owner.ID, Ext: ext}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("create media: %v", err)
	}
	return m
}

// Like records a like by user on tweet.
func Like(t *testing.T, db *gorm.DB, user *models.User, tweet *models.Tweet) {
	t.Helper()
	if err := db.Create(&models.Like{UserID: user.ID, TweetID: tweet.ID}).Error; err != nil {
		t.Fatalf("create like: %v", err)
	}
}

// Follow records follower -> followee.
func Follow(t *testing.T, db *gorm.DB, follower, followee *models.User) {
	t.Helper()
	if err := db.Create(&models.Follow{FollowerID: follower.ID, FolloweeID: followee.ID}).Error; err != nil {
		t.Fatalf("create follow %d->%d: %v", follower.ID, followee.ID, err)
	}
}
