package repository

import (
	"context"
	"fmt"

	"microblog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TweetRepository defines the interface for tweet data operations
type TweetRepository interface {
	// Create inserts the tweet and attaches mediaIDs to it in one transaction.
	// mediaIDs must already be filtered to the author's unattached media.
	Create(ctx context.Context, tweet *models.Tweet, mediaIDs []uint) error
	GetByID(ctx context.Context, id uint) (*models.Tweet, error)
	// Delete removes the tweet with its likes and media rows in one transaction.
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, userID, tweetID uint) error
	// Unlike removes the like and reports whether one existed.
	Unlike(ctx context.Context, userID, tweetID uint) (bool, error)
	// Feed returns every tweet written by authorIDs, most liked first.
	Feed(ctx context.Context, authorIDs []uint) ([]models.Tweet, error)
}

// tweetRepository implements TweetRepository
type tweetRepository struct {
	db *gorm.DB
}

// NewTweetRepository creates a new tweet repository
func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet, mediaIDs []uint) error {
	tweet.MediaIDs = mediaIDs
	if tweet.MediaIDs == nil {
		tweet.MediaIDs = []uint{}
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(tweet).Error; err != nil {
			return translateError(err, "Tweet", tweet.UserID)
		}
		if len(mediaIDs) == 0 {
			return nil
		}

		result := tx.Model(&models.Media{}).
			Where("id IN ? AND user_id = ? AND tweet_id IS NULL", mediaIDs, tweet.UserID).
			Update("tweet_id", tweet.ID)
		if result.Error != nil {
			return models.NewInternalError(result.Error)
		}
		if result.RowsAffected != int64(len(mediaIDs)) {
			return models.NewConflictError("Media was attached to another tweet concurrently")
		}
		return nil
	})
	if err != nil {
		tweet.ID = 0
		return translateError(err, "Tweet", tweet.UserID)
	}
	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id uint) (*models.Tweet, error) {
	var tweet models.Tweet
	if err := r.db.WithContext(ctx).First(&tweet, id).Error; err != nil {
		return nil, translateError(err, "Tweet", id)
	}
	return &tweet, nil
}

func (r *tweetRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tweet_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("tweet_id = ?", id).Delete(&models.Media{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		result := tx.Delete(&models.Tweet{}, id)
		if result.Error != nil {
			return models.NewInternalError(result.Error)
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Tweet", id)
		}
		return nil
	})
}

func (r *tweetRepository) Like(ctx context.Context, userID, tweetID uint) error {
	like := &models.Like{UserID: userID, TweetID: tweetID}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(like).Error
	if err != nil && isForeignKeyError(err) {
		return models.NewNotFoundError("Tweet", tweetID)
	}
	return translateError(err, "Like", tweetID)
}

func (r *tweetRepository) Unlike(ctx context.Context, userID, tweetID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// likesCountSelect computes the like count per row with a correlated subquery.
// ORDER BY can reference the alias on both PostgreSQL and SQLite.
const likesCountSelect = "tweets.*, (SELECT COUNT(*) FROM likes WHERE likes.tweet_id = tweets.id) AS likes_count"

func (r *tweetRepository) Feed(ctx context.Context, authorIDs []uint) ([]models.Tweet, error) {
	tweets := make([]models.Tweet, 0)
	if len(authorIDs) == 0 {
		return tweets, nil
	}

	err := r.db.WithContext(ctx).
		Select(likesCountSelect).
		Where("tweets.user_id IN ?", authorIDs).
		Preload("Author").
		Preload("Attachments").
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Order("likes.id")
		}).
		Preload("Likes.User").
		Order("likes_count DESC").
		Order("tweets.id DESC").
		Find(&tweets).Error
	if err != nil {
		return nil, models.NewInternalError(fmt.Errorf("load feed: %w", err))
	}
	return tweets, nil
}
