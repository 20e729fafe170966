// Package seed populates the database with demo users, tweets, follows and
// likes. It is intended for development and testing only.
package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"microblog/internal/middleware"
	"microblog/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers       int
	TweetsPerUser  int
	FollowsPerUser int
	MaxLikes       int
	ShouldClean    bool
}

// Seeder writes generated rows in batches.
type Seeder struct {
	db  *gorm.DB
	rnd *rand.Rand
}

type Result struct {
	Users   []models.User
	Tweets  []models.Tweet
	Follows int
	Likes   int
}

// NewSeeder returns a seeder; a non-zero seed makes the generated data reproducible.
func NewSeeder(db *gorm.DB, seed int64) *Seeder {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gofakeit.Seed(seed)
	return &Seeder{db: db, rnd: rand.New(rand.NewSource(seed))}
}

// Run clears (optionally) and seeds everything described by opts.
func (s *Seeder) Run(opts Options) (*Result, error) {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return nil, err
		}
	}

	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return nil, err
	}
	tweets, err := s.SeedTweets(users, opts.TweetsPerUser)
	if err != nil {
		return nil, err
	}
	follows, err := s.SeedFollows(users, opts.FollowsPerUser)
	if err != nil {
		return nil, err
	}
	likes, err := s.SeedLikes(users, tweets, opts.MaxLikes)
	if err != nil {
		return nil, err
	}

	middleware.Logger.Info("database seeded",
		slog.Int("users", len(users)),
		slog.Int("tweets", len(tweets)),
		slog.Int("follows", follows),
		slog.Int("likes", likes),
	)
	return &Result{Users: users, Tweets: tweets, Follows: follows, Likes: likes}, nil
}

// ClearAll deletes every seeded table, children first.
func (s *Seeder) ClearAll() error {
	for _, model := range []interface{}{&models.Like{}, &models.Follow{}, &models.Media{}, &models.Tweet{}, &models.User{}} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// SeedUsers creates n users. The first one gets the well-known api key "test".
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		key := uuid.NewString()
		if i == 0 {
			key = "test"
		}
		users = append(users, models.User{Name: gofakeit.Username(), APIKey: key})
	}
	if len(users) == 0 {
		return users, nil
	}
	if err := s.db.CreateInBatches(&users, 100).Error; err != nil {
		return nil, fmt.Errorf("create users: %w", err)
	}
	return users, nil
}

func (s *Seeder) SeedTweets(users []models.User, perUser int) ([]models.Tweet, error) {
	tweets := make([]models.Tweet, 0, len(users)*perUser)
	for _, u := range users {
		for i := 0; i < perUser; i++ {
			tweets = append(tweets, models.Tweet{
				UserID:   u.ID,
				Content:  strings.TrimSpace(gofakeit.HipsterSentence(8 + s.rnd.Intn(12))),
				MediaIDs: []uint{},
			})
		}
	}
	if len(tweets) == 0 {
		return tweets, nil
	}
	if err := s.db.Omit("Author", "Attachments", "Likes").CreateInBatches(&tweets, 200).Error; err != nil {
		return nil, fmt.Errorf("create tweets: %w", err)
	}
	return tweets, nil
}

// SeedFollows gives every user up to perUser distinct followees.
func (s *Seeder) SeedFollows(users []models.User, perUser int) (int, error) {
	var follows []models.Follow
	for _, u := range users {
		others := lo.Filter(users, func(o models.User, _ int) bool { return o.ID != u.ID })
		for _, o := range s.pick(others, perUser) {
			follows = append(follows, models.Follow{FollowerID: u.ID, FolloweeID: o.ID})
		}
	}
	if len(follows) == 0 {
		return 0, nil
	}
	if err := s.db.Omit("Follower", "Followee").CreateInBatches(&follows, 200).Error; err != nil {
		return 0, fmt.Errorf("create follows: %w", err)
	}
	return len(follows), nil
}

// SeedLikes adds between zero and maxLikes distinct likes to each tweet.
func (s *Seeder) SeedLikes(users []models.User, tweets []models.Tweet, maxLikes int) (int, error) {
	if maxLikes <= 0 {
		return 0, nil
	}
	var likes []models.Like
	for _, t := range tweets {
		for _, u := range s.pick(users, s.rnd.Intn(maxLikes+1)) {
			likes = append(likes, models.Like{UserID: u.ID, TweetID: t.ID})
		}
	}
	if len(likes) == 0 {
		return 0, nil
	}
	if err := s.db.Omit("User").CreateInBatches(&likes, 500).Error; err != nil {
		return 0, fmt.Errorf("create likes: %w", err)
	}
	return len(likes), nil
}

// pick returns up to n distinct random elements of users.
func (s *Seeder) pick(users []models.User, n int) []models.User {
	n = max(0, min(n, len(users)))
	idx := s.rnd.Perm(len(users))[:n]
	return lo.Map(idx, func(i int, _ int) models.User { return users[i] })
}
