package service

import (
	"context"

	"microblog/internal/models"
	"microblog/internal/observability"
	"microblog/internal/repository"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
)

// URLFunc maps a stored media filename to the URL clients fetch it from.
type URLFunc func(filename string) string

type FeedService struct {
	tweetRepo  repository.TweetRepository
	followRepo repository.FollowRepository
	urlFor     URLFunc
}

// FeedTweet is one entry of the feed response.
type FeedTweet struct {
	ID          uint               `json:"id"`
	Content     string             `json:"content"`
	Attachments []string           `json:"attachments"`
	Author      models.UserSummary `json:"author"`
	Likes       []LikeSummary      `json:"likes"`
}

// LikeSummary identifies a user who liked a tweet.
type LikeSummary struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
}

func NewFeedService(tweetRepo repository.TweetRepository, followRepo repository.FollowRepository, urlFor URLFunc) *FeedService {
	return &FeedService{tweetRepo: tweetRepo, followRepo: followRepo, urlFor: urlFor}
}

// GetFeed returns the viewer's tweets and the tweets of everyone they follow,
// most liked first and newest first among equals.
func (s *FeedService) GetFeed(ctx context.Context, viewerID uint) (feed []FeedTweet, err error) {
	ctx, span := observability.StartSpan(ctx, "FeedService.GetFeed")
	defer func() { span.End(err) }()

	followees, err := s.followRepo.FolloweeIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	authors := lo.Uniq(append([]uint{viewerID}, followees...))

	tweets, err := s.tweetRepo.Feed(ctx, authors)
	if err != nil {
		return nil, err
	}

	feed = lo.Map(tweets, func(t models.Tweet, _ int) FeedTweet { return s.toFeedTweet(t) })
	span.SetAttributes(attribute.Int("feed.authors", len(authors)), attribute.Int("feed.size", len(feed)))
	observability.FeedSize.Observe(float64(len(feed)))
	return feed, nil
}

func (s *FeedService) toFeedTweet(t models.Tweet) FeedTweet {
	byID := lo.KeyBy(t.Attachments, func(m models.Media) uint { return m.ID })
	attachments := lo.FilterMap(t.MediaIDs, func(id uint, _ int) (string, bool) {
		m, ok := byID[id]
		if !ok {
			return "", false
		}
		return s.urlFor(m.Filename()), true
	})

	return FeedTweet{
		ID:          t.ID,
		Content:     t.Content,
		Attachments: attachments,
		Author:      t.Author.Summary(),
		Likes: lo.Map(t.Likes, func(l models.Like, _ int) LikeSummary {
			return LikeSummary{UserID: l.UserID, Name: l.User.Name}
		}),
	}
}
