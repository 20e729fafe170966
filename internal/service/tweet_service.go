package service

import (
	"context"
	"log/slog"

	"microblog/internal/middleware"
	"microblog/internal/models"
	"microblog/internal/observability"
	"microblog/internal/repository"
	"microblog/internal/validation"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
)

// FileRemover deletes stored media files by name.
type FileRemover interface {
	Remove(names ...string) error
}

type TweetService struct {
	tweetRepo repository.TweetRepository
	mediaRepo repository.MediaRepository
	files     FileRemover
}

type CreateTweetInput struct {
	UserID   uint   `json:"-"`
	Content  string `json:"tweet_data" validate:"max=50000"`
	MediaIDs []uint `json:"tweet_media_ids"`
}

type DeleteTweetInput struct {
	UserID  uint
	TweetID uint
}

func NewTweetService(
	tweetRepo repository.TweetRepository,
	mediaRepo repository.MediaRepository,
	files FileRemover,
) *TweetService {
	return &TweetService{
		tweetRepo: tweetRepo,
		mediaRepo: mediaRepo,
		files:     files,
	}
}

// CreateTweet stores the tweet and attaches the requested media. Media ids
// that do not exist, belong to someone else or are already attached are
// dropped without failing the request. Duplicates keep their first position.
func (s *TweetService) CreateTweet(ctx context.Context, in CreateTweetInput) (tweet *models.Tweet, err error) {
	ctx, span := observability.StartSpan(ctx, "TweetService.CreateTweet",
		attribute.Int("media.requested", len(in.MediaIDs)))
	defer func() { span.End(err) }()

	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	requested := lo.Uniq(lo.Filter(in.MediaIDs, func(id uint, _ int) bool { return id > 0 }))
	attachable, err := s.mediaRepo.FindAttachable(ctx, in.UserID, requested)
	if err != nil {
		return nil, err
	}
	owned := lo.KeyBy(attachable, func(m models.Media) uint { return m.ID })
	accepted := lo.Filter(requested, func(id uint, _ int) bool {
		_, ok := owned[id]
		return ok
	})

	if dropped := len(in.MediaIDs) - len(accepted); dropped > 0 {
		observability.MediaAttachedRejected.Add(float64(dropped))
		middleware.Logger.DebugContext(ctx, "dropped media ids on tweet create",
			slog.Int("requested", len(in.MediaIDs)), slog.Int("accepted", len(accepted)))
	}

	tweet = &models.Tweet{UserID: in.UserID, Content: in.Content}
	if err := s.tweetRepo.Create(ctx, tweet, accepted); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int64("tweet.id", int64(tweet.ID)), attribute.Int("media.accepted", len(accepted)))
	observability.TweetEvents.WithLabelValues("created").Inc()
	return tweet, nil
}

// DeleteTweet removes an owned tweet, its likes and its media. Every media
// file is resolved before anything is deleted; file removal failures after
// the commit are logged, not returned.
func (s *TweetService) DeleteTweet(ctx context.Context, in DeleteTweetInput) (err error) {
	ctx, span := observability.StartSpan(ctx, "TweetService.DeleteTweet",
		attribute.Int64("tweet.id", int64(in.TweetID)))
	defer func() { span.End(err) }()

	tweet, err := s.tweetRepo.GetByID(ctx, in.TweetID)
	if err != nil {
		return err
	}
	if tweet.UserID != in.UserID {
		return models.NewForbiddenError("The tweet belongs to another user.")
	}

	wanted := lo.Uniq(tweet.MediaIDs)
	media, err := s.mediaRepo.GetByIDs(ctx, wanted)
	if err != nil {
		return err
	}
	if len(media) != len(wanted) {
		return models.NewInvalidStateError("The tweet media could not be resolved.")
	}
	filenames := lo.Map(media, func(m models.Media, _ int) string { return m.Filename() })

	if err := s.tweetRepo.Delete(ctx, tweet.ID); err != nil {
		return err
	}
	observability.TweetEvents.WithLabelValues("deleted").Inc()

	if len(filenames) > 0 {
		if rmErr := s.files.Remove(filenames...); rmErr != nil {
			observability.MediaCleanupFailures.Inc()
			middleware.Logger.WarnContext(ctx, "failed to remove media files of deleted tweet",
				slog.Uint64("tweet_id", uint64(tweet.ID)),
				slog.String("error", rmErr.Error()),
			)
		}
	}
	return nil
}

func (s *TweetService) LikeTweet(ctx context.Context, userID, tweetID uint) error {
	if _, err := s.tweetRepo.GetByID(ctx, tweetID); err != nil {
		return err
	}
	if err := s.tweetRepo.Like(ctx, userID, tweetID); err != nil {
		if models.HasCode(err, models.CodeConflict) {
			return models.NewConflictError("The tweet is already liked.")
		}
		return err
	}
	observability.SocialEvents.WithLabelValues("like", "add").Inc()
	return nil
}

// UnlikeTweet removes the like. Unliking a tweet that is not liked is NOT_FOUND.
func (s *TweetService) UnlikeTweet(ctx context.Context, userID, tweetID uint) error {
	removed, err := s.tweetRepo.Unlike(ctx, userID, tweetID)
	if err != nil {
		return err
	}
	if !removed {
		return &models.AppError{Code: models.CodeNotFound, Message: "The tweet is not liked by this user."}
	}
	observability.SocialEvents.WithLabelValues("like", "remove").Inc()
	return nil
}
