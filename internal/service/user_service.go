// Package service implements the business rules on top of the repositories.
package service

import (
	"context"
	"log/slog"
	"strings"

	"microblog/internal/middleware"
	"microblog/internal/models"
	"microblog/internal/observability"
	"microblog/internal/repository"
	"microblog/internal/validation"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
)

// MsgUnknownAPIKey is returned whenever the api-key header cannot be resolved.
const MsgUnknownAPIKey = "The user was not found by api_key."

type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

type CreateUserInput struct {
	Name   string `json:"name" validate:"notblank,max=100"`
	APIKey string `json:"api_key" validate:"notblank,max=255"`
}

// Profile is a user with both sides of their follow graph.
type Profile struct {
	ID        uint                 `json:"id"`
	Name      string               `json:"name"`
	Followers []models.UserSummary `json:"followers"`
	Following []models.UserSummary `json:"following"`
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{userRepo: userRepo, followRepo: followRepo}
}

func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	user := &models.User{Name: in.Name, APIKey: in.APIKey}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if models.HasCode(err, models.CodeConflict) {
			return nil, models.NewConflictError("A user with this api_key already exists.")
		}
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "user created", slog.Uint64("created_user_id", uint64(user.ID)))
	return user, nil
}

// Authenticate resolves an api-key to its user. Missing and unknown keys are
// both reported as UNAUTHORIZED.
func (s *UserService) Authenticate(ctx context.Context, apiKey string) (*models.User, error) {
	if apiKey == "" {
		return nil, models.NewUnauthorizedError(MsgUnknownAPIKey)
	}
	user, err := s.userRepo.GetByAPIKey(ctx, apiKey)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return nil, models.NewUnauthorizedError(MsgUnknownAPIKey)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.Followers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.Following(ctx, userID)
	if err != nil {
		return nil, err
	}

	toSummary := func(u models.User, _ int) models.UserSummary { return u.Summary() }
	return &Profile{
		ID:        user.ID,
		Name:      user.Name,
		Followers: lo.Map(followers, toSummary),
		Following: lo.Map(following, toSummary),
	}, nil
}

func (s *UserService) Follow(ctx context.Context, followerID, followeeID uint) (err error) {
	ctx, span := observability.StartSpan(ctx, "UserService.Follow",
		attribute.Int64("followee.id", int64(followeeID)))
	defer func() { span.End(err) }()

	if followerID == followeeID {
		return models.NewRuleViolationError("You cannot follow yourself.")
	}

	exists, err := s.userRepo.Exists(ctx, followeeID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("User", followeeID)
	}

	if err := s.followRepo.Create(ctx, followerID, followeeID); err != nil {
		if models.HasCode(err, models.CodeConflict) {
			return models.NewConflictError("You are already following this user.")
		}
		return err
	}

	observability.SocialEvents.WithLabelValues("follow", "add").Inc()
	return nil
}

// Unfollow removes the edge. Removing an edge that does not exist is NOT_FOUND.
func (s *UserService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	removed, err := s.followRepo.Delete(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if !removed {
		return &models.AppError{Code: models.CodeNotFound, Message: "You are not following this user."}
	}

	observability.SocialEvents.WithLabelValues("follow", "remove").Inc()
	return nil
}
