package repository

import (
	"context"

	"microblog/internal/models"

	"gorm.io/gorm"
)

// FollowRepository persists the directed follow graph.
type FollowRepository interface {
	Create(ctx context.Context, followerID, followeeID uint) error
	// Delete removes the edge and reports whether one existed.
	Delete(ctx context.Context, followerID, followeeID uint) (bool, error)
	FolloweeIDs(ctx context.Context, followerID uint) ([]uint, error)
	Followers(ctx context.Context, userID uint) ([]models.User, error)
	Following(ctx context.Context, userID uint) ([]models.User, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, followerID, followeeID uint) error {
	follow := &models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	err := r.db.WithContext(ctx).Omit("Follower", "Followee").Create(follow).Error
	return translateError(err, "Follow", followeeID)
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *followRepository) FolloweeIDs(ctx context.Context, followerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Order("id").
		Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// Followers lists users following userID in follow order.
func (r *followRepository) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return r.listUsers(ctx, "follows.follower_id", "follows.followee_id", userID)
}

// Following lists users that userID follows in follow order.
func (r *followRepository) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return r.listUsers(ctx, "follows.followee_id", "follows.follower_id", userID)
}

func (r *followRepository) listUsers(ctx context.Context, joinCol, filterCol string, userID uint) ([]models.User, error) {
	users := make([]models.User, 0)
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN follows ON "+joinCol+" = users.id").
		Where(filterCol+" = ?", userID).
		Order("follows.id").
		Find(&users).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
