package repository

import (
	"context"

	"microblog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MediaRepository defines persistence operations for uploaded media.
type MediaRepository interface {
	// Create inserts media and then calls persist with the assigned ID while
	// the transaction is still open. A persist error rolls the row back.
	Create(ctx context.Context, media *models.Media, persist func(*models.Media) error) error
	GetByIDs(ctx context.Context, ids []uint) ([]models.Media, error)
	// FindAttachable returns the subset of ids owned by userID and not yet attached.
	FindAttachable(ctx context.Context, userID uint, ids []uint) ([]models.Media, error)
}

type mediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(ctx context.Context, media *models.Media, persist func(*models.Media) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(media).Error; err != nil {
			return translateError(err, "Media", media.UserID)
		}
		if persist == nil {
			return nil
		}
		return persist(media)
	})
	if err != nil {
		media.ID = 0
		return err
	}
	return nil
}

func (r *mediaRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Media, error) {
	media := make([]models.Media, 0, len(ids))
	if len(ids) == 0 {
		return media, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&media).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return media, nil
}

func (r *mediaRepository) FindAttachable(ctx context.Context, userID uint, ids []uint) ([]models.Media, error) {
	media := make([]models.Media, 0, len(ids))
	if len(ids) == 0 {
		return media, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ? AND user_id = ? AND tweet_id IS NULL", ids, userID).
		Find(&media).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return media, nil
}
