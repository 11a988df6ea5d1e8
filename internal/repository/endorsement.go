package repository

import (
	"context"

	"guildbook/internal/cache"
	"guildbook/internal/models"

	"gorm.io/gorm"
)

// EndorsementRepository defines the interface for endorsement data operations.
// Uniqueness of the (guide, voter) pair lives in the composite primary key;
// two concurrent inserts for the same pair cannot both land.
type EndorsementRepository interface {
	Exists(ctx context.Context, guideID uint, voterKey string) (bool, error)
	Insert(ctx context.Context, guideID uint, voterKey string) error
	Delete(ctx context.Context, guideID uint, voterKey string) error
	CountByGuide(ctx context.Context, guideID uint) (int64, error)
}

type endorsementRepository struct {
	db *gorm.DB
}

// NewEndorsementRepository creates a new endorsement repository.
func NewEndorsementRepository(db *gorm.DB) EndorsementRepository {
	return &endorsementRepository{db: db}
}

func (r *endorsementRepository) Exists(ctx context.Context, guideID uint, voterKey string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Endorsement{}).
		Where("guide_id = ? AND voter_key = ?", guideID, voterKey).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Insert uses INSERT ... ON CONFLICT DO NOTHING so a concurrent duplicate
// toggle from the same voter cannot surface a constraint violation.
func (r *endorsementRepository) Insert(ctx context.Context, guideID uint, voterKey string) error {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO endorsements (guide_id, voter_key, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (guide_id, voter_key) DO NOTHING`,
		guideID, voterKey,
	)
	if result.Error == nil {
		cache.InvalidateGuide(ctx, guideID)
	}
	return result.Error
}

func (r *endorsementRepository) Delete(ctx context.Context, guideID uint, voterKey string) error {
	err := r.db.WithContext(ctx).
		Where("guide_id = ? AND voter_key = ?", guideID, voterKey).
		Delete(&models.Endorsement{}).Error
	if err == nil {
		cache.InvalidateGuide(ctx, guideID)
	}
	return err
}

func (r *endorsementRepository) CountByGuide(ctx context.Context, guideID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Endorsement{}).
		Where("guide_id = ?", guideID).
		Count(&count).Error
	return count, err
}
