// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"guildbook/internal/cache"
	"guildbook/internal/models"

	"gorm.io/gorm"
)

// summarySelect computes vote and comment counts as read-time aggregates in a
// single query; counts are never stored.
const summarySelect = "guides.id, guides.title, guides.category, guides.author, guides.created_at, guides.updated_at, " +
	"(SELECT COUNT(*) FROM endorsements WHERE endorsements.guide_id = guides.id) AS votes, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.guide_id = guides.id) AS comments_count"

// GuideRepository defines the interface for guide data operations.
type GuideRepository interface {
	Create(ctx context.Context, guide *models.Guide) error
	GetByID(ctx context.Context, id uint) (*models.Guide, error)
	SummaryByID(ctx context.Context, id uint) (*models.GuideSummary, error)
	List(ctx context.Context, limit int) ([]*models.GuideSummary, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Exists(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type guideRepository struct {
	db *gorm.DB
}

// NewGuideRepository creates a new guide repository.
func NewGuideRepository(db *gorm.DB) GuideRepository {
	return &guideRepository{db: db}
}

func (r *guideRepository) Create(ctx context.Context, guide *models.Guide) error {
	err := r.db.WithContext(ctx).Create(guide).Error
	if err == nil {
		cache.InvalidateGuideList(ctx)
	}
	return err
}

func (r *guideRepository) GetByID(ctx context.Context, id uint) (*models.Guide, error) {
	var guide models.Guide
	if err := r.db.WithContext(ctx).First(&guide, id).Error; err != nil {
		return nil, err
	}
	return &guide, nil
}

func (r *guideRepository) SummaryByID(ctx context.Context, id uint) (*models.GuideSummary, error) {
	var summary models.GuideSummary
	err := r.db.WithContext(ctx).
		Model(&models.Guide{}).
		Select(summarySelect).
		Where("guides.id = ?", id).
		Take(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *guideRepository) List(ctx context.Context, limit int) ([]*models.GuideSummary, error) {
	var summaries []*models.GuideSummary
	err := r.db.WithContext(ctx).
		Model(&models.Guide{}).
		Select(summarySelect).
		Order("updated_at DESC").
		Limit(limit).
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// UpdateFields merges only the supplied columns over the stored row; GORM
// bumps updated_at as part of the same statement. Missing guide maps to
// gorm.ErrRecordNotFound for the service layer to translate.
func (r *guideRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&models.Guide{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateGuide(ctx, id)
	return nil
}

func (r *guideRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Guide{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *guideRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Guide{}).Count(&count).Error
	return count, err
}
