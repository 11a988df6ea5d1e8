package repository

import (
	"context"

	"guildbook/internal/cache"
	"guildbook/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
// Append-only: there is deliberately no update or delete method.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByGuide(ctx context.Context, guideID uint, limit int) ([]*models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Create(comment).Error
	if err == nil {
		cache.InvalidateGuide(ctx, comment.GuideID)
	}
	return err
}

// ListByGuide returns the comment thread oldest first; id breaks timestamp ties.
func (r *commentRepository) ListByGuide(ctx context.Context, guideID uint, limit int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Where("guide_id = ?", guideID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
