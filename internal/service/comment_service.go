package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"guildbook/internal/models"
	"guildbook/internal/repository"
)

const maxCommentLen = 3000

// CommentService implements the append-only comment ledger. There is no
// update, delete, or moderation operation.
type CommentService struct {
	comments repository.CommentRepository
	guides   repository.GuideRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(comments repository.CommentRepository, guides repository.GuideRepository) *CommentService {
	return &CommentService{
		comments: comments,
		guides:   guides,
	}
}

// AddCommentInput carries the comment creation payload. FallbackAuthor is the
// caller's verified identity or role label, used when the body supplies none.
type AddCommentInput struct {
	GuideID        uint
	Author         string
	Body           string
	FallbackAuthor string
}

// AddComment validates the comment, verifies the guide exists, and appends the
// row. A missing guide is NotFound; no orphan row is ever created.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	body := strings.TrimSpace(in.Body)
	if body == "" {
		return nil, models.NewValidationError("Comment is required")
	}
	if utf8.RuneCountInString(body) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 3000 characters)")
	}

	exists, err := s.guides.Exists(ctx, in.GuideID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !exists {
		return nil, models.NewNotFoundError("Guide", in.GuideID)
	}

	author := strings.TrimSpace(in.Author)
	if author == "" {
		author = strings.TrimSpace(in.FallbackAuthor)
	}
	if author == "" {
		author = defaultAuthor
	}

	comment := &models.Comment{
		GuideID: in.GuideID,
		Author:  author,
		Body:    body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}

	return comment, nil
}
