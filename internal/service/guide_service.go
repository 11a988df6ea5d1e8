// Package service contains the domain logic between the HTTP gateway and the
// repositories: validation bounds, partial updates, the endorsement toggle,
// and render-on-read of guide content.
package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"guildbook/internal/cache"
	"guildbook/internal/markup"
	"guildbook/internal/models"
	"guildbook/internal/observability"
	"guildbook/internal/repository"

	"gorm.io/gorm"
)

const (
	maxTitleLen   = 140
	maxContentLen = 50000
	// Voter keys are opaque and client-generated; the length floor is the
	// only check. A fresh key is a fresh voter, which is the accepted
	// trade-off for anonymous one-per-client endorsement.
	minVoterKeyLen = 8

	defaultCategory = "general"
	defaultAuthor   = "unknown"

	listCap   = 200
	threadCap = 500
)

// GuideService implements guide operations on top of the three repositories.
type GuideService struct {
	guides       repository.GuideRepository
	endorsements repository.EndorsementRepository
	comments     repository.CommentRepository
}

// NewGuideService creates a new guide service.
func NewGuideService(
	guides repository.GuideRepository,
	endorsements repository.EndorsementRepository,
	comments repository.CommentRepository,
) *GuideService {
	return &GuideService{
		guides:       guides,
		endorsements: endorsements,
		comments:     comments,
	}
}

// CreateGuideInput carries the create request payload. FallbackAuthor is the
// caller's verified identity, used when the body supplies no author.
type CreateGuideInput struct {
	Title          string
	Content        string
	Category       string
	Author         string
	FallbackAuthor string
}

// UpdateGuideInput carries the partial update payload; nil means "leave as is".
type UpdateGuideInput struct {
	Title    *string
	Content  *string
	Category *string
}

// CreateGuide validates bounds and inserts the guide, returning its summary
// with zeroed aggregate counts.
func (s *GuideService) CreateGuide(ctx context.Context, in CreateGuideInput) (*models.GuideSummary, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)

	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 140 characters)")
	}
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = defaultCategory
	}

	author := strings.TrimSpace(in.Author)
	if author == "" {
		author = strings.TrimSpace(in.FallbackAuthor)
	}
	if author == "" {
		author = defaultAuthor
	}

	guide := &models.Guide{
		Title:    title,
		Content:  content,
		Category: category,
		Author:   author,
	}
	if err := s.guides.Create(ctx, guide); err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.summary(ctx, guide.ID)
}

// ListGuides returns summaries ordered by updatedAt descending, capped at 200,
// served cache-aside when Redis is available.
func (s *GuideService) ListGuides(ctx context.Context) ([]*models.GuideSummary, error) {
	var summaries []*models.GuideSummary
	err := cache.Aside(ctx, cache.GuideListKey(), &summaries, cache.ListTTL, func() error {
		var fetchErr error
		summaries, fetchErr = s.guides.List(ctx, listCap)
		return fetchErr
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if summaries == nil {
		summaries = []*models.GuideSummary{}
	}
	return summaries, nil
}

// GetGuide returns the full guide with rendered content, the comment thread,
// the vote count, and — when a voterKey is supplied — the voter's flag.
// Only the anonymous view is cached; the voted flag is always per-caller.
func (s *GuideService) GetGuide(ctx context.Context, id uint, voterKey string) (*models.GuideDetail, error) {
	var detail models.GuideDetail

	if voterKey == "" {
		err := cache.Aside(ctx, cache.GuideKey(id), &detail, cache.GuideTTL, func() error {
			d, fetchErr := s.loadDetail(ctx, id)
			if fetchErr != nil {
				return fetchErr
			}
			detail = *d
			return nil
		})
		if err != nil {
			return nil, s.translateGuideErr(err, id)
		}
		return &detail, nil
	}

	d, err := s.loadDetail(ctx, id)
	if err != nil {
		return nil, s.translateGuideErr(err, id)
	}
	voted, err := s.endorsements.Exists(ctx, id, voterKey)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	d.Voted = voted
	return d, nil
}

func (s *GuideService) loadDetail(ctx context.Context, id uint) (*models.GuideDetail, error) {
	guide, err := s.guides.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	guide.ContentHTML = markup.Render(guide.Content)
	observability.RenderDuration.Observe(time.Since(start).Seconds())

	votes, err := s.endorsements.CountByGuide(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByGuide(ctx, id, threadCap)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	return &models.GuideDetail{
		Guide:    guide,
		Votes:    int(votes),
		Comments: comments,
	}, nil
}

// UpdateGuide merges only the supplied fields over the stored row and bumps
// updatedAt. Role gating happens in the gateway before this is reached.
func (s *GuideService) UpdateGuide(ctx context.Context, id uint, in UpdateGuideInput) (*models.GuideSummary, error) {
	fields := map[string]interface{}{}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, models.NewValidationError("Title must not be empty")
		}
		if utf8.RuneCountInString(title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 140 characters)")
		}
		fields["title"] = title
	}
	if in.Content != nil {
		content := strings.TrimSpace(*in.Content)
		if content == "" {
			return nil, models.NewValidationError("Content must not be empty")
		}
		if utf8.RuneCountInString(content) > maxContentLen {
			return nil, models.NewValidationError("Content too long (max 50000 characters)")
		}
		fields["content"] = content
	}
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		if category == "" {
			category = defaultCategory
		}
		fields["category"] = category
	}

	if len(fields) == 0 {
		return nil, models.NewValidationError("No fields to update")
	}

	if err := s.guides.UpdateFields(ctx, id, fields); err != nil {
		return nil, s.translateGuideErr(err, id)
	}

	return s.summary(ctx, id)
}

// ToggleVote flips the endorsement state for the (guide, voter) pair and
// returns the state after the flip. Check-then-act: the composite key, not a
// mutex, prevents concurrent duplicate rows, and the returned count reflects
// whatever write won — callers must treat it as authoritative.
func (s *GuideService) ToggleVote(ctx context.Context, guideID uint, voterKey string) (*models.VoteResult, error) {
	voterKey = strings.TrimSpace(voterKey)
	if len(voterKey) < minVoterKeyLen {
		return nil, models.NewValidationError("voterKey must be at least 8 characters")
	}

	exists, err := s.guides.Exists(ctx, guideID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !exists {
		return nil, models.NewNotFoundError("Guide", guideID)
	}

	endorsed, err := s.endorsements.Exists(ctx, guideID, voterKey)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if endorsed {
		if err := s.endorsements.Delete(ctx, guideID, voterKey); err != nil {
			return nil, models.NewInternalError(err)
		}
		observability.VoteToggles.WithLabelValues("revoked").Inc()
	} else {
		if err := s.endorsements.Insert(ctx, guideID, voterKey); err != nil {
			return nil, models.NewInternalError(err)
		}
		observability.VoteToggles.WithLabelValues("endorsed").Inc()
	}

	votes, err := s.endorsements.CountByGuide(ctx, guideID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &models.VoteResult{
		Votes: int(votes),
		Voted: !endorsed,
	}, nil
}

func (s *GuideService) summary(ctx context.Context, id uint) (*models.GuideSummary, error) {
	summary, err := s.guides.SummaryByID(ctx, id)
	if err != nil {
		return nil, s.translateGuideErr(err, id)
	}
	return summary, nil
}

func (s *GuideService) translateGuideErr(err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Guide", id)
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.NewInternalError(err)
}
