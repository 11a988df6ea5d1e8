package service

import (
	"context"
	"testing"

	"guildbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// guideRepoStub is a stub for repository.GuideRepository.
type guideRepoStub struct {
	createFn       func(context.Context, *models.Guide) error
	getByIDFn      func(context.Context, uint) (*models.Guide, error)
	summaryByIDFn  func(context.Context, uint) (*models.GuideSummary, error)
	listFn         func(context.Context, int) ([]*models.GuideSummary, error)
	updateFieldsFn func(context.Context, uint, map[string]interface{}) error
	existsFn       func(context.Context, uint) (bool, error)
	countFn        func(context.Context) (int64, error)
}

func (s *guideRepoStub) Create(ctx context.Context, guide *models.Guide) error {
	return s.createFn(ctx, guide)
}
func (s *guideRepoStub) GetByID(ctx context.Context, id uint) (*models.Guide, error) {
	return s.getByIDFn(ctx, id)
}
func (s *guideRepoStub) SummaryByID(ctx context.Context, id uint) (*models.GuideSummary, error) {
	return s.summaryByIDFn(ctx, id)
}
func (s *guideRepoStub) List(ctx context.Context, limit int) ([]*models.GuideSummary, error) {
	return s.listFn(ctx, limit)
}
func (s *guideRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *guideRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *guideRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopGuideRepo() *guideRepoStub {
	return &guideRepoStub{
		createFn: func(_ context.Context, g *models.Guide) error {
			g.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Guide, error) {
			return &models.Guide{ID: id, Title: "Guide", Content: "body"}, nil
		},
		summaryByIDFn: func(_ context.Context, id uint) (*models.GuideSummary, error) {
			return &models.GuideSummary{ID: id, Title: "Guide"}, nil
		},
		listFn: func(_ context.Context, _ int) ([]*models.GuideSummary, error) {
			return nil, nil
		},
		updateFieldsFn: func(_ context.Context, _ uint, _ map[string]interface{}) error { return nil },
		existsFn:       func(_ context.Context, _ uint) (bool, error) { return true, nil },
		countFn:        func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// endorsementRepoStub is a stub for repository.EndorsementRepository backed by
// an in-memory pair set, so toggle sequences behave like the real store.
type endorsementRepoStub struct {
	pairs map[uint]map[string]bool
}

func newEndorsementRepoStub() *endorsementRepoStub {
	return &endorsementRepoStub{pairs: map[uint]map[string]bool{}}
}

func (s *endorsementRepoStub) Exists(_ context.Context, guideID uint, voterKey string) (bool, error) {
	return s.pairs[guideID][voterKey], nil
}
func (s *endorsementRepoStub) Insert(_ context.Context, guideID uint, voterKey string) error {
	if s.pairs[guideID] == nil {
		s.pairs[guideID] = map[string]bool{}
	}
	s.pairs[guideID][voterKey] = true
	return nil
}
func (s *endorsementRepoStub) Delete(_ context.Context, guideID uint, voterKey string) error {
	delete(s.pairs[guideID], voterKey)
	return nil
}
func (s *endorsementRepoStub) CountByGuide(_ context.Context, guideID uint) (int64, error) {
	return int64(len(s.pairs[guideID])), nil
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	listByGuideFn func(context.Context, uint, int) ([]*models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) ListByGuide(ctx context.Context, guideID uint, limit int) ([]*models.Comment, error) {
	return s.listByGuideFn(ctx, guideID, limit)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment) error {
			c.ID = 1
			return nil
		},
		listByGuideFn: func(_ context.Context, _ uint, _ int) ([]*models.Comment, error) {
			return nil, nil
		},
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

// assertNotFoundError asserts that err is an AppError with code NOT_FOUND.
func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
