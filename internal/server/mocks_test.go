package server

import (
	"context"

	"guildbook/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockGuideRepository is a mock of the GuideRepository interface
type MockGuideRepository struct {
	mock.Mock
}

func (m *MockGuideRepository) Create(ctx context.Context, guide *models.Guide) error {
	args := m.Called(ctx, guide)
	return args.Error(0)
}

func (m *MockGuideRepository) GetByID(ctx context.Context, id uint) (*models.Guide, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Guide), args.Error(1)
}

func (m *MockGuideRepository) SummaryByID(ctx context.Context, id uint) (*models.GuideSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuideSummary), args.Error(1)
}

func (m *MockGuideRepository) List(ctx context.Context, limit int) ([]*models.GuideSummary, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GuideSummary), args.Error(1)
}

func (m *MockGuideRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockGuideRepository) Exists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockGuideRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockEndorsementRepository is a mock of the EndorsementRepository interface
type MockEndorsementRepository struct {
	mock.Mock
}

func (m *MockEndorsementRepository) Exists(ctx context.Context, guideID uint, voterKey string) (bool, error) {
	args := m.Called(ctx, guideID, voterKey)
	return args.Bool(0), args.Error(1)
}

func (m *MockEndorsementRepository) Insert(ctx context.Context, guideID uint, voterKey string) error {
	args := m.Called(ctx, guideID, voterKey)
	return args.Error(0)
}

func (m *MockEndorsementRepository) Delete(ctx context.Context, guideID uint, voterKey string) error {
	args := m.Called(ctx, guideID, voterKey)
	return args.Error(0)
}

func (m *MockEndorsementRepository) CountByGuide(ctx context.Context, guideID uint) (int64, error) {
	args := m.Called(ctx, guideID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByGuide(ctx context.Context, guideID uint, limit int) ([]*models.Comment, error) {
	args := m.Called(ctx, guideID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}
