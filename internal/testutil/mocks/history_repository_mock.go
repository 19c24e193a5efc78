package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/quizzical/internal/models"
)

// MockHistoryRepository is a mock implementation of repository.HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) List(ctx context.Context) ([]models.QuizRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuizRecord), args.Error(1)
}

func (m *MockHistoryRepository) Append(ctx context.Context, record models.QuizRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
