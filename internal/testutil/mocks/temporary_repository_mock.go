package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/quizzical/internal/models"
)

// MockTemporaryRepository is a mock implementation of repository.TemporaryRepository
type MockTemporaryRepository struct {
	mock.Mock
}

func (m *MockTemporaryRepository) Get(ctx context.Context) (*models.SavedQuiz, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavedQuiz), args.Error(1)
}

func (m *MockTemporaryRepository) Put(ctx context.Context, quiz models.SavedQuiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}
