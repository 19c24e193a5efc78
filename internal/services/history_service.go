package services

import (
	"context"
	"time"

	"github.com/vytor/quizzical/internal/errors"
	"github.com/vytor/quizzical/internal/export"
	"github.com/vytor/quizzical/internal/logger"
	"github.com/vytor/quizzical/internal/models"
	"github.com/vytor/quizzical/internal/repository"
	"github.com/vytor/quizzical/internal/streak"
)

// HistoryService handles completed quizzes and the daily streak
type HistoryService interface {
	List(ctx context.Context) ([]models.QuizRecord, error)
	Get(ctx context.Context, index int) (*models.QuizRecord, error)
	Streak(ctx context.Context, now time.Time) (models.StreakInfo, error)
	Export(ctx context.Context, index int, opts export.Options) (string, error)
}

type historyService struct {
	history repository.HistoryRepository
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(history repository.HistoryRepository) HistoryService {
	return &historyService{history: history}
}

func (s *historyService) List(ctx context.Context) ([]models.QuizRecord, error) {
	logger.FromContext(ctx).WithPrefix("history_service").Debug("listing history")
	return loadHistory(ctx, s.history), nil
}

func (s *historyService) Get(ctx context.Context, index int) (*models.QuizRecord, error) {
	records := loadHistory(ctx, s.history)
	if index < 0 || index >= len(records) {
		return nil, errors.NewNotFoundError("quiz record", index)
	}
	rec := records[index]
	return &rec, nil
}

func (s *historyService) Streak(ctx context.Context, now time.Time) (models.StreakInfo, error) {
	records := loadHistory(ctx, s.history)
	timestamps := make([]int64, len(records))
	for i, r := range records {
		timestamps[i] = r.Timestamp
	}
	info := streak.Compute(timestamps, now)
	logger.FromContext(ctx).WithPrefix("history_service").Debug("streak: days=%d, today=%t", info.Days, info.DoneToday)
	return info, nil
}

func (s *historyService) Export(ctx context.Context, index int, opts export.Options) (string, error) {
	rec, err := s.Get(ctx, index)
	if err != nil {
		return "", err
	}
	out, err := export.Render(*rec, opts)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("history_service").Error("failed to render quiz %d: %v", index, err)
		return "", errors.NewInternalError(err)
	}
	return out, nil
}
