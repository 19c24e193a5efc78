package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vytor/quizzical/internal/logger"
	"github.com/vytor/quizzical/internal/models"
)

type historyRepository struct {
	kv KVStore
}

// NewHistoryRepository stores history as one JSON array under KeyHistory.
func NewHistoryRepository(kv KVStore) HistoryRepository {
	return &historyRepository{kv: kv}
}

func (r *historyRepository) List(ctx context.Context) ([]models.QuizRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("history_repo")

	raw, found, err := r.kv.Get(ctx, KeyHistory)
	if err != nil {
		return nil, err
	}
	if !found {
		log.Debug("no history stored yet")
		return []models.QuizRecord{}, nil
	}

	var records []models.QuizRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyHistory, err)
	}
	if records == nil {
		records = []models.QuizRecord{}
	}
	log.Debug("loaded %d history records", len(records))
	return records, nil
}

func (r *historyRepository) Append(ctx context.Context, record models.QuizRecord) error {
	item, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode quiz record: %w", err)
	}
	return r.kv.Append(ctx, KeyHistory, item)
}
