package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vytor/quizzical/internal/models"
)

type temporaryRepository struct {
	kv KVStore
}

func NewTemporaryRepository(kv KVStore) TemporaryRepository {
	return &temporaryRepository{kv: kv}
}

func (r *temporaryRepository) Get(ctx context.Context) (*models.SavedQuiz, error) {
	raw, found, err := r.kv.Get(ctx, KeyTemporary)
	if err != nil || !found {
		return nil, err
	}
	var saved models.SavedQuiz
	if err := json.Unmarshal(raw, &saved); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyTemporary, err)
	}
	return &saved, nil
}

func (r *temporaryRepository) Put(ctx context.Context, quiz models.SavedQuiz) error {
	raw, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("encode saved quiz: %w", err)
	}
	return r.kv.Set(ctx, KeyTemporary, raw)
}
