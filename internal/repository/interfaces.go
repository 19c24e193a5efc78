package repository

import (
	"context"

	"github.com/vytor/quizzical/internal/models"
)

// Storage keys.
const (
	KeyHistory   = "quizHistory"
	KeyTemporary = "quizTemporary"
)

// KVStore is the persistent key/value contract the quiz data lives in.
// Values are JSON documents.
type KVStore interface {
	// Get returns found=false and no error for a missing key.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	// Append adds item to the JSON array stored at key, creating it if
	// needed. The read and write happen atomically.
	Append(ctx context.Context, key string, item []byte) error
	Ping(ctx context.Context) error
}

// HistoryRepository handles the permanent list of completed quizzes.
type HistoryRepository interface {
	List(ctx context.Context) ([]models.QuizRecord, error)
	Append(ctx context.Context, record models.QuizRecord) error
}

// TemporaryRepository handles the single resumable quiz slot.
type TemporaryRepository interface {
	// Get returns nil and no error when the slot is empty.
	Get(ctx context.Context) (*models.SavedQuiz, error)
	Put(ctx context.Context, quiz models.SavedQuiz) error
}
