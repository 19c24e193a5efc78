package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/quizzical/internal/logger"
	"github.com/vytor/quizzical/internal/repository"
)

type kvStore struct {
	db *sql.DB
}

// NewKVStore creates a KVStore backed by the kv_store table.
func NewKVStore(db *sql.DB) repository.KVStore {
	return &kvStore{db: db}
}

func (s *kvStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_store")
	log.Debug("getting key: %s", key)
	return selectValue(ctx, s.db, key)
}

func (s *kvStore) Set(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx).WithPrefix("kv_store")
	log.Debug("setting key: %s (%d bytes)", key, len(value))
	if err := upsertValue(ctx, s.db, key, value); err != nil {
		log.Error("failed to set key %s: %v", key, err)
		return err
	}
	return nil
}

func (s *kvStore) Append(ctx context.Context, key string, item []byte) error {
	log := logger.FromContext(ctx).WithPrefix("kv_store")
	log.Debug("appending to key: %s", key)

	return withKeyTx(ctx, s.db, key, func(tx *sql.Tx) error {
		existing, _, err := selectValue(ctx, tx, key)
		if err != nil {
			return err
		}
		updated, err := repository.AppendJSON(existing, item)
		if err != nil {
			return err
		}
		return upsertValue(ctx, tx, key, updated)
	})
}

func (s *kvStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
