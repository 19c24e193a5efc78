package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/quizzical/internal/logger"
)

const kvTable = "kv_store"

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// withKeyTx runs fn in a transaction that reads and rewrites one key.
func withKeyTx(ctx context.Context, db *sql.DB, key string, fn func(*sql.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("repo").WithField("key", key)
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		log.Debug("transaction rolled back: %v", err)
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction: %v", err)
		return err
	}
	return nil
}

// selectValue reads one key through either the pool or an open transaction.
func selectValue(ctx context.Context, q squirrel.StdSqlCtx, key string) ([]byte, bool, error) {
	var value string
	err := sqlBuilder.Select("value").
		From(kvTable).
		Where(squirrel.Eq{"key": key}).
		RunWith(q).
		QueryRowContext(ctx).
		Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

func upsertValue(ctx context.Context, e squirrel.StdSqlCtx, key string, value []byte) error {
	_, err := sqlBuilder.Insert(kvTable).
		Columns("key", "value").
		Values(key, string(value)).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		RunWith(e).
		ExecContext(ctx)
	return err
}
