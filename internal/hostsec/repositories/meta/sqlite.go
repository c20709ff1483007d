package meta

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/oneearth-admin/oeff-docs/internal/common"
	"github.com/oneearth-admin/oeff-docs/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM store_meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(fmt.Sprintf("get meta[%s]", key), err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO store_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return wrap(fmt.Sprintf("set meta[%s]", key), err)
	}
	return nil
}

func wrap(op string, err error) error {
	if dbx.IsMissingTable(err) {
		return fmt.Errorf("%s: %w", op, common.ErrStoreNotInitialized)
	}
	return fmt.Errorf("%s: %w", op, err)
}
