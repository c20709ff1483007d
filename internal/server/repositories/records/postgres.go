package records

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oneearth-admin/oeff-docs/internal/common"
	"github.com/oneearth-admin/oeff-docs/internal/dbx"
	"github.com/oneearth-admin/oeff-docs/internal/intake"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM intake_records`).Scan(&n); err != nil {
		return 0, wrap(err)
	}
	return n, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, submissionID int64, rec intake.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	query :=
		`INSERT INTO intake_records (submission_id, intake_id, data)
		 VALUES ($1, $2, $3)
		 `

	if _, err := r.db.ExecContext(ctx, query, submissionID, rec.IntakeID, data); err != nil {
		return wrap(err)
	}
	return nil
}

// ListAll returns records in append order.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]intake.Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT data FROM intake_records ORDER BY id`)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	var out []intake.Record
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, wrap(err)
		}
		var rec intake.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err)
	}
	return out, nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM intake_records`); err != nil {
		return wrap(err)
	}
	return nil
}

func wrap(err error) error {
	if dbx.IsMissingTable(err) {
		return fmt.Errorf("%w: %v", common.ErrStoreNotInitialized, err)
	}
	return fmt.Errorf("db error: %w", err)
}
