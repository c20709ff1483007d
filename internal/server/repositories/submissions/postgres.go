package submissions

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

func (r *PostgresRepository) Create(ctx context.Context, sub intake.Submission) (int64, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return 0, fmt.Errorf("encode submission: %w", err)
	}

	query :=
		`INSERT INTO submissions (payload)
		 VALUES ($1)
		 RETURNING id
		 `

	var id int64
	if err := r.db.QueryRowContext(ctx, query, payload).Scan(&id); err != nil {
		return 0, wrap(err)
	}
	return id, nil
}

// ListAll returns the log in arrival order.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]Stored, error) {
	query :=
		`SELECT id, received_at, payload FROM submissions
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()

	var out []Stored
	for rows.Next() {
		var s Stored
		var payload []byte
		if err := rows.Scan(&s.ID, &s.ReceivedAt, &payload); err != nil {
			return nil, wrap(err)
		}
		if err := json.Unmarshal(payload, &s.Submission); err != nil {
			return nil, fmt.Errorf("decode submission %d: %w", s.ID, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err)
	}
	return out, nil
}

func wrap(err error) error {
	if dbx.IsMissingTable(err) {
		return fmt.Errorf("%w: %v", common.ErrStoreNotInitialized, err)
	}
	return fmt.Errorf("db error: %w", err)
}
