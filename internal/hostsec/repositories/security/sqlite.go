package security

import (
	"context"
	"fmt"
	"time"

	"github.com/oneearth-admin/oeff-docs/internal/common"
	"github.com/oneearth-admin/oeff-docs/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) ListAll(ctx context.Context) ([]Row, error) {
	query := `SELECT venue_name, contact_email, host_token, host_helper_url,
		financial_password, financial_password_hash, packet_password,
		update_form_url, generated_at
		FROM host_security ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrap("select host_security", err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var (
			row         Row
			generatedAt string
		)
		if err := rows.Scan(&row.VenueName, &row.ContactEmail, &row.Token, &row.HelperURL,
			&row.FinancialPassword, &row.FinancialPasswordHash, &row.PacketPassword,
			&row.UpdateFormURL, &generatedAt); err != nil {
			return nil, fmt.Errorf("scan host_security: %w", err)
		}
		row.GeneratedAt, err = time.Parse(time.RFC3339, generatedAt)
		if err != nil {
			return nil, fmt.Errorf("generated_at of %q: %w", row.VenueName, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate host_security: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, rows []Row) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM host_security`); err != nil {
		return wrap("clear host_security", err)
	}

	query := `INSERT INTO host_security (venue_name, position, contact_email, host_token,
		host_helper_url, financial_password, financial_password_hash, packet_password,
		update_form_url, generated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for i, row := range rows {
		_, err := r.db.ExecContext(ctx, query,
			row.VenueName, i, row.ContactEmail, row.Token, row.HelperURL,
			row.FinancialPassword, row.FinancialPasswordHash, row.PacketPassword,
			row.UpdateFormURL, row.GeneratedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("insert %q: %w", row.VenueName, err)
		}
	}
	return nil
}

func wrap(op string, err error) error {
	if dbx.IsMissingTable(err) {
		return fmt.Errorf("%s: %w", op, common.ErrStoreNotInitialized)
	}
	return fmt.Errorf("db error: %s: %w", op, err)
}
