package records

import (
	"context"

	"github.com/oneearth-admin/oeff-docs/internal/intake"
)

// Repository is the flattened records table. Appends must come from a
// single writer: Count feeds Intake_ID allocation.
type Repository interface {
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, submissionID int64, rec intake.Record) error
	ListAll(ctx context.Context) ([]intake.Record, error)
	DeleteAll(ctx context.Context) error
}
