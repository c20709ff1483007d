package submissions

import (
	"context"
	"time"

	"github.com/oneearth-admin/oeff-docs/internal/intake"
)

// Stored is a raw submission as kept in the submission log.
type Stored struct {
	ID         int64
	ReceivedAt time.Time
	Submission intake.Submission
}

// Repository is the append-only log of raw submissions.
type Repository interface {
	Create(ctx context.Context, sub intake.Submission) (int64, error)
	ListAll(ctx context.Context) ([]Stored, error)
}
