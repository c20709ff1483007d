// Package security persists the host security store. Passwords arrive
// already sealed; the repository never sees plaintext.
package security

import (
	"context"
	"time"
)

// Row is one stored host. FinancialPassword and PacketPassword are sealed
// with the store key.
type Row struct {
	VenueName             string
	ContactEmail          string
	Token                 string
	HelperURL             string
	FinancialPassword     []byte
	FinancialPasswordHash string
	PacketPassword        []byte
	UpdateFormURL         string
	GeneratedAt           time.Time
}

type Repository interface {
	// ListAll returns rows in the order they were last written.
	ListAll(ctx context.Context) ([]Row, error)
	// ReplaceAll swaps the whole store for rows. Run it inside a
	// transaction.
	ReplaceAll(ctx context.Context, rows []Row) error
}
