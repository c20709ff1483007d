package hostsec

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/oneearth-admin/oeff-docs/internal/common"
	"github.com/oneearth-admin/oeff-docs/internal/credentials"
	"github.com/oneearth-admin/oeff-docs/internal/cryptox"
	"github.com/oneearth-admin/oeff-docs/internal/dbx"
	"github.com/oneearth-admin/oeff-docs/internal/hostsec/repositories/meta"
	"github.com/oneearth-admin/oeff-docs/internal/hostsec/repositories/security"
	"github.com/oneearth-admin/oeff-docs/internal/logging"
)

// StoreKey is the unlocked key of a security store. A fresh key belongs to
// a store that has no salt yet; its salt and verifier are written with the
// first Save.
type StoreKey struct {
	key      []byte
	salt     []byte
	verifier []byte
	fresh    bool
}

// Service reads and rewrites the security store.
type Service struct {
	db     *sql.DB
	logger logging.Logger
}

func NewService(db *sql.DB, logger logging.Logger) *Service {
	return &Service{db: db, logger: logger.With("module", "hostsec")}
}

// Unlock derives the store key from passphrase. For an existing store the
// passphrase must match the saved verifier, otherwise ErrWrongPassphrase is
// returned.
func (s *Service) Unlock(ctx context.Context, passphrase []byte) (*StoreKey, error) {
	if len(passphrase) == 0 {
		return nil, common.ErrNoPassphrase
	}
	repo := meta.NewSQLiteRepository(s.db)

	salt, err := repo.Get(ctx, meta.KeySalt)
	if err != nil {
		return nil, err
	}

	if salt == nil {
		if salt, err = cryptox.NewSalt(); err != nil {
			return nil, err
		}
		key := cryptox.DeriveKey(passphrase, salt)
		s.logger.Info(ctx, "initializing new security store")
		return &StoreKey{key: key, salt: salt, verifier: cryptox.MakeVerifier(key), fresh: true}, nil
	}

	verifier, err := repo.Get(ctx, meta.KeyVerifier)
	if err != nil {
		return nil, err
	}
	key := cryptox.DeriveKey(passphrase, salt)
	if !cryptox.Verify(key, verifier) {
		return nil, common.ErrWrongPassphrase
	}
	return &StoreKey{key: key, salt: salt, verifier: verifier}, nil
}

// Prior loads the store as the reconciler's prior map, decrypting the
// passwords.
func (s *Service) Prior(ctx context.Context, k *StoreKey) (map[string]credentials.SecurityRecord, error) {
	rows, err := security.NewSQLiteRepository(s.db).ListAll(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]credentials.SecurityRecord, 0, len(rows))
	for _, row := range rows {
		financial, err := cryptox.Open(k.key, row.FinancialPassword)
		if err != nil {
			return nil, fmt.Errorf("decrypt financial password of %q: %w", row.VenueName, err)
		}
		packet, err := cryptox.Open(k.key, row.PacketPassword)
		if err != nil {
			return nil, fmt.Errorf("decrypt packet password of %q: %w", row.VenueName, err)
		}
		records = append(records, credentials.SecurityRecord{
			VenueName:             row.VenueName,
			ContactEmail:          row.ContactEmail,
			Token:                 row.Token,
			HelperURL:             row.HelperURL,
			FinancialPassword:     financial,
			FinancialPasswordHash: row.FinancialPasswordHash,
			PacketPassword:        packet,
			UpdateFormURL:         row.UpdateFormURL,
			GeneratedAt:           row.GeneratedAt,
		})
	}
	return credentials.Index(records), nil
}

// Save replaces the store with records in one transaction.
func (s *Service) Save(ctx context.Context, k *StoreKey, records []credentials.SecurityRecord) error {
	rows := make([]security.Row, 0, len(records))
	for _, rec := range records {
		financial, err := cryptox.Seal(k.key, rec.FinancialPassword)
		if err != nil {
			return fmt.Errorf("encrypt financial password of %q: %w", rec.VenueName, err)
		}
		packet, err := cryptox.Seal(k.key, rec.PacketPassword)
		if err != nil {
			return fmt.Errorf("encrypt packet password of %q: %w", rec.VenueName, err)
		}
		rows = append(rows, security.Row{
			VenueName:             rec.VenueName,
			ContactEmail:          rec.ContactEmail,
			Token:                 rec.Token,
			HelperURL:             rec.HelperURL,
			FinancialPassword:     financial,
			FinancialPasswordHash: rec.FinancialPasswordHash,
			PacketPassword:        packet,
			UpdateFormURL:         rec.UpdateFormURL,
			GeneratedAt:           rec.GeneratedAt,
		})
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if k.fresh {
			metaRepo := meta.NewSQLiteRepository(tx)
			if err := metaRepo.Set(ctx, meta.KeySalt, k.salt); err != nil {
				return err
			}
			if err := metaRepo.Set(ctx, meta.KeyVerifier, k.verifier); err != nil {
				return err
			}
		}
		return security.NewSQLiteRepository(tx).ReplaceAll(ctx, rows)
	})
	if err != nil {
		return err
	}
	k.fresh = false
	return nil
}
