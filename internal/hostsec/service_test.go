package hostsec

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneearth-admin/oeff-docs/internal/common"
	"github.com/oneearth-admin/oeff-docs/internal/credentials"
	"github.com/oneearth-admin/oeff-docs/internal/hostsec/repositories/meta"
	"github.com/oneearth-admin/oeff-docs/internal/logging"
)

func openTestStore(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenStore(context.Background(), filepath.Join(t.TempDir(), "security.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func record(name, token string) credentials.SecurityRecord {
	return credentials.SecurityRecord{
		VenueName:             name,
		ContactEmail:          "c@example.org",
		Token:                 token,
		HelperURL:             "https://hosts.example.org/" + token + "/",
		FinancialPassword:     "river-cedar-42",
		FinancialPasswordHash: credentials.HashHex("river-cedar-42"),
		PacketPassword:        "maple-stone-17",
		UpdateFormURL:         "https://forms.example.org/viewform?v=x",
		GeneratedAt:           time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestService_FirstRunWritesKeyMaterialOnSave(t *testing.T) {
	db := openTestStore(t)
	svc := NewService(db, logging.Discard())
	ctx := context.Background()

	k, err := svc.Unlock(ctx, []byte("passphrase"))
	require.NoError(t, err)
	assert.True(t, k.fresh)

	salt, err := meta.NewSQLiteRepository(db).Get(ctx, meta.KeySalt)
	require.NoError(t, err)
	assert.Nil(t, salt, "unlock alone writes nothing")

	require.NoError(t, svc.Save(ctx, k, []credentials.SecurityRecord{record("Hall", "tok1")}))
	assert.False(t, k.fresh)

	salt, err = meta.NewSQLiteRepository(db).Get(ctx, meta.KeySalt)
	require.NoError(t, err)
	assert.Len(t, salt, 16)
}

func TestService_RoundTripAndPassphraseCheck(t *testing.T) {
	db := openTestStore(t)
	svc := NewService(db, logging.Discard())
	ctx := context.Background()

	k, err := svc.Unlock(ctx, []byte("passphrase"))
	require.NoError(t, err)
	want := []credentials.SecurityRecord{record("Hall", "tok1"), record("Annex", "tok2")}
	require.NoError(t, svc.Save(ctx, k, want))

	_, err = svc.Unlock(ctx, []byte("wrong"))
	require.ErrorIs(t, err, common.ErrWrongPassphrase)

	k2, err := svc.Unlock(ctx, []byte("passphrase"))
	require.NoError(t, err)
	assert.False(t, k2.fresh)

	prior, err := svc.Prior(ctx, k2)
	require.NoError(t, err)
	assert.Equal(t, credentials.Index(want), prior)
}

func TestService_UnlockEmptyPassphrase(t *testing.T) {
	svc := NewService(openTestStore(t), logging.Discard())

	_, err := svc.Unlock(context.Background(), nil)
	require.ErrorIs(t, err, common.ErrNoPassphrase)
}

func TestService_ReconcileTwiceIsIdempotent(t *testing.T) {
	db := openTestStore(t)
	svc := NewService(db, logging.Discard())
	ctx := context.Background()
	hosts := []credentials.Host{{Name: "Hall", ContactEmail: "h@example.org"}, {Name: "Annex"}}
	r := credentials.NewReconciler(credentials.DefaultOptions(), credentials.NewGenerator(16))

	k, err := svc.Unlock(ctx, []byte("passphrase"))
	require.NoError(t, err)
	prior, err := svc.Prior(ctx, k)
	require.NoError(t, err)
	first, err := r.Reconcile(hosts, prior)
	require.NoError(t, err)
	require.NoError(t, svc.Save(ctx, k, first.Records))

	prior, err = svc.Prior(ctx, k)
	require.NoError(t, err)
	second, err := r.Reconcile(hosts, prior)
	require.NoError(t, err)

	assert.Equal(t, 2, second.Preserved)
	assert.Zero(t, second.New)
	for i := range first.Records {
		assert.Equal(t, first.Records[i].Token, second.Records[i].Token)
		assert.Equal(t, first.Records[i].FinancialPassword, second.Records[i].FinancialPassword)
		assert.Equal(t, first.Records[i].PacketPassword, second.Records[i].PacketPassword)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })
	boom := errors.New("boom")
	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error { return boom }

	_, err := OpenStore(context.Background(), filepath.Join(t.TempDir(), "security.db"))
	require.ErrorIs(t, err, boom)
}
