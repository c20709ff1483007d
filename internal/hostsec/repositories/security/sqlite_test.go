package security

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/oneearth-admin/oeff-docs/internal/common"
)

const schema = `
CREATE TABLE host_security (
  venue_name              TEXT PRIMARY KEY,
  position                INTEGER NOT NULL,
  contact_email           TEXT NOT NULL DEFAULT '',
  host_token              TEXT NOT NULL,
  host_helper_url         TEXT NOT NULL,
  financial_password      BLOB NOT NULL,
  financial_password_hash TEXT NOT NULL,
  packet_password         BLOB NOT NULL,
  update_form_url         TEXT NOT NULL,
  generated_at            TEXT NOT NULL
);`

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(schema)
	require.NoError(t, err)
	return db
}

func row(name string) Row {
	return Row{
		VenueName:             name,
		ContactEmail:          name + "@example.org",
		Token:                 "tok-" + name,
		HelperURL:             "https://hosts.example.org/tok-" + name + "/",
		FinancialPassword:     []byte{0x01, 0x02},
		FinancialPasswordHash: "hash-" + name,
		PacketPassword:        []byte{0x03},
		UpdateFormURL:         "https://forms.example.org/?v=" + name,
		GeneratedAt:           time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestReplaceAllAndListAll_PreservesOrder(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	want := []Row{row("Zeta Hall"), row("Alpha Library"), row("Midway Church")}
	require.NoError(t, r.ReplaceAll(ctx, want))

	got, err := r.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReplaceAll_DropsRowsNotRewritten(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.ReplaceAll(ctx, []Row{row("A"), row("B")}))
	require.NoError(t, r.ReplaceAll(ctx, []Row{row("B")}))

	got, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].VenueName)
}

func TestReplaceAll_DuplicateNameFails(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	err := r.ReplaceAll(context.Background(), []Row{row("A"), row("A")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `insert "A"`)
}

func TestListAll_Empty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	got, err := r.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListAll_MissingTable(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = NewSQLiteRepository(db).ListAll(context.Background())
	require.ErrorIs(t, err, common.ErrStoreNotInitialized)
}
