package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneearth-admin/oeff-docs/internal/common"
	"github.com/oneearth-admin/oeff-docs/internal/intake"
	"github.com/oneearth-admin/oeff-docs/internal/logging"
	"github.com/oneearth-admin/oeff-docs/internal/server/repositories/repomanager"
)

const (
	insertSubmissionQ = `INSERT\s+INTO\s+submissions`
	listSubmissionsQ  = `SELECT\s+id,\s*received_at,\s*payload\s+FROM\s+submissions`
	countRecordsQ     = `SELECT\s+COUNT\(\*\)\s+FROM\s+intake_records`
	insertRecordQ     = `INSERT\s+INTO\s+intake_records`
	listRecordsQ      = `SELECT\s+data\s+FROM\s+intake_records`
	deleteRecordsQ    = `DELETE\s+FROM\s+intake_records`
)

type fakeUploader struct {
	key, contentType string
	body             []byte
	err              error
}

func (f *fakeUploader) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.key, f.contentType, f.body = key, contentType, body
	return "https://exports.example/" + key, nil
}

func newService(t *testing.T, up *fakeUploader) (*IntakeService, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	n, err := intake.NewNormalizer(intake.DefaultSchema(), "UTC", intake.DefaultIDPrefix, intake.DefaultIDWidth)
	require.NoError(t, err)

	var svc *IntakeService
	if up != nil {
		svc = NewIntakeService(db, repomanager.NewPostgresRepositoryManager(), n, up, logging.Discard())
	} else {
		svc = NewIntakeService(db, repomanager.NewPostgresRepositoryManager(), n, nil, logging.Discard())
	}
	return svc, mock, db
}

func exampleSubmission() intake.Submission {
	return intake.Submission{
		SubmittedAt:     time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC),
		RespondentEmail: "host@example.org",
		Answers: map[string]intake.Value{
			"Film":                intake.Scalar("F26-002 | Plastic People (2024) — Waste & Recycling"),
			"Available Equipment": intake.Scalar("Projector, Wi-Fi for streaming"),
			"Frontline Community": intake.Scalar("Yes"),
		},
	}
}

func TestAccept_FirstRecord(t *testing.T) {
	svc, mock, _ := newService(t, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(insertSubmissionQ).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectQuery(countRecordsQ).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(insertRecordQ).
		WithArgs(int64(5), "HIF-001", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	rec, err := svc.Accept(context.Background(), exampleSubmission())
	require.NoError(t, err)

	assert.Equal(t, "HIF-001", rec.IntakeID)
	assert.Equal(t, "F26-002", rec.FilmID)
	assert.Equal(t, "Plastic People (2024)", rec.FilmTitle)
	assert.True(t, rec.HasProjector)
	assert.True(t, rec.HasWiFi)
	assert.Equal(t, "Yes", rec.FrontlineCommunity)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccept_FollowsExistingRows(t *testing.T) {
	svc, mock, _ := newService(t, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(insertSubmissionQ).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(12)))
	mock.ExpectQuery(countRecordsQ).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectExec(insertRecordQ).
		WithArgs(int64(12), "HIF-012", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	rec, err := svc.Accept(context.Background(), exampleSubmission())
	require.NoError(t, err)
	assert.Equal(t, "HIF-012", rec.IntakeID)
}

func TestAccept_RollsBackWhenStoreMissing(t *testing.T) {
	svc, mock, _ := newService(t, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(insertSubmissionQ).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(countRecordsQ).WillReturnError(&pgconn.PgError{Code: "42P01"})
	mock.ExpectRollback()

	_, err := svc.Accept(context.Background(), exampleSubmission())
	require.ErrorIs(t, err, common.ErrStoreNotInitialized)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccept_Empty(t *testing.T) {
	svc, _, _ := newService(t, nil)

	_, err := svc.Accept(context.Background(), intake.Submission{})
	require.ErrorIs(t, err, common.ErrEmptySubmission)
}

func TestReprocess(t *testing.T) {
	svc, mock, _ := newService(t, nil)
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(listSubmissionsQ).WillReturnRows(sqlmock.NewRows([]string{"id", "received_at", "payload"}).
		AddRow(int64(3), at, []byte(`{"answers":{"Film":"F26-001 | Drowned Land (2025)"}}`)).
		AddRow(int64(8), at, []byte(`{"answers":{"Film":"Undecided"}}`)))
	mock.ExpectExec(deleteRecordsQ).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(insertRecordQ).WithArgs(int64(3), "HIF-001", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insertRecordQ).WithArgs(int64(8), "HIF-002", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	n, err := svc.Reprocess(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReprocess_RollbackOnInsertError(t *testing.T) {
	svc, mock, _ := newService(t, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(listSubmissionsQ).WillReturnRows(sqlmock.NewRows([]string{"id", "received_at", "payload"}).
		AddRow(int64(1), time.Now(), []byte(`{"answers":{}}`)))
	mock.ExpectExec(deleteRecordsQ).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertRecordQ).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := svc.Reprocess(context.Background())
	require.ErrorContains(t, err, "disk full")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportCSV(t *testing.T) {
	svc, mock, _ := newService(t, nil)

	mock.ExpectQuery(listRecordsQ).WillReturnRows(sqlmock.NewRows([]string{"data"}).
		AddRow([]byte(`{"Intake_ID":"HIF-001","Film_ID":"F26-002","Film_Title":"Plastic People (2024)","Has_Projector":true}`)))

	var buf bytes.Buffer
	n, err := svc.ExportCSV(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, intake.Columns, rows[0])
	assert.Equal(t, "HIF-001", rows[1][0])
	assert.Equal(t, "F26-002", rows[1][20])
	assert.Equal(t, "Plastic People (2024)", rows[1][21])
	assert.Equal(t, "TRUE", rows[1][25])
	assert.Equal(t, "FALSE", rows[1][26])
}

func TestPublishExport(t *testing.T) {
	up := &fakeUploader{}
	svc, mock, _ := newService(t, up)
	svc.now = func() time.Time { return time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC) }

	mock.ExpectQuery(listRecordsQ).WillReturnRows(sqlmock.NewRows([]string{"data"}))

	url, n, err := svc.PublishExport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.True(t, strings.HasPrefix(up.key, "exports/intake/2026-04-01/"))
	assert.Equal(t, "text/csv", up.contentType)
	assert.Equal(t, "https://exports.example/"+up.key, url)
	assert.True(t, strings.HasPrefix(string(up.body), "Intake_ID,Timestamp,"))
}

func TestPublishExport_Errors(t *testing.T) {
	svc, _, _ := newService(t, nil)
	_, _, err := svc.PublishExport(context.Background())
	require.Error(t, err)

	up := &fakeUploader{err: errors.New("bucket gone")}
	svc, mock, _ := newService(t, up)
	mock.ExpectQuery(listRecordsQ).WillReturnRows(sqlmock.NewRows([]string{"data"}))
	_, _, err = svc.PublishExport(context.Background())
	require.ErrorContains(t, err, "bucket gone")
}
