// Package services holds the intake daemon's use cases. IntakeService is
// the only writer of the records table.
package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/oneearth-admin/oeff-docs/internal/common"
	"github.com/oneearth-admin/oeff-docs/internal/dbx"
	"github.com/oneearth-admin/oeff-docs/internal/intake"
	"github.com/oneearth-admin/oeff-docs/internal/logging"
	"github.com/oneearth-admin/oeff-docs/internal/objectstore"
	"github.com/oneearth-admin/oeff-docs/internal/server/repositories/repomanager"
)

type IntakeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	normalizer  *intake.Normalizer
	uploader    objectstore.Uploader
	logger      logging.Logger
	now         func() time.Time
}

// NewIntakeService wires the service. uploader may be nil when exports are
// never published.
func NewIntakeService(db *sql.DB, rm repomanager.RepositoryManager, n *intake.Normalizer,
	uploader objectstore.Uploader, logger logging.Logger) *IntakeService {
	return &IntakeService{
		db:          db,
		repomanager: rm,
		normalizer:  n,
		uploader:    uploader,
		logger:      logger.With("module", "intake"),
		now:         time.Now,
	}
}

// Accept logs sub and appends its flattened record in one transaction. The
// Intake_ID comes from the record count, so calls must be serialized.
func (s *IntakeService) Accept(ctx context.Context, sub intake.Submission) (intake.Record, error) {
	if len(sub.Answers) == 0 {
		return intake.Record{}, common.ErrEmptySubmission
	}

	var rec intake.Record
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		id, err := s.repomanager.Submissions(tx).Create(ctx, sub)
		if err != nil {
			return err
		}

		recs := s.repomanager.Records(tx)
		n, err := recs.Count(ctx)
		if err != nil {
			return err
		}

		// the header row counts, so the first record gets 1
		rec = s.normalizer.Normalize(sub, n+1)
		return recs.Insert(ctx, id, rec)
	})
	if err != nil {
		return intake.Record{}, fmt.Errorf("accept submission: %w", err)
	}

	s.logger.Info(ctx, "record appended", "intake_id", rec.IntakeID, "film_id", rec.FilmID)
	return rec, nil
}

// Reprocess rebuilds the records table from the submission log in arrival
// order. Intake_IDs are reassigned from 1.
func (s *IntakeService) Reprocess(ctx context.Context) (int, error) {
	var count int
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		subs, err := s.repomanager.Submissions(tx).ListAll(ctx)
		if err != nil {
			return err
		}

		recs := s.repomanager.Records(tx)
		if err := recs.DeleteAll(ctx); err != nil {
			return err
		}

		for i, st := range subs {
			rec := s.normalizer.Normalize(st.Submission, i+1)
			if err := recs.Insert(ctx, st.ID, rec); err != nil {
				return err
			}
		}
		count = len(subs)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("reprocess: %w", err)
	}

	s.logger.Info(ctx, "records rebuilt", "count", count)
	return count, nil
}

// ExportCSV writes the header and every record in column order.
func (s *IntakeService) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	recs, err := s.repomanager.Records(s.db).ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("export: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(intake.Columns); err != nil {
		return 0, err
	}
	for _, r := range recs {
		if err := cw.Write(r.Values()); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, err
	}
	return len(recs), nil
}

// PublishExport uploads a CSV export and returns its download link.
func (s *IntakeService) PublishExport(ctx context.Context) (string, int, error) {
	if s.uploader == nil {
		return "", 0, fmt.Errorf("publish export: no object store configured")
	}

	var buf bytes.Buffer
	n, err := s.ExportCSV(ctx, &buf)
	if err != nil {
		return "", 0, err
	}

	key := objectstore.ExportKey("intake", "csv", s.now())
	url, err := s.uploader.Put(ctx, key, "text/csv", buf.Bytes())
	if err != nil {
		return "", 0, fmt.Errorf("publish export: %w", err)
	}

	s.logger.Info(ctx, "export published", "key", key, "records", n)
	return url, n, nil
}
