// Package worker drains the submission queue into the intake service. One
// Worker per records table: it is the serialization point that keeps
// count-derived Intake_IDs unique.
package worker

import (
	"context"
	"errors"
	"time"

	"github.com/oneearth-admin/oeff-docs/internal/common"
	"github.com/oneearth-admin/oeff-docs/internal/intake"
	"github.com/oneearth-admin/oeff-docs/internal/logging"
)

type Source interface {
	Pop(ctx context.Context) (*intake.Submission, error)
	Fail(ctx context.Context, sub intake.Submission) error
}

type Sink interface {
	Accept(ctx context.Context, sub intake.Submission) (intake.Record, error)
}

type Worker struct {
	source  Source
	sink    Sink
	logger  logging.Logger
	backoff time.Duration
}

func New(source Source, sink Sink, logger logging.Logger) *Worker {
	return &Worker{source: source, sink: sink, logger: logger.With("module", "worker"), backoff: time.Second}
}

// Run processes submissions one at a time until ctx is done.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info(ctx, "worker started")
	for {
		if ctx.Err() != nil {
			w.logger.Info(ctx, "worker stopped")
			return nil
		}
		if err := w.step(ctx); err != nil {
			if errors.Is(err, common.ErrStoreNotInitialized) {
				return err
			}
			if !sleep(ctx, w.backoff) {
				return nil
			}
		}
	}
}

// step handles at most one submission. A storage failure parks the
// submission on the dead-letter list; there is no automatic retry.
func (w *Worker) step(ctx context.Context) error {
	sub, err := w.source.Pop(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		w.logger.Error(ctx, "pop failed", "error", err)
		return err
	}
	if sub == nil {
		return nil
	}

	rec, err := w.sink.Accept(ctx, *sub)
	if err != nil {
		w.logger.Error(ctx, "submission not stored", "error", err, "respondent", sub.RespondentEmail)
		// parking must survive shutdown of the run context
		if fErr := w.source.Fail(context.WithoutCancel(ctx), *sub); fErr != nil {
			w.logger.Error(ctx, "dead-letter failed", "error", fErr)
		}
		return err
	}

	w.logger.Debug(ctx, "submission stored", "intake_id", rec.IntakeID)
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
