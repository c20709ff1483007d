// Package handler serves the intake webhook. Submissions are only queued
// here; the worker stores them.
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/oneearth-admin/oeff-docs/internal/intake"
	"github.com/oneearth-admin/oeff-docs/internal/logging"
	"github.com/oneearth-admin/oeff-docs/internal/server/auth"
)

const maxBodyBytes = 1 << 20

type Enqueuer interface {
	Push(ctx context.Context, sub intake.Submission) error
}

type Exporter interface {
	ExportCSV(ctx context.Context, w io.Writer) (int, error)
}

// Checker reports the health of one dependency.
type Checker func(ctx context.Context) error

type Handler struct {
	queue    Enqueuer
	exporter Exporter
	checks   map[string]Checker
	logger   logging.Logger
	now      func() time.Time
}

func New(queue Enqueuer, exporter Exporter, checks map[string]Checker, logger logging.Logger) *Handler {
	return &Handler{
		queue:    queue,
		exporter: exporter,
		checks:   checks,
		logger:   logger.With("module", "handler"),
		now:      time.Now,
	}
}

// Submit accepts one form response and queues it.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub intake.Submission
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&sub); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid submission: "+err.Error())
		return
	}
	if len(sub.Answers) == 0 {
		writeError(w, http.StatusBadRequest, "submission has no answers")
		return
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = h.now()
	}

	if err := h.queue.Push(r.Context(), sub); err != nil {
		h.logger.Error(r.Context(), "enqueue failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "queue unavailable")
		return
	}

	h.logger.Info(r.Context(), "submission queued", "source", auth.SourceFrom(r.Context()), "answers", len(sub.Answers))
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

// Export renders the records table as CSV. The export is buffered so a
// failure can still be reported as a 500.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if _, err := h.exporter.ExportCSV(r.Context(), &buf); err != nil {
		h.logger.Error(r.Context(), "export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="intake-records.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn(r.Context(), "export write failed", "error", err)
	}
}

// Health runs every dependency check and reports 503 if any fails.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(r.Context()); err != nil {
			status = http.StatusServiceUnavailable
			body[name] = err.Error()
			continue
		}
		body[name] = "ok"
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
