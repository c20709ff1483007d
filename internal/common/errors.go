// Package common defines shared constants and sentinel errors used across
// the intake daemon and the host security tool. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// ErrStoreNotInitialized is returned when the output store (table or
	// database file) does not exist yet. Run migrations to create it.
	ErrStoreNotInitialized = errors.New("store not initialized, run migrations first")

	// Configuration errors. Surfaced before anything is written.
	ErrMissingColumn    = errors.New("required column missing")
	ErrIncompleteSchema = errors.New("intake schema incomplete")
	ErrInvalidTimeZone  = errors.New("invalid time zone")

	// Reconciliation errors.
	ErrNoHosts         = errors.New("no hosts found")
	ErrNoPassphrase    = errors.New("store passphrase not provided")
	ErrWrongPassphrase = errors.New("wrong store passphrase")

	// Webhook auth errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Submission errors.
	ErrEmptySubmission = errors.New("submission has no answers")
)
