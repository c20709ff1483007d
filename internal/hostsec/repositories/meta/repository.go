// Package meta stores the key material of the security store: the Argon2
// salt and the passphrase verifier.
package meta

import "context"

const (
	KeySalt     = "salt"
	KeyVerifier = "verifier"
)

type Repository interface {
	// Get returns nil, nil for an unknown key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
