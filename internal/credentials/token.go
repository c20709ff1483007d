// Package credentials issues and reconciles per-venue host credentials: an
// opaque helper token plus two human-readable passwords.
//
// Issued secrets are never rotated. Reconcile reuses whatever the prior
// store holds for a venue and only generates values for venues it has not
// seen before.
package credentials

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultTokenLength = 16
	maxTokenLength     = sha256.Size * 2
)

// Generator produces tokens and passwords from an entropy source.
type Generator struct {
	rand        io.Reader
	now         func() time.Time
	tokenLength int
}

// NewGenerator returns a Generator backed by crypto/rand. Token lengths
// outside 1..64 are clamped.
func NewGenerator(tokenLength int) *Generator {
	return newGenerator(rand.Reader, time.Now, tokenLength)
}

func newGenerator(r io.Reader, now func() time.Time, tokenLength int) *Generator {
	switch {
	case tokenLength < 1:
		tokenLength = 1
	case tokenLength > maxTokenLength:
		tokenLength = maxTokenLength
	}
	return &Generator{rand: r, now: now, tokenLength: tokenLength}
}

// Token returns a lowercase hex token. The pre-image mixes a random UUID,
// the current time in milliseconds and a second random value.
func (g *Generator) Token() (string, error) {
	id, err := uuid.NewRandomFromReader(g.rand)
	if err != nil {
		return "", fmt.Errorf("token entropy: %w", err)
	}
	extra, err := g.fraction()
	if err != nil {
		return "", fmt.Errorf("token entropy: %w", err)
	}

	var b strings.Builder
	b.WriteString(strings.ReplaceAll(id.String(), "-", ""))
	b.WriteString(strconv.FormatInt(g.now().UnixMilli(), 10))
	b.WriteString(strconv.FormatFloat(extra, 'g', -1, 64))

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])[:g.tokenLength], nil
}

// fraction reads a uniform float in [0, 1).
func (g *Generator) fraction() (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(g.rand, buf[:]); err != nil {
		return 0, err
	}
	return float64(binary.BigEndian.Uint64(buf[:])>>11) / (1 << 53), nil
}
