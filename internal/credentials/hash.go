package credentials

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashHex returns the lowercase hex SHA-256 of s.
func HashHex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
