package journal

import (
	"crypto/sha256"
	"encoding/hex"
)

// MaxHashSize bounds how much of an input is hashed.
const MaxHashSize = 1024 * 1024

// HashInput returns the hex SHA-256 of at most the first MaxHashSize bytes of
// text, or "" for empty input.
func HashInput(text string) string {
	if text == "" {
		return ""
	}
	if len(text) > MaxHashSize {
		text = text[:MaxHashSize]
	}
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
