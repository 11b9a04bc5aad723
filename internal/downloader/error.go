package downloader

import (
	"crypto/sha256"
	"encoding/hex"
)

const shortIDLen = 16

// Error is a failed fetch. The message is never shown verbatim to end
// users; it is stored keyed by ShortID so operators can look it up.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// ShortID returns the deterministic short identifier for this error.
func (e *Error) ShortID() string {
	return ShortID(e.Message)
}

// ShortID derives a short stable identifier from an error text. Identical
// errors collapse to one stored record; this is a dedup key, not a
// security hash.
func ShortID(message string) string {
	sum := sha256.Sum256([]byte(message))

	return hex.EncodeToString(sum[:])[:shortIDLen]
}
