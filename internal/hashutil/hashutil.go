// Package hashutil computes the content digest used as the dedup key for
// clipboard items. The digest is content-only: two clipboard reads with the
// same bytes always produce the same key regardless of when or how they
// were observed.
package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// SumString returns the digest of the UTF-8 bytes of s.
func SumString(s string) string {
	return Sum([]byte(s))
}
