package credential

import (
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Hash derives the stored digest for a password. The transformation is
// one-way and deterministic: authentication looks digests up by equality,
// so repeated calls must produce the same output.
func Hash(plaintext string) string {
	sum := sha3.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// Verify recomputes the digest and compares it against the stored one.
// The comparison is constant-time.
func Verify(plaintext, storedDigest string) bool {
	computed := Hash(plaintext)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedDigest)) == 1
}
