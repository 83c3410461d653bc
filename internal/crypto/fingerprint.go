package crypto

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// fingerprintBytes is how much of the digest Fingerprint keeps.
const fingerprintBytes = 10

// Fingerprint returns a short hex fingerprint of a document.
//
// It hashes with BLAKE2b-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(doc []byte) string {
	sum := blake2b.Sum256(doc)
	return hex.EncodeToString(sum[:fingerprintBytes])
}

// DerivePKID returns the full BLAKE2b-256 digest of doc as 64 hex chars,
// for documents stored without an explicit pkid.
func DerivePKID(doc []byte) string {
	sum := blake2b.Sum256(doc)
	return hex.EncodeToString(sum[:])
}
