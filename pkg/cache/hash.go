package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a content-addressed key of the form "prefix:<sha256>".
// The parts are JSON-encoded before hashing so any change to the flow or
// to the options that shape a product lands on a different key.
func hashKey(prefix string, parts ...any) string {
	encoded, _ := json.Marshal(parts)
	return prefix + ":" + Hash(encoded)
}

// Hash returns the SHA-256 digest of data as a 64-character hex string.
// The full digest is kept; truncating would trade collision resistance
// for nothing the cache needs.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
