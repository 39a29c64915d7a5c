package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes the SHA-256 hash of data as a 64-character hex string.
// The render and serve paths use it to key conversions by input content,
// so identical inputs hit the same entry regardless of file names.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ConversionKey derives a namespaced cache key for a conversion of the
// given input bytes, e.g. ConversionKey("render:svg", dot).
func ConversionKey(namespace string, input []byte) string {
	return namespace + ":" + Hash(input)
}
