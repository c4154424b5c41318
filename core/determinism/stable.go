// Package determinism provides primitives for deterministic output.
// Anything that is rendered, hashed or compared across runs iterates through
// these helpers instead of ranging over a Go map directly.
package determinism

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"slices"
)

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// SortedKeysFunc returns the keys of m ordered by the string produced by keyFunc.
func SortedKeysFunc[K comparable, V any](m map[K]V, keyFunc func(K) string) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b K) int {
		return cmp.Compare(keyFunc(a), keyFunc(b))
	})
	return keys
}

// ContentHash is a SHA-256 hash for content integrity
type ContentHash [32]byte

// ComputeHash computes a content hash from bytes
func ComputeHash(data []byte) ContentHash {
	return sha256.Sum256(data)
}

// HashParts hashes parts with a zero byte separator so ("ab","c") and ("a","bc") differ.
func HashParts(parts ...string) ContentHash {
	h := sha256.New()
	for _, part := range parts {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	var out ContentHash
	copy(out[:], h.Sum(nil))
	return out
}

// Hex returns the hash as a hex string
func (h ContentHash) Hex() string {
	return hex.EncodeToString(h[:])
}

// Short returns the first 12 hex characters, enough to tell tables apart in logs
func (h ContentHash) Short() string {
	return h.Hex()[:12]
}

// String implements Stringer
func (h ContentHash) String() string {
	return h.Short()
}
