package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores rendered quiz output keyed by input and settings
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from the book text and the settings fingerprint.
// A separator byte keeps ("ab", "c") and ("a", "bc") apart.
func Key(text, fingerprint string) string {
	h := sha256.New()
	h.Write([]byte(fingerprint))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return "factquiz:v1:" + hex.EncodeToString(h.Sum(nil))
}
