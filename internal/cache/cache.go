package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache memoises segmentation results within one process
type Cache interface {
	Get(key string) ([]string, bool)
	Set(key string, statements []string, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from the segmenter settings and the input text
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return "statementizer:v1:" + hex.EncodeToString(h.Sum(nil))
}
