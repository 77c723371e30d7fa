package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache defines the interface for hash-result caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// FileKey generates a cache key from a file's identity. Size and mtime are
// part of the key so a modified file never reuses a stale hash.
func FileKey(path string, size int64, modTime time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d", path, size, modTime.UnixNano())))
	return "casebinder:v1:" + hex.EncodeToString(sum[:])
}
