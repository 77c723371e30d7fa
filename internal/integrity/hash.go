package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"casebinder/internal/cache"
)

// Hasher computes SHA-256 digests of evidence files. An optional cache
// memoizes results keyed by path, size, and mtime so unchanged files are
// hashed at most once across runs.
type Hasher struct {
	cache cache.Cache // May be nil
}

// NewHasher creates a Hasher with the given result cache (nil disables caching)
func NewHasher(c cache.Cache) *Hasher {
	return &Hasher{cache: c}
}

// FileSHA256 returns the hex SHA-256 digest of the file at path.
// Identical bytes always produce the identical digest.
func (h *Hasher) FileSHA256(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	var key string
	if h.cache != nil {
		key = cache.FileKey(path, info.Size(), info.ModTime())
		if val, found := h.cache.Get(key); found {
			return string(val), nil
		}
	}

	digest, err := hashFile(path)
	if err != nil {
		return "", err
	}

	if h.cache != nil {
		_ = h.cache.Set(key, []byte(digest), 0)
	}
	return digest, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sum := sha256.New()
	if _, err := io.Copy(sum, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(sum.Sum(nil)), nil
}
