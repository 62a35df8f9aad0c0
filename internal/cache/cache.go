// Package cache provides a filesystem-backed response cache with lazy TTL
// expiry. Entries are immutable once written; a stale or unreadable entry is
// deleted on read and reported as a miss.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/damianpoole/Loadstone/internal/config"
)

// Entry is the on-disk shape of a cached response: the raw body plus the
// epoch-millisecond write time used for expiry.
type Entry struct {
	StoredAt int64           `json:"storedAt"`
	Body     json.RawMessage `json:"body"`
}

// Key derives a filesystem-safe cache key from a request. The digest covers
// method, URL, and body so that distinct requests never collide.
func Key(method, url string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte(":"))
	h.Write([]byte(url))
	h.Write([]byte(":"))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// Get looks up a cached body by key. It reports a miss when the entry is
// absent, unparseable, or older than the configured TTL; the latter two
// cases also delete the entry in place.
func Get(cfg config.Cache, key string) (json.RawMessage, bool) {
	path := filepath.Join(cfg.Dir, key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil || entry.StoredAt <= 0 {
		_ = os.Remove(path)
		return nil, false
	}

	age := time.Since(time.UnixMilli(entry.StoredAt))
	if age > cfg.TTL {
		_ = os.Remove(path)
		return nil, false
	}

	return entry.Body, true
}

// Set persists a body under key. Callers treat a returned error as a logged
// diagnostic only; a failed write never affects the fetch result.
func Set(cfg config.Cache, key string, body json.RawMessage) error {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory %s: %w", cfg.Dir, err)
	}

	entry := Entry{
		StoredAt: time.Now().UnixMilli(),
		Body:     body,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	path := filepath.Join(cfg.Dir, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache entry %s: %w", path, err)
	}
	return nil
}
