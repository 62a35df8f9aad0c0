package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damianpoole/Loadstone/internal/config"
)

func testConfig(t *testing.T) config.Cache {
	t.Helper()
	return config.Cache{
		Enabled: true,
		TTL:     time.Hour,
		Dir:     t.TempDir(),
	}
}

func TestKey_Deterministic(t *testing.T) {
	a := Key("GET", "https://example.com/api", nil)
	b := Key("GET", "https://example.com/api", nil)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64) // sha256 hex
}

func TestKey_DistinguishesRequests(t *testing.T) {
	base := Key("GET", "https://example.com/api", nil)

	assert.NotEqual(t, base, Key("POST", "https://example.com/api", nil))
	assert.NotEqual(t, base, Key("GET", "https://example.com/other", nil))
	assert.NotEqual(t, base, Key("GET", "https://example.com/api", []byte("body")))
}

func TestSetThenGet_RoundTrip(t *testing.T) {
	cfg := testConfig(t)
	body := json.RawMessage(`{"title":"Abyssal whip"}`)

	require.NoError(t, Set(cfg, "k1", body))

	got, ok := Get(cfg, "k1")
	require.True(t, ok)
	assert.JSONEq(t, string(body), string(got))
}

func TestGet_MissOnAbsentEntry(t *testing.T) {
	cfg := testConfig(t)

	_, ok := Get(cfg, "missing")
	assert.False(t, ok)
}

func TestGet_MalformedEntryDeletedAndMiss(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(cfg.Dir, "bad")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, ok := Get(cfg, "bad")
	assert.False(t, ok)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "malformed entry should be deleted")
}

func TestGet_MissingStoredAtTreatedAsMalformed(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(cfg.Dir, "nostamp")
	require.NoError(t, os.WriteFile(path, []byte(`{"body":{"a":1}}`), 0o644))

	_, ok := Get(cfg, "nostamp")
	assert.False(t, ok)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func writeEntryAt(t *testing.T, cfg config.Cache, key string, storedAt time.Time) string {
	t.Helper()
	path := filepath.Join(cfg.Dir, key)
	raw := fmt.Sprintf(`{"storedAt":%d,"body":{"v":1}}`, storedAt.UnixMilli())
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
	return path
}

func TestGet_HitJustInsideTTL(t *testing.T) {
	cfg := testConfig(t)
	writeEntryAt(t, cfg, "fresh", time.Now().Add(-cfg.TTL+time.Second))

	_, ok := Get(cfg, "fresh")
	assert.True(t, ok)
}

func TestGet_ExpiredEntryDeletedAndMiss(t *testing.T) {
	cfg := testConfig(t)
	path := writeEntryAt(t, cfg, "stale", time.Now().Add(-cfg.TTL-time.Second))

	_, ok := Get(cfg, "stale")
	assert.False(t, ok)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "expired entry should be deleted")
}

func TestSet_CreatesCacheDirectory(t *testing.T) {
	cfg := testConfig(t)
	cfg.Dir = filepath.Join(cfg.Dir, "nested", "cache")

	require.NoError(t, Set(cfg, "k", json.RawMessage(`1`)))

	_, ok := Get(cfg, "k")
	assert.True(t, ok)
}

func TestSet_OverwritesExistingEntry(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, Set(cfg, "k", json.RawMessage(`"old"`)))
	require.NoError(t, Set(cfg, "k", json.RawMessage(`"new"`)))

	got, ok := Get(cfg, "k")
	require.True(t, ok)
	assert.Equal(t, `"new"`, string(got))
}
