package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestResolveCache_Defaults(t *testing.T) {
	cfg := ResolveCache(CacheOptions{}, nil)

	assert.True(t, cfg.Enabled)
	assert.Equal(t, DefaultCacheTTL, cfg.TTL)
	assert.NotEmpty(t, cfg.Dir)
	assert.Contains(t, cfg.Dir, ".loadstone")
}

func TestResolveCache_EnvironmentOverridesDefaults(t *testing.T) {
	cfg := ResolveCache(CacheOptions{}, envMap(map[string]string{
		EnvCacheEnabled:  "false",
		EnvCacheTTLHours: "2",
		EnvCacheDir:      "/tmp/wiki-cache",
	}))

	assert.False(t, cfg.Enabled)
	assert.Equal(t, 2*time.Hour, cfg.TTL)
	assert.Equal(t, "/tmp/wiki-cache", cfg.Dir)
}

func TestResolveCache_ExplicitOverridesEnvironment(t *testing.T) {
	enabled := true
	ttl := 30 * time.Minute
	cfg := ResolveCache(CacheOptions{
		Enabled: &enabled,
		TTL:     &ttl,
		Dir:     "/explicit/dir",
	}, envMap(map[string]string{
		EnvCacheEnabled:  "false",
		EnvCacheTTLHours: "48",
		EnvCacheDir:      "/env/dir",
	}))

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.TTL)
	assert.Equal(t, "/explicit/dir", cfg.Dir)
}

func TestResolveCache_FractionalTTLHours(t *testing.T) {
	cfg := ResolveCache(CacheOptions{}, envMap(map[string]string{
		EnvCacheTTLHours: "0.5",
	}))

	assert.Equal(t, 30*time.Minute, cfg.TTL)
}

func TestResolveCache_MalformedEnvironmentIgnored(t *testing.T) {
	cfg := ResolveCache(CacheOptions{}, envMap(map[string]string{
		EnvCacheEnabled:  "banana",
		EnvCacheTTLHours: "not-a-number",
	}))

	assert.True(t, cfg.Enabled)
	assert.Equal(t, DefaultCacheTTL, cfg.TTL)
}

func TestResolveCache_ZeroEnabledStringDisables(t *testing.T) {
	cfg := ResolveCache(CacheOptions{}, envMap(map[string]string{
		EnvCacheEnabled: "0",
	}))

	assert.False(t, cfg.Enabled)
}
