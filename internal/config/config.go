// Package config resolves cache configuration from explicit options,
// environment variables, and built-in defaults, in that precedence order.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Environment variable names consulted by ResolveCache.
const (
	EnvCacheEnabled  = "LOADSTONE_CACHE_ENABLED"
	EnvCacheTTLHours = "LOADSTONE_CACHE_TTL_HOURS"
	EnvCacheDir      = "LOADSTONE_CACHE_DIR"
)

// DefaultCacheTTL is how long a cached response stays fresh.
const DefaultCacheTTL = 24 * time.Hour

// Cache is the fully resolved cache configuration consumed by the cache
// store and the fetcher.
type Cache struct {
	Enabled bool
	TTL     time.Duration
	Dir     string
}

// CacheOptions carries explicit per-call overrides. Nil pointer / empty
// string means "not set"; unset fields fall through to the environment and
// then to defaults.
type CacheOptions struct {
	Enabled *bool
	TTL     *time.Duration
	Dir     string
}

// ResolveCache merges explicit options, an environment snapshot, and
// defaults into a Cache. The environment is injected as a lookup function so
// callers and tests never depend on ambient process state; the CLI passes
// os.Getenv.
func ResolveCache(opts CacheOptions, getenv func(string) string) Cache {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}

	resolved := Cache{
		Enabled: true,
		TTL:     DefaultCacheTTL,
		Dir:     DefaultCacheDir(),
	}

	if v := getenv(EnvCacheEnabled); v != "" {
		resolved.Enabled = parseBool(v, resolved.Enabled)
	}
	if v := getenv(EnvCacheTTLHours); v != "" {
		if hours, err := strconv.ParseFloat(v, 64); err == nil && hours > 0 {
			resolved.TTL = time.Duration(hours * float64(time.Hour))
		}
	}
	if v := getenv(EnvCacheDir); v != "" {
		resolved.Dir = v
	}

	if opts.Enabled != nil {
		resolved.Enabled = *opts.Enabled
	}
	if opts.TTL != nil {
		resolved.TTL = *opts.TTL
	}
	if opts.Dir != "" {
		resolved.Dir = opts.Dir
	}

	return resolved
}

// DefaultCacheDir returns <user-home>/.loadstone/cache, falling back to a
// relative path when the home directory cannot be determined.
func DefaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".loadstone", "cache")
	}
	return filepath.Join(home, ".loadstone", "cache")
}

func parseBool(v string, fallback bool) bool {
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
