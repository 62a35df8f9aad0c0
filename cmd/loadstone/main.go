// Package main provides the Loadstone CLI: a client for the RuneScape wiki
// and the RuneMetrics player-statistics API.
package main

import (
	"context"
	"os"
	"time"

	"charm.land/fang/v2"
	"charm.land/log/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/damianpoole/Loadstone/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "loadstone",
	Short: "RuneScape wiki and player lookup from the terminal",
	Long: `Loadstone fetches RuneScape wiki articles, search results, category
listings, and RuneMetrics player profiles, rendered as readable text or
structured JSON. Responses are cached on disk to keep API load down.`,
}

var (
	flagNoCache  bool
	flagCacheTTL float64
	flagCacheDir string
	flagJSON     bool
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Bypass the response cache entirely")
	rootCmd.PersistentFlags().Float64Var(&flagCacheTTL, "cache-ttl", 0, "Cache TTL in hours (default 24)")
	rootCmd.PersistentFlags().StringVar(&flagCacheDir, "cache-dir", "", "Cache directory (default ~/.loadstone/cache)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Emit JSON instead of text")
}

// cacheConfig resolves the cache settings from flags, the environment, and
// defaults, in that order.
func cacheConfig() config.Cache {
	opts := config.CacheOptions{Dir: flagCacheDir}
	if flagNoCache {
		disabled := false
		opts.Enabled = &disabled
	}
	if flagCacheTTL > 0 {
		ttl := time.Duration(flagCacheTTL * float64(time.Hour))
		opts.TTL = &ttl
	}
	return config.ResolveCache(opts, os.Getenv)
}

func logger() *log.Logger {
	l := log.New(os.Stderr)
	l.SetLevel(log.InfoLevel)
	return l
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
