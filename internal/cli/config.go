package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wronai/repodash/pkg/catalog"
)

// envPrefix namespaces environment overrides, e.g. REPODASH_BASE_PATH.
const envPrefix = "REPODASH"

// Config is the resolved configuration. Precedence: flags, then
// REPODASH_* environment variables, then the config file, then defaults.
type Config struct {
	Origin   string
	BasePath string
	Root     string
	Sources  []string
	Title    string

	NoCache       bool
	CacheTTL      time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Retries    int
	RetryDelay time.Duration
}

// Locations returns the catalog candidate inputs.
func (c Config) Locations() catalog.Locations {
	return catalog.Locations{
		Origin:   c.Origin,
		BasePath: c.BasePath,
		Sources:  c.Sources,
	}
}

// bindConfigFlags registers the global flags and binds them to v.
func bindConfigFlags(root *cobra.Command, v *viper.Viper) {
	f := root.PersistentFlags()
	f.String("config", "", "config file (default ~/.config/repodash/config.toml)")
	f.String("origin", "", "site origin serving the catalog, e.g. https://example.github.io")
	f.String("base-path", "", "base path prefix under the origin, e.g. /dashboard")
	f.String("root", ".", "directory that relative catalog paths resolve against")
	f.StringSlice("source", nil, "extra catalog location tried before the defaults (repeatable)")
	f.Bool("no-cache", false, "disable the response cache")
	f.Duration("cache-ttl", 0, "keep fetched catalogs for this long (0 disables caching)")
	f.String("redis-addr", "", "cache catalogs in Redis at host:port instead of on disk")
	f.Int("retries", 0, "extra attempts per HTTP candidate on transient failures")

	bind := map[string]string{
		"config":     "config",
		"origin":     "origin",
		"base-path":  "base-path",
		"root":       "root",
		"sources":    "source",
		"no-cache":   "no-cache",
		"cache-ttl":  "cache-ttl",
		"redis-addr": "redis-addr",
		"retries":    "retries",
	}
	for key, flag := range bind {
		// Lookup cannot fail for flags registered above.
		_ = v.BindPFlag(key, f.Lookup(flag))
	}
}

// loadConfig resolves the configuration from v.
func loadConfig(v *viper.Viper) (Config, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("root", ".")
	v.SetDefault("title", defaultTitle)
	v.SetDefault("retry-delay", time.Second)
	v.SetDefault("redis-db", 0)

	if err := readConfigFile(v); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Origin:        strings.TrimRight(v.GetString("origin"), "/"),
		BasePath:      strings.TrimRight(v.GetString("base-path"), "/"),
		Root:          v.GetString("root"),
		Sources:       v.GetStringSlice("sources"),
		Title:         v.GetString("title"),
		NoCache:       v.GetBool("no-cache"),
		CacheTTL:      v.GetDuration("cache-ttl"),
		RedisAddr:     v.GetString("redis-addr"),
		RedisPassword: v.GetString("redis-password"),
		RedisDB:       v.GetInt("redis-db"),
		Retries:       v.GetInt("retries"),
		RetryDelay:    v.GetDuration("retry-delay"),
	}

	if cfg.Retries < 0 {
		return Config{}, fmt.Errorf("retries must be >= 0, got %d", cfg.Retries)
	}
	if cfg.CacheTTL < 0 {
		return Config{}, fmt.Errorf("cache-ttl must be >= 0, got %s", cfg.CacheTTL)
	}
	return cfg, nil
}

// readConfigFile reads --config when given, else the default file if it
// exists. A missing default file is not an error.
func readConfigFile(v *viper.Viper) error {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	dir, err := configDir()
	if err != nil {
		return nil
	}
	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}
