// Package cli implements the repodash command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wronai/repodash/pkg/buildinfo"
	"github.com/wronai/repodash/pkg/cache"
	"github.com/wronai/repodash/pkg/catalog"
	"github.com/wronai/repodash/pkg/dashboard"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "repodash"

	// defaultTitle is the page and TUI heading.
	defaultTitle = "Repositories"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	v   *viper.Viper
	cfg Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		v:      viper.New(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Repodash browses a static catalog of repositories",
		Long: `Repodash loads a repository catalog (repos.json) from the first location
that answers, and shows it as filterable cards with copyable install and
clone commands: in the terminal, as a static HTML page, or as JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.v)
			if err != nil {
				return err
			}
			c.cfg = cfg
			installHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	bindConfigFlags(root, c.v)

	// Register all subcommands
	root.AddCommand(c.listCommand())
	root.AddCommand(c.languagesCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Dashboard Factory
// =============================================================================

// newLoader builds the catalog loader from the resolved configuration. The
// returned cleanup closes the response cache.
func (c *CLI) newLoader(ctx context.Context, opts ...catalog.Option) (*catalog.Loader, func(), error) {
	loc := c.cfg.Locations()
	if err := loc.Validate(); err != nil {
		return nil, nil, err
	}

	rc, err := newCache(ctx, c.cfg)
	if err != nil {
		c.Logger.Warn("response cache unavailable, continuing without it", "error", err)
		rc = cache.NewNullCache()
	}

	src := catalog.NewHTTPSource(
		catalog.WithCache(rc, c.cfg.CacheTTL),
		catalog.WithRetries(c.cfg.Retries, c.cfg.RetryDelay),
	)
	opts = append([]catalog.Option{
		catalog.WithHTTPSource(src),
		catalog.WithFileSource(catalog.NewFileSource(c.cfg.Root)),
	}, opts...)
	loader := catalog.NewLoader(loc.Candidates(), opts...)
	return loader, func() { _ = rc.Close() }, nil
}

// loadDashboard loads the catalog behind spin and reports the outcome.
func (c *CLI) loadDashboard(ctx context.Context, ctrl *dashboard.Controller, spin *spinner) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	spin.Start()
	ctrl.Initialize(ctx)
	spin.Stop()

	if ctrl.Banner() != "" {
		logger.Debug("catalog load failed", "error", ctrl.Err())
		return
	}
	prog.done("Loaded " + pluralize(len(ctrl.Catalog()), "repository", "repositories") + " from " + ctrl.Source().Location)
}

// newCache picks the response cache backend. Caching is off unless a TTL is
// configured; Redis is used when an address is set, otherwise files under
// the user cache directory.
func newCache(ctx context.Context, cfg Config) (cache.Cache, error) {
	if cfg.NoCache || cfg.CacheTTL <= 0 {
		return cache.NewNullCache(), nil
	}
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			return nil, err
		}
		return cache.Scoped(rc, appName+":"), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/repodash/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns ~/.config/repodash (or $XDG_CONFIG_HOME/repodash).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// prefsPath returns the display preferences file.
func prefsPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "prefs.toml"), nil
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
