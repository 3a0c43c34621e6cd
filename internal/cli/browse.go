package cli

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wronai/repodash/pkg/card"
	"github.com/wronai/repodash/pkg/catalog"
	"github.com/wronai/repodash/pkg/dashboard"
	"github.com/wronai/repodash/pkg/watch"
)

// browseCommand creates the interactive dashboard command.
func (c *CLI) browseCommand() *cobra.Command {
	var watchFiles bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		Long: `Open an interactive dashboard: filter by language with the number keys,
move between cards and code blocks, and copy install or clone commands to
the clipboard. The dark/light choice (d) is remembered between sessions.

With --watch, local catalog files are watched and the dashboard reloads
when they change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), watchFiles)
		},
	}

	cmd.Flags().BoolVarP(&watchFiles, "watch", "w", false, "reload when local catalog files change")

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, watchFiles bool) error {
	loader, cleanup, err := c.newLoader(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	ctrl := dashboard.New(loader, dashboard.WithClipboard(card.SystemClipboard{}))
	p, path := c.loadPrefs()
	m := NewDashboardModel(ctx, ctrl, loader, c.cfg.Title, p, path)

	if watchFiles {
		w, err := c.startWatcher(ctx, loader.Candidates())
		if err != nil {
			c.Logger.Warn("not watching catalog files", "error", err)
		} else {
			defer w.Close()
			m = m.WithChanges(w.Changes())
		}
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// startWatcher watches the local file candidates whose directory exists.
func (c *CLI) startWatcher(ctx context.Context, candidates []catalog.Candidate) (*watch.Watcher, error) {
	files := localCatalogFiles(c.cfg.Root, candidates)
	w, err := watch.New(files, watch.WithErrorHandler(func(err error) {
		c.Logger.Debug("watch error", "error", err)
	}))
	if err != nil {
		return nil, err
	}
	go func() { _ = w.Run(ctx) }()
	c.Logger.Debug("watching catalog files", "files", files)
	return w, nil
}

// localCatalogFiles resolves file candidates against root, keeping those
// whose directory exists.
func localCatalogFiles(root string, candidates []catalog.Candidate) []string {
	var files []string
	seen := map[string]bool{}
	for _, cand := range candidates {
		if cand.Kind != catalog.KindFile {
			continue
		}
		path := cand.Location
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, filepath.FromSlash(path))
		}
		if seen[path] {
			continue
		}
		if info, err := os.Stat(filepath.Dir(path)); err != nil || !info.IsDir() {
			continue
		}
		seen[path] = true
		files = append(files, path)
	}
	return files
}
