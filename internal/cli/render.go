package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wronai/repodash/pkg/card/sink"
	"github.com/wronai/repodash/pkg/filter"
	"github.com/wronai/repodash/pkg/prefs"
)

const (
	formatHTML = "html"
	formatJSON = "json"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file, "-" for stdout
	format   string // "html" or "json"
	language string // initially active filter
	title    string // overrides the configured title
	theme    string // "dark", "light" or "" for the stored preference
}

// renderCommand creates the render command for writing a static dashboard.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{output: "index.html", format: formatHTML, language: filter.All}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the dashboard as a static HTML page",
		Long: `Load the catalog and write a self-contained page with filter buttons,
copy buttons and a dark/light toggle. The page keeps working offline: all
cards are embedded and filtering happens in the browser.`,
		Example: `  repodash render -o dist/index.html
  repodash render --language Go --theme dark -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, `output file ("-" for stdout)`)
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: html or json")
	cmd.Flags().StringVarP(&opts.language, "language", "l", opts.language, "initially active language filter")
	cmd.Flags().StringVar(&opts.title, "title", "", "page title (default from config)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "dark or light (default: stored preference)")

	c.registerFilterCompletion(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts renderOpts) error {
	write, err := pageWriter(opts.format)
	if err != nil {
		return err
	}
	dark, err := c.resolveTheme(opts.theme)
	if err != nil {
		return err
	}

	ctrl, cleanup, err := c.openDashboard(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := selectLanguage(ctrl, opts.language); err != nil {
		return err
	}

	title := opts.title
	if title == "" {
		title = c.cfg.Title
	}
	page := ctrl.Page(title, dark)

	if opts.output == "-" {
		return write(os.Stdout, page)
	}
	if err := writeFile(opts.output, func(w io.Writer) error { return write(w, page) }); err != nil {
		return err
	}

	if page.Banner != "" {
		printWarning("%s", page.Banner)
	}
	printSuccess("Rendered %s", pluralize(len(page.Cards), "card", "cards"))
	printFile(opts.output)
	if opts.format == formatHTML {
		printNextStep("Preview", "repodash serve --dir "+filepath.Dir(opts.output))
	}
	return nil
}

func pageWriter(format string) (func(io.Writer, sink.Page) error, error) {
	switch format {
	case formatHTML:
		return sink.HTML, nil
	case formatJSON:
		return sink.JSON, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want html or json)", format)
	}
}

// resolveTheme maps --theme to dark/light, falling back to preferences.
func (c *CLI) resolveTheme(theme string) (bool, error) {
	switch prefs.Theme(theme) {
	case prefs.ThemeDark:
		return true, nil
	case prefs.ThemeLight:
		return false, nil
	case prefs.ThemeUnset:
		p, _ := c.loadPrefs()
		return darkMode(p), nil
	default:
		return false, fmt.Errorf("unknown theme %q (want dark or light)", theme)
	}
}

// writeFile writes path through a temp file in the same directory.
func writeFile(path string, fn func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	if err := fn(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
