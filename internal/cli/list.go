package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/wronai/repodash/pkg/card"
	"github.com/wronai/repodash/pkg/card/sink"
	"github.com/wronai/repodash/pkg/catalog"
	"github.com/wronai/repodash/pkg/dashboard"
	"github.com/wronai/repodash/pkg/errors"
	"github.com/wronai/repodash/pkg/filter"
)

// listOpts holds options for the list command.
type listOpts struct {
	language string
	json     bool
	cards    bool
	width    int
}

// listCommand creates the list command for printing the catalog.
func (c *CLI) listCommand() *cobra.Command {
	opts := listOpts{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the repository catalog",
		Long: `Load the catalog and print it as a table, as cards, or as JSON.

A failed load is not an error: the failure banner is printed and the
listing is empty.`,
		Example: `  # All repositories
  repodash list --origin https://wronai.github.io --base-path /dashboard

  # Only Python, as JSON
  repodash list --language Python --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runList(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.language, "language", "l", filter.All, "show only this language")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON")
	cmd.Flags().BoolVar(&opts.cards, "cards", false, "print full cards instead of a table")
	cmd.Flags().IntVar(&opts.width, "width", 100, "card width for --cards")

	c.registerFilterCompletion(cmd)

	return cmd
}

func (c *CLI) runList(ctx context.Context, opts listOpts) error {
	ctrl, cleanup, err := c.openDashboard(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := selectLanguage(ctrl, opts.language); err != nil {
		return err
	}

	pr, _ := c.loadPrefs()
	page := ctrl.Page(c.cfg.Title, darkMode(pr))
	switch {
	case opts.json:
		return sink.JSON(os.Stdout, page)
	case opts.cards:
		return sink.Terminal(os.Stdout, page, opts.width)
	}

	if page.Banner != "" {
		printWarning("%s", page.Banner)
		return nil
	}
	if len(page.Cards) == 0 {
		printInfo("No repositories")
		return nil
	}
	fmt.Println(StyleTitle.Render(page.Title))
	fmt.Println(renderTable(page.Cards))
	printStats(len(page.Cards), len(ctrl.Catalog()), len(ctrl.Languages()))
	printNewline()
	printKeyValue("Source", page.Source)
	return nil
}

// openDashboard builds a controller and loads the catalog.
func (c *CLI) openDashboard(ctx context.Context) (*dashboard.Controller, func(), error) {
	spin := newSpinner(ctx, os.Stderr, "Loading catalog...")
	loader, cleanup, err := c.newLoader(ctx, catalog.WithOnAttempt(func(cand catalog.Candidate) {
		spin.SetMessage("Trying " + cand.Location)
	}))
	if err != nil {
		return nil, nil, err
	}
	ctrl := dashboard.New(loader, dashboard.WithClipboard(card.SystemClipboard{}))
	c.loadDashboard(ctx, ctrl, spin)
	return ctrl, cleanup, nil
}

// selectLanguage applies a --language flag. After a failed load there is
// nothing to filter and the flag is ignored.
func selectLanguage(ctrl *dashboard.Controller, lang string) error {
	if lang == "" || lang == filter.All || ctrl.Banner() != "" {
		return nil
	}
	if !ctrl.OnFilterSelect(lang) {
		return errors.New(errors.ErrCodeInvalidLanguage,
			"unknown language %q (available: %s)", lang, strings.Join(ctrl.Languages(), ", "))
	}
	return nil
}

// renderTable renders cards as a compact lipgloss table.
func renderTable(cards []card.Card) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := make([][]string, len(cards))
	for i, cd := range cards {
		name := cd.Name
		if cd.Archived {
			name += " (archived)"
		}
		install := ""
		if b, ok := cd.Block(card.BlockInstall); ok {
			install = b.Text
		}
		rows[i] = []string{name, cd.Language.Text, strings.TrimPrefix(cd.Updated, "Updated "), install}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Repository", "Language", "Updated", "Install").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			switch col {
			case 0:
				return lipgloss.NewStyle().Foreground(colorWhite)
			case 1:
				return lipgloss.NewStyle().Foreground(lipgloss.Color(cards[row].Language.Color))
			default:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
		})
	return t.Render()
}
