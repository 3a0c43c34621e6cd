package sink

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wronai/repodash/pkg/card"
	"github.com/wronai/repodash/pkg/filter"
)

// =============================================================================
// Themes
// =============================================================================

// Theme is the terminal palette for one display mode.
type Theme struct {
	Title  lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color
	Focus  lipgloss.Color
	Good   lipgloss.Color
	Bad    lipgloss.Color
	Link   lipgloss.Color
}

var (
	DarkTheme = Theme{
		Title:  lipgloss.Color("36"),
		Text:   lipgloss.Color("255"),
		Muted:  lipgloss.Color("245"),
		Border: lipgloss.Color("240"),
		Focus:  lipgloss.Color("36"),
		Good:   lipgloss.Color("35"),
		Bad:    lipgloss.Color("167"),
		Link:   lipgloss.Color("75"),
	}
	LightTheme = Theme{
		Title:  lipgloss.Color("30"),
		Text:   lipgloss.Color("235"),
		Muted:  lipgloss.Color("242"),
		Border: lipgloss.Color("250"),
		Focus:  lipgloss.Color("30"),
		Good:   lipgloss.Color("28"),
		Bad:    lipgloss.Color("124"),
		Link:   lipgloss.Color("25"),
	}
)

// ThemeFor returns [DarkTheme] or [LightTheme].
func ThemeFor(dark bool) Theme {
	if dark {
		return DarkTheme
	}
	return LightTheme
}

// =============================================================================
// Rendering
// =============================================================================

// Terminal writes p as a column of card boxes no wider than width.
func Terminal(w io.Writer, p Page, width int) error {
	th := ThemeFor(p.Dark)
	var b strings.Builder

	if p.Banner != "" {
		b.WriteString(RenderBanner(p.Banner, th, width))
		b.WriteString("\n")
	}
	b.WriteString(RenderFilters(p.Selectors, p.Active, th))
	b.WriteString("\n\n")

	if len(p.Cards) == 0 && p.Banner == "" {
		b.WriteString(lipgloss.NewStyle().Foreground(th.Muted).Render("No repositories."))
		b.WriteString("\n")
	}
	for _, c := range p.Cards {
		b.WriteString(RenderCard(c, th, width, false, -1))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderBanner draws the load-failure banner.
func RenderBanner(msg string, th Theme, width int) string {
	return lipgloss.NewStyle().
		Foreground(th.Bad).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(th.Bad).
		PaddingLeft(1).
		Width(max(width-2, 20)).
		Render(msg)
}

// RenderFilters draws the filter buttons on one line, highlighting active.
func RenderFilters(selectors []string, active string, th Theme) string {
	on := lipgloss.NewStyle().Bold(true).Foreground(th.Focus).Underline(true)
	off := lipgloss.NewStyle().Foreground(th.Muted)

	parts := make([]string, len(selectors))
	for i, s := range selectors {
		label := s
		if s == filter.All {
			label = "All"
		}
		label = fmt.Sprintf("[%d] %s", i, label)
		if s == active {
			parts[i] = on.Render(label)
		} else {
			parts[i] = off.Render(label)
		}
	}
	return strings.Join(parts, "  ")
}

// RenderCard draws one card. When focused, the border is highlighted and
// the block at index selected (if any) is marked.
func RenderCard(c card.Card, th Theme, width int, focused bool, selected int) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(th.Text)
	muted := lipgloss.NewStyle().Foreground(th.Muted)
	badge := lipgloss.NewStyle().Foreground(th.Bad)
	link := lipgloss.NewStyle().Foreground(th.Link).Underline(true)

	head := title.Render(c.Name)
	if c.Archived {
		head += " " + badge.Render("Archived")
	}
	if c.Fork {
		head += " " + muted.Render("Fork")
	}

	desc := lipgloss.NewStyle().Foreground(th.Text)
	if c.Placeholder {
		desc = muted.Italic(true)
	}

	lang := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Language.Color)).Render("●") +
		" " + c.Language.Text

	lines := []string{
		head,
		desc.Render(c.Description),
		lang + muted.Render("  ·  "+c.Updated),
	}

	for i, blk := range c.Blocks {
		marker := "  "
		if focused && i == selected {
			marker = lipgloss.NewStyle().Foreground(th.Focus).Render("▸ ")
		}
		lines = append(lines, marker+muted.Render(blk.Label+": ")+blk.Text+" "+copyLabel(blk, th))
	}

	if len(c.Links) > 0 {
		links := make([]string, len(c.Links))
		for i, l := range c.Links {
			links[i] = muted.Render(l.Label+" ") + link.Render(l.URL)
		}
		lines = append(lines, strings.Join(links, "  "))
	}

	border := th.Border
	if focused {
		border = th.Focus
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(max(width-2, 20)).
		Render(strings.Join(lines, "\n"))
}

func copyLabel(b card.CodeBlock, th Theme) string {
	if b.Copy == nil {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(th.Muted)
	switch b.Copy.State() {
	case card.Copied:
		style = style.Foreground(th.Good)
	case card.Failed:
		style = style.Foreground(th.Bad)
	}
	return style.Render("[" + b.Copy.Label() + "]")
}
