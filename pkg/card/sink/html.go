package sink

import (
	_ "embed"
	"html/template"
	"io"

	"github.com/wronai/repodash/pkg/card"
	"github.com/wronai/repodash/pkg/filter"
)

//go:embed page.html.tmpl
var pageTemplate string

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"langColor": func(c card.Card) template.CSS {
		return template.CSS("background-color: " + c.Language.Color)
	},
	"filterLabel": filterLabel,
}).Parse(pageTemplate))

// HTML writes p as a standalone HTML page. Every card is present in the
// markup with its language as a data attribute; the inline script hides
// cards when a filter button is clicked, copies code blocks, and persists
// the dark/light choice in localStorage.
func HTML(w io.Writer, p Page) error {
	if p.Title == "" {
		p.Title = "Repositories"
	}
	return pageTmpl.Execute(w, p)
}

func filterLabel(selector string) string {
	if selector == filter.All {
		return "All"
	}
	return selector
}
