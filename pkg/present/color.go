package present

// OtherColor is used for languages missing from the palette, and for
// records with no language at all.
const OtherColor = "#6e5494"

var languageColors = map[string]string{
	"Python":        "#3572A5",
	"JavaScript":    "#f1e05a",
	"TypeScript":    "#2b7489",
	"HTML":          "#e34c26",
	"CSS":           "#563d7c",
	"Go":            "#00ADD8",
	"Shell":         "#89e051",
	"Documentation": "#555555",
}

// Color returns the badge color for language. Lookup is case-sensitive.
func Color(language string) string {
	if c, ok := languageColors[language]; ok {
		return c
	}
	return OtherColor
}
