package present

import (
	"strings"
	"time"

	"github.com/wronai/repodash/pkg/catalog"
)

const (
	// UnknownLanguage labels records without a language.
	UnknownLanguage = "Unknown"

	// NoDescription replaces an empty description.
	NoDescription = "No description provided"
)

// View holds the derived display fields for one repository.
type View struct {
	LanguageLabel   string
	DescriptionText string
	Color           string
	Updated         string // relative time, e.g. "2 weeks ago"
	CloneHTTPS      string
	CloneSSH        string // empty when HasSSH is false
	HasSSH          bool
	HasInstall      bool
	InstallCommand  string // trimmed; empty when HasInstall is false
	PackageURL      string // empty when the record has no PyPI name
}

// Derive computes the view fields of r relative to now.
func Derive(r catalog.Repository, now time.Time) View {
	https, ssh, ok := CloneURLs(r.URL)
	v := View{
		LanguageLabel:   LanguageLabel(r.Language),
		DescriptionText: DescriptionText(r.Description),
		Color:           Color(r.Language),
		Updated:         RelativeTime(r.UpdatedAt, now),
		CloneHTTPS:      https,
		CloneSSH:        ssh,
		HasSSH:          ok,
		HasInstall:      HasInstall(r.InstallCommand),
		PackageURL:      PackageURL(r.PyPI),
	}
	if v.HasInstall {
		v.InstallCommand = strings.TrimSpace(r.InstallCommand)
	}
	return v
}

// LanguageLabel returns language, or [UnknownLanguage] when it is empty.
func LanguageLabel(language string) string {
	if language == "" {
		return UnknownLanguage
	}
	return language
}

// DescriptionText returns description, or [NoDescription] when it is empty.
func DescriptionText(description string) string {
	if description == "" {
		return NoDescription
	}
	return description
}

// HasInstall reports whether cmd contains anything besides whitespace.
func HasInstall(cmd string) bool {
	return strings.TrimSpace(cmd) != ""
}

// PackageURL returns the PyPI project page for name, or "" when name is empty.
func PackageURL(name string) string {
	if name == "" {
		return ""
	}
	return "https://pypi.org/project/" + name + "/"
}
