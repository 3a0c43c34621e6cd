package present

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/wronai/repodash/pkg/catalog"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func ago(d time.Duration) string {
	return now.Add(-d).Format(time.RFC3339)
}

func TestRelativeTime(t *testing.T) {
	tests := []struct {
		name      string
		updatedAt string
		want      string
	}{
		{"missing", "", "unknown"},
		{"unparseable", "last tuesday", "unknown"},
		{"59 seconds", ago(59 * time.Second), "just now"},
		{"one minute", ago(60 * time.Second), "1 minute ago"},
		{"two hours", ago(2*time.Hour + 5*time.Minute), "2 hours ago"},
		{"90000 seconds", ago(90000 * time.Second), "1 day ago"},
		{"six days", ago(6 * 24 * time.Hour), "6 days ago"},
		{"one week", ago(7 * 24 * time.Hour), "1 week ago"},
		{"29 days", ago(29 * 24 * time.Hour), "4 weeks ago"},
		{"30 days", ago(30 * 24 * time.Hour), "1 month ago"},
		{"364 days", ago(364 * 24 * time.Hour), "12 months ago"},
		{"two years", ago(2 * 365 * 24 * time.Hour), "2 years ago"},
		{"future", now.Add(time.Hour).Format(time.RFC3339), "just now"},
		{"fractional seconds", now.Add(-3 * time.Hour).Format(time.RFC3339Nano), "3 hours ago"},
		{"date only", "2025-03-08", "2 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelativeTime(tt.updatedAt, now); got != tt.want {
				t.Errorf("RelativeTime(%q) = %q, want %q", tt.updatedAt, got, tt.want)
			}
		})
	}
}

func TestCloneURLs(t *testing.T) {
	tests := []struct {
		url       string
		wantHTTPS string
		wantSSH   string
		wantOK    bool
	}{
		{"https://github.com/acme/widget", "https://github.com/acme/widget.git", "git@github.com:acme/widget.git", true},
		{"https://gitlab.com/acme/widget", "https://gitlab.com/acme/widget.git", "", false},
		{"https://github.com/", "https://github.com/.git", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		https, ssh, ok := CloneURLs(tt.url)
		if https != tt.wantHTTPS || ssh != tt.wantSSH || ok != tt.wantOK {
			t.Errorf("CloneURLs(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.url, https, ssh, ok, tt.wantHTTPS, tt.wantSSH, tt.wantOK)
		}
	}
}

func TestColor(t *testing.T) {
	tests := map[string]string{
		"Python": "#3572A5",
		"Go":     "#00ADD8",
		"Shell":  "#89e051",
		"python": OtherColor,
		"Rust":   OtherColor,
		"":       OtherColor,
	}
	for lang, want := range tests {
		if got := Color(lang); got != want {
			t.Errorf("Color(%q) = %q, want %q", lang, got, want)
		}
	}
}

func TestHasInstall(t *testing.T) {
	tests := []struct {
		cmd  string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"\t\n", false},
		{"pip install widget", true},
	}
	for _, tt := range tests {
		if got := HasInstall(tt.cmd); got != tt.want {
			t.Errorf("HasInstall(%q) = %v, want %v", tt.cmd, got, tt.want)
		}
	}
}

func TestPackageURL(t *testing.T) {
	if got := PackageURL(""); got != "" {
		t.Errorf("PackageURL(\"\") = %q, want empty", got)
	}
	if got, want := PackageURL("widget"), "https://pypi.org/project/widget/"; got != want {
		t.Errorf("PackageURL = %q, want %q", got, want)
	}
}

func TestDerive(t *testing.T) {
	r := catalog.Repository{
		Name:           "widget",
		URL:            "https://github.com/acme/widget",
		UpdatedAt:      ago(90000 * time.Second),
		InstallCommand: "  pip install widget ",
		PyPI:           "widget",
	}

	want := View{
		LanguageLabel:   UnknownLanguage,
		DescriptionText: NoDescription,
		Color:           OtherColor,
		Updated:         "1 day ago",
		CloneHTTPS:      "https://github.com/acme/widget.git",
		CloneSSH:        "git@github.com:acme/widget.git",
		HasSSH:          true,
		HasInstall:      true,
		InstallCommand:  "pip install widget",
		PackageURL:      "https://pypi.org/project/widget/",
	}
	if diff := cmp.Diff(want, Derive(r, now)); diff != "" {
		t.Errorf("Derive mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveWhitespaceInstall(t *testing.T) {
	v := Derive(catalog.Repository{Language: "Go", InstallCommand: "   "}, now)
	if v.HasInstall || v.InstallCommand != "" {
		t.Errorf("whitespace install command should not produce an install block: %+v", v)
	}
	if v.LanguageLabel != "Go" || v.Color != "#00ADD8" {
		t.Errorf("language fields = %q %q", v.LanguageLabel, v.Color)
	}
}
