package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/wronai/repodash/pkg/catalog"
	"github.com/wronai/repodash/pkg/dashboard"
	rderrors "github.com/wronai/repodash/pkg/errors"
	"github.com/wronai/repodash/pkg/filter"
	"github.com/wronai/repodash/pkg/prefs"
)

func TestPageWriter(t *testing.T) {
	for _, format := range []string{formatHTML, formatJSON} {
		if _, err := pageWriter(format); err != nil {
			t.Errorf("pageWriter(%q) error: %v", format, err)
		}
	}
	if _, err := pageWriter("pdf"); err == nil {
		t.Error("pageWriter(pdf) should fail")
	}
}

func TestResolveTheme(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c := New(&bytes.Buffer{}, log.InfoLevel)

	tests := []struct {
		theme   string
		want    bool
		wantErr bool
	}{
		{"dark", true, false},
		{"light", false, false},
		{"sepia", false, true},
	}
	for _, tt := range tests {
		got, err := c.resolveTheme(tt.theme)
		if (err != nil) != tt.wantErr {
			t.Errorf("resolveTheme(%q) error = %v, wantErr %v", tt.theme, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("resolveTheme(%q) = %v, want %v", tt.theme, got, tt.want)
		}
	}
}

func TestResolveThemeUsesStoredPreference(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path, err := prefsPath()
	if err != nil {
		t.Fatal(err)
	}
	if err := prefs.Save(path, prefs.Prefs{Theme: prefs.ThemeLight}); err != nil {
		t.Fatal(err)
	}

	c := New(&bytes.Buffer{}, log.InfoLevel)
	dark, err := c.resolveTheme("")
	if err != nil {
		t.Fatal(err)
	}
	if dark {
		t.Error("stored light preference should win over terminal detection")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dist", "index.html")

	if err := writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "<html></html>")
		return err
	}); err != nil {
		t.Fatalf("writeFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<html></html>" {
		t.Errorf("content = %q", data)
	}
	info, _ := os.Stat(path)
	if info.Mode().Perm() != 0o644 {
		t.Errorf("mode = %v, want 0644", info.Mode().Perm())
	}
}

func TestWriteFileFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")

	boom := errors.New("boom")
	if err := writeFile(path, func(io.Writer) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("writeFile error = %v, want boom", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("directory should be empty, has %d entries", len(entries))
	}
}

type resultLoader catalog.Result

func (r resultLoader) Load(context.Context) catalog.Result { return catalog.Result(r) }

func loadedController(t *testing.T, res catalog.Result) *dashboard.Controller {
	t.Helper()
	ctrl := dashboard.New(resultLoader(res))
	ctrl.Initialize(t.Context())
	return ctrl
}

func TestSelectLanguage(t *testing.T) {
	res := catalog.Result{Catalog: catalog.Catalog{
		{Name: "a", URL: "https://github.com/o/a", Language: "Go"},
		{Name: "b", URL: "https://github.com/o/b", Language: "Python"},
	}}

	ctrl := loadedController(t, res)
	if err := selectLanguage(ctrl, "Python"); err != nil {
		t.Fatalf("selectLanguage(Python): %v", err)
	}
	if len(ctrl.Cards()) != 1 || ctrl.Cards()[0].Name != "b" {
		t.Errorf("cards after filter = %v", ctrl.Cards())
	}

	err := selectLanguage(ctrl, "Rust")
	if !rderrors.Is(err, rderrors.ErrCodeInvalidLanguage) {
		t.Fatalf("selectLanguage(Rust) = %v, want INVALID_LANGUAGE", err)
	}
	if !strings.Contains(err.Error(), "Go, Python") {
		t.Errorf("error should list the languages: %v", err)
	}
	if ctrl.Active() != "Python" {
		t.Errorf("active = %q, unknown language should keep the selection", ctrl.Active())
	}

	if err := selectLanguage(ctrl, filter.All); err != nil {
		t.Errorf("selectLanguage(all): %v", err)
	}
}

func TestSelectLanguageIgnoredAfterFailedLoad(t *testing.T) {
	res := catalog.Result{Err: rderrors.New(rderrors.ErrCodeSourceUnavailable, "All attempts to load repository data failed.")}
	ctrl := loadedController(t, res)
	if err := selectLanguage(ctrl, "Go"); err != nil {
		t.Errorf("selectLanguage after failed load = %v, want nil", err)
	}
}
