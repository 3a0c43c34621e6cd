package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/wronai/repodash/pkg/filter"
)

func TestRootCommandSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()

	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}
	want := []string{"browse", "cache", "completion", "languages", "list", "render", "serve"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("subcommands mismatch (-want +got):\n%s", diff)
	}
}

func TestRootCommandGlobalFlags(t *testing.T) {
	root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()
	for _, name := range []string{"config", "origin", "base-path", "root", "source", "no-cache", "cache-ttl", "redis-addr", "retries"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, log.InfoLevel)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug output at info level: %q", buf.String())
	}
	c.SetLogLevel(log.DebugLevel)
	c.Logger.Debug("shown")
	if !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Errorf("debug output missing after SetLogLevel: %q", buf.String())
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 cards"},
		{1, "1 card"},
		{2, "2 cards"},
	}
	for _, tt := range tests {
		if got := pluralize(tt.n, "card", "cards"); got != tt.want {
			t.Errorf("pluralize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestCompleteLanguages(t *testing.T) {
	dir := t.TempDir()
	body := `{"repositories":[{"name":"a","url":"https://github.com/o/a","language":"Rust"},{"name":"b","url":"https://github.com/o/b","language":"Go"}]}`
	if err := os.WriteFile(filepath.Join(dir, "repos.json"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(&bytes.Buffer{}, log.InfoLevel)
	c.cfg = Config{Root: dir}

	got, directive := c.completeLanguages(&cobra.Command{}, nil, "")
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("directive = %v", directive)
	}
	if diff := cmp.Diff([]string{filter.All, "Go", "Rust"}, got); diff != "" {
		t.Errorf("completions mismatch (-want +got):\n%s", diff)
	}
}
