package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wronai/repodash/pkg/dashboard"
	"github.com/wronai/repodash/pkg/filter"
	"github.com/wronai/repodash/pkg/prefs"
)

// completionLoadTimeout bounds the catalog load done for --language completion.
const completionLoadTimeout = 3 * time.Second

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for repodash. Completion of --language
loads the configured catalog, so it offers the languages actually present.

Bash:
  $ source <(repodash completion bash)
  $ repodash completion bash > /etc/bash_completion.d/repodash

Zsh:
  $ repodash completion zsh > "${fpath[1]}/_repodash"

Fish:
  $ repodash completion fish > ~/.config/fish/completions/repodash.fish

PowerShell:
  PS> repodash completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// registerFilterCompletion completes --language with the catalog's languages
// and --theme with the two themes.
func (c *CLI) registerFilterCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("language", c.completeLanguages)
	if cmd.Flags().Lookup("theme") != nil {
		_ = cmd.RegisterFlagCompletionFunc("theme", cobra.FixedCompletions(
			[]string{string(prefs.ThemeDark), string(prefs.ThemeLight)}, cobra.ShellCompDirectiveNoFileComp))
	}
}

func (c *CLI) completeLanguages(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, completionLoadTimeout)
	defer cancel()

	loader, cleanup, err := c.newLoader(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer cleanup()

	ctrl := dashboard.New(loader)
	ctrl.Initialize(ctx)
	return append([]string{filter.All}, ctrl.Languages()...), cobra.ShellCompDirectiveNoFileComp
}
