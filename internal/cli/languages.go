package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// languagesCommand prints the language filter set, one per line.
func (c *CLI) languagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "Print the languages available as filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, cleanup, err := c.openDashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if ctrl.Banner() != "" {
				printError("%s", ctrl.Banner())
				return nil
			}
			for _, lang := range ctrl.Languages() {
				fmt.Println(lang)
			}
			return nil
		},
	}
}
