package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rail44/gemrun/internal/builtin"
)

var translateCmd = &cobra.Command{
	Use:   "translate <language> [content...]",
	Short: "Translate content with a built-in command",
	Long: fmt.Sprintf(`Translate sends content through one of the built-in translation commands.

Languages: %s. Content falls back to standard input like run.`, strings.Join(builtin.Codes(), ", ")),
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return a.Translate(cmd.Context(), args[0], contentInput(args[1:]))
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)
}
