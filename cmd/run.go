package cmd

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <command> [content...]",
	Short: "Send content through a registered command",
	Long: `Run sends content through a registered command and prints the generated text.

When no content is given on the command line it is read from standard input,
as long as standard input is not an interactive terminal.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return a.Run(cmd.Context(), args[0], contentInput(args[1:]))
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
