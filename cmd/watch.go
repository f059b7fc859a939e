package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <command> <file>",
	Short: "Run a command on a file every time it is saved",
	Long: `Watch runs a registered command on the contents of a file, then again
whenever the file is saved, until interrupted.`,
	Args: exactArgsWithUsage(2, "a command name and a file"),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(args[1]); err != nil {
			return fmt.Errorf("cannot watch %s: %w", args[1], err)
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		return a.Watch(cmd.Context(), args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
