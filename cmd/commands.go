package cmd

import (
	"github.com/spf13/cobra"
)

var verbose bool

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List registered commands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return a.Commands(verbose)
	},
}

func init() {
	commandsCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show model and instructions for each command")
	rootCmd.AddCommand(commandsCmd)
}
