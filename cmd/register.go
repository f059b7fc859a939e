package cmd

import (
	"github.com/spf13/cobra"
)

var (
	registerModel        string
	registerInstructions string
)

var registerCmd = &cobra.Command{
	Use:   "register <command>",
	Short: "Register or replace a command",
	Long: `Register binds a system instruction and a model to a command name.

Registering an existing name replaces its model and instructions. A model given
with --model is checked against the models the backend offers; without it the
default model is used.`,
	Args: exactArgsWithUsage(1, "a command name"),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		return a.Register(cmd.Context(), args[0], registerModel, registerInstructions)
	},
}

func init() {
	registerCmd.Flags().StringVarP(&registerModel, "model", "m", "", "model to run the command with")
	registerCmd.Flags().StringVarP(&registerInstructions, "instructions", "i", "", "system instructions sent with every run")
	rootCmd.AddCommand(registerCmd)
}
