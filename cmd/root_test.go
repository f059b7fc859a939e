package cmd

import (
	"strings"
	"testing"
)

func TestCommandTree(t *testing.T) {
	want := []string{"run", "register", "commands", "models", "translate", "watch"}
	for _, name := range want {
		c, _, err := rootCmd.Find([]string{name})
		if err != nil || c == rootCmd {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRegisterFlags(t *testing.T) {
	for _, name := range []string{"model", "instructions"} {
		if registerCmd.Flags().Lookup(name) == nil {
			t.Errorf("register is missing --%s", name)
		}
	}
	if commandsCmd.Flags().ShorthandLookup("v") == nil {
		t.Error("commands is missing -v")
	}
}

func TestContentInputJoinsArgs(t *testing.T) {
	in := contentInput([]string{"hello", "world"})
	if in.Text != "hello world" {
		t.Errorf("Text = %q", in.Text)
	}
	if contentInput(nil).Text != "" {
		t.Error("no args should leave Text empty")
	}
}

func TestExactArgsWithUsage(t *testing.T) {
	check := exactArgsWithUsage(2, "a command name and a file")
	if err := check(watchCmd, []string{"a"}); err == nil || !strings.Contains(err.Error(), "a command name and a file") {
		t.Errorf("unexpected error %v", err)
	}
	if err := check(watchCmd, []string{"a", "b"}); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}
