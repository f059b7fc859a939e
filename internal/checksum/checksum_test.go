package checksum

import (
	"testing"

	"github.com/rail44/gemrun/internal/registry"
)

func TestCalculate(t *testing.T) {
	cmd := registry.Command{Name: "summarize", Model: "gemini-2.0-flash", SystemInstruction: "Summarize input."}
	base := Calculate(cmd, "some text")

	if len(base) != 8 {
		t.Fatalf("expected 8 hex chars, got %q", base)
	}
	if got := Calculate(cmd, "  some text\n"); got != base {
		t.Errorf("surrounding whitespace should not change the checksum: %s != %s", got, base)
	}

	renamed := cmd
	renamed.Name = "other"
	if got := Calculate(renamed, "some text"); got != base {
		t.Errorf("command name should not change the checksum")
	}

	changes := map[string]string{
		"content":     Calculate(cmd, "other text"),
		"model":       Calculate(registry.Command{Model: "gemini-2.5-pro", SystemInstruction: cmd.SystemInstruction}, "some text"),
		"instruction": Calculate(registry.Command{Model: cmd.Model, SystemInstruction: "Translate."}, "some text"),
	}
	for what, got := range changes {
		if got == base {
			t.Errorf("changing the %s should change the checksum", what)
		}
	}
}

func TestCalculateFieldBoundaries(t *testing.T) {
	a := Calculate(registry.Command{Model: "ab", SystemInstruction: "c"}, "x")
	b := Calculate(registry.Command{Model: "a", SystemInstruction: "bc"}, "x")
	if a == b {
		t.Error("fields must not run into each other")
	}
}
