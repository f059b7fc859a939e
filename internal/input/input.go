// Package input validates content before it is sent for generation.
package input

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// ValidationError reports content that cannot be sent for generation.
// Length and Max are set only when the content is too long.
type ValidationError struct {
	Reason string
	Length int
	Max    int
}

func (e *ValidationError) Error() string {
	if e.Max > 0 {
		return fmt.Sprintf("%s: input is %d chars, max %d", e.Reason, e.Length, e.Max)
	}
	return e.Reason
}

// Validate trims content and checks it is non-empty and at most limit characters.
// A non-positive limit disables the length check.
func Validate(content string, limit int) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", &ValidationError{Reason: "no input provided"}
	}

	if n := utf8.RuneCountInString(trimmed); limit > 0 && n > limit {
		return "", &ValidationError{
			Reason: "input string too long",
			Length: n,
			Max:    limit,
		}
	}
	return trimmed, nil
}

// Read reads content from r when r is not an interactive terminal and
// validates it. An interactive terminal means the user gave no input.
func Read(r io.Reader, interactive bool, limit int) (string, error) {
	if interactive {
		return "", &ValidationError{Reason: "no input provided"}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return Validate(string(data), limit)
}

// StdinIsTerminal reports whether standard input is attached to a terminal
func StdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
