// Package builtin defines the fixed translation commands shipped with gemrun.
// They are never persisted and cannot be overwritten by registration.
package builtin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rail44/gemrun/internal/registry"
)

// Kind identifies a built-in command
type Kind string

const (
	TranslateEnglish  Kind = "translate-en"
	TranslateJapanese Kind = "translate-ja"
	TranslateChinese  Kind = "translate-zh"
	TranslateKorean   Kind = "translate-ko"
	TranslateSpanish  Kind = "translate-es"
	TranslateFrench   Kind = "translate-fr"
	TranslateGerman   Kind = "translate-de"
)

type spec struct {
	code     string
	language string
}

var kinds = map[Kind]spec{
	TranslateEnglish:  {"en", "English"},
	TranslateJapanese: {"ja", "Japanese"},
	TranslateChinese:  {"zh", "Simplified Chinese"},
	TranslateKorean:   {"ko", "Korean"},
	TranslateSpanish:  {"es", "Spanish"},
	TranslateFrench:   {"fr", "French"},
	TranslateGerman:   {"de", "German"},
}

// UnknownKindError is returned by Parse for names outside the built-in set
type UnknownKindError struct {
	Name string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown built-in command %q (available: %s)", e.Name, strings.Join(Codes(), ", "))
}

// Parse accepts a language code ("ja"), a language name ("japanese") or the
// full kind ("translate-ja")
func Parse(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for k, s := range kinds {
		if n == string(k) || n == s.code || n == strings.ToLower(s.language) {
			return k, nil
		}
	}
	return "", &UnknownKindError{Name: name}
}

// Language returns the target language name
func (k Kind) Language() string {
	return kinds[k].language
}

// Instruction returns the system instruction sent with the command
func (k Kind) Instruction() string {
	return fmt.Sprintf("Translate the user's text into natural %s. "+
		"Keep the original meaning, tone and formatting. "+
		"Output only the translation without explanations or quotes.", k.Language())
}

// Command builds the command for k, run with model
func (k Kind) Command(model string) registry.Command {
	return registry.Command{
		Name:              string(k),
		Model:             model,
		SystemInstruction: k.Instruction(),
	}
}

// Codes returns the language codes of all built-in commands, sorted
func Codes() []string {
	codes := make([]string, 0, len(kinds))
	for _, s := range kinds {
		codes = append(codes, s.code)
	}
	sort.Strings(codes)
	return codes
}
