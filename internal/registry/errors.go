package registry

import (
	"errors"
	"fmt"
)

// ErrEmptyName is returned when a command is registered without a name
var ErrEmptyName = errors.New("command name is required")

// CommandNotFoundError is returned when no command is registered under Name
type CommandNotFoundError struct {
	Name string
}

func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("command %q not found", e.Name)
}

// ModelNotFoundError is returned when a model is not offered by the backend
type ModelNotFoundError struct {
	Model string
}

func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("model %q not found", e.Model)
}
