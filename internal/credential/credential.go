// Package credential resolves the API token handed to the generation backend.
package credential

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// EnvVar is the environment variable holding the Gemini API token
const EnvVar = "GOOGLE_GEMINI_API_TOKEN"

// LoadEnvFile merges the key/value pairs of a .env file into the process
// environment. Variables already set are left alone. A missing file is not an
// error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Resolve returns the credential. An explicit value (from the config file) wins
// over the environment. The result may be empty; the backend then fails on its
// first remote call.
func Resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return os.Getenv(EnvVar)
}
