package checksum

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/rail44/gemrun/internal/registry"
)

// Calculate computes a checksum over everything that determines a generation:
// the command's model and instruction and the content
func Calculate(cmd registry.Command, content string) string {
	h := fnv.New32a()
	for _, part := range []string{cmd.Model, cmd.SystemInstruction, normalizeContent(content)} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}

	// Return as 8-character hex string
	return fmt.Sprintf("%08x", h.Sum32())
}

// normalizeContent drops surrounding whitespace, which is trimmed before
// generation anyway
func normalizeContent(content string) string {
	return strings.TrimSpace(content)
}
