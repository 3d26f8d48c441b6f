package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/KouSug/G-I-buildcard/internal/build"
)

// WriteBuildJSON writes the normalized build record as indented JSON.
func WriteBuildJSON(path string, b build.BuildData) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal build: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
