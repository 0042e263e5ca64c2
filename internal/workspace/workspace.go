package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureAt creates the workspace layout under base and returns base.
func EnsureAt(base string) (string, error) {
	paths := []string{
		filepath.Join(base, "configs"),
		filepath.Join(base, "surveys"),
		filepath.Join(base, "exports"),
	}

	for _, p := range paths {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", p, err)
		}
	}
	return base, nil
}
