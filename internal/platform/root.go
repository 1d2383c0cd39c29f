package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/auditnotes/pkg/adapters/fs"
	"github.com/aretw0/auditnotes/pkg/core"
)

// FindRoot looks upwards from startDir for a project root.
// Indicators are: .git, the settings file, or an existing checklist document.
// It returns core.ErrNoWorkspace when the filesystem root is reached.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, ".git") || hasFile(dir, SettingsFile) || hasFile(dir, fs.DefaultDocumentName) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%w: no .git, %s or %s above %s", core.ErrNoWorkspace, SettingsFile, fs.DefaultDocumentName, abs)
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
