package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// MoveToTrash moves path into the user's trash directory where the
// platform has one. It returns an error when no trash location is
// available so callers can fall back to permanent removal.
func MoveToTrash(path string) error {
	dir, err := trashDir()
	if err != nil {
		return err
	}
	target := filepath.Join(dir, filepath.Base(path))
	if _, err := os.Lstat(target); err == nil {
		// Name taken; disambiguate with a timestamp.
		target = fmt.Sprintf("%s.%d", target, time.Now().UnixNano())
	}
	return os.Rename(path, target)
}

// trashDir locates the platform trash directory.
func trashDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return ensureDir(filepath.Join(home, ".Trash"))
	case "linux":
		dataHome := os.Getenv("XDG_DATA_HOME")
		if dataHome == "" {
			dataHome = filepath.Join(home, ".local", "share")
		}
		return ensureDir(filepath.Join(dataHome, "Trash", "files"))
	default:
		return "", fmt.Errorf("no trash support on %s", runtime.GOOS)
	}
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
