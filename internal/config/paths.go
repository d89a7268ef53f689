package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	homeDirName    = ".capri"
	configFileName = "config.yaml"
)

// HomeDir returns the capri home directory, ~/.capri.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, homeDirName), nil
}

// DefaultConfigFile returns ~/.capri/config.yaml.
func DefaultConfigFile() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// ExpandPath replaces a leading "~" or "~/" with the home directory.
// "~user" and tildes elsewhere in the path are left alone.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %q: %w", path, err)
	}
	return filepath.Join(home, path[1:]), nil
}
