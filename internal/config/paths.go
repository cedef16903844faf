package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SearchPaths are tried in order by Locate when no config path is given.
var SearchPaths = []string{
	"offlined.yaml",
	"offlined.toml",
	"offlined.json",
	"~/.config/offlined/config.yaml",
	"/etc/offlined/config.yaml",
}

// Locate returns the first of candidates that exists, with '~' expanded,
// or "" when none does.
func Locate(candidates []string) (string, error) {
	for _, c := range candidates {
		p, err := expandHome(c)
		if err != nil {
			return "", err
		}
		if pathExists(p) {
			return p, nil
		}
	}
	return "", nil
}

// expandHome expands a leading '~' to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}
