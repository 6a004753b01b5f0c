// Package storage persists the best score.
//
// Two backends are available: a plain text file holding the score as
// lowercase hexadecimal (the default) and a single-row SQLite table. Both
// satisfy BestScoreStore.
package storage

import (
	"os"
	"path/filepath"
)

// BestScoreStore loads and saves the best score.
type BestScoreStore interface {
	LoadBestScore() (int, error)
	SaveBestScore(score int) error
	Close() error
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}
