package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// FileStore keeps the best score in a text file as lowercase hex.
type FileStore struct {
	path   string
	logger *log.Logger
}

// OpenFile returns a store backed by the file at path. The file itself is
// created lazily. A nil logger discards output.
func OpenFile(path string, logger *log.Logger) (*FileStore, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p, err := expandHome(path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return &FileStore{path: p, logger: logger}, nil
}

// Path returns the file location.
func (s *FileStore) Path() string {
	return s.path
}

// LoadBestScore reads the stored score. A missing or corrupt file counts as
// 0 and is replaced with a fresh record.
func (s *FileStore) LoadBestScore() (int, error) {
	data, err := os.ReadFile(s.path)
	if err == nil {
		score, perr := parseHex(string(data))
		if perr == nil {
			return score, nil
		}
		err = perr
	}

	s.logger.Warn("best score unreadable, starting from 0", "path", s.path, "err", err)
	if werr := s.SaveBestScore(0); werr != nil {
		return 0, werr
	}
	return 0, nil
}

// SaveBestScore overwrites the stored score. The file is replaced
// atomically so a crash never leaves a half-written record.
func (s *FileStore) SaveBestScore(score int) error {
	if score < 0 {
		return fmt.Errorf("storage: negative score %d", score)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".bsc-*")
	if err != nil {
		return fmt.Errorf("storage: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strconv.FormatInt(int64(score), 16)); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: cannot write best score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: cannot write best score: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("storage: cannot replace %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error {
	return nil
}

// parseHex accepts "2a" as well as the legacy "0x2a" form.
func parseHex(text string) (int, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
	if text == "" {
		return 0, fmt.Errorf("storage: empty best score record")
	}
	v, err := strconv.ParseUint(text, 16, 31)
	if err != nil {
		return 0, fmt.Errorf("storage: corrupt best score record: %w", err)
	}
	return int(v), nil
}
