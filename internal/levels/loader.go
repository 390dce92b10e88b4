package levels

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Loader reads level packs from a directory tree.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively loads every .yaml and .yml file under Root into one
// pack. Any unreadable or invalid file fails the whole load.
func (l *Loader) LoadAll() (*Pack, error) {
	var entries []Entry

	err := filepath.WalkDir(l.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isPackFile(path) {
			return nil
		}

		fileEntries, err := LoadFile(path)
		if err != nil {
			return err
		}
		entries = append(entries, fileEntries...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	return NewPack(entries)
}

// LoadFile parses a single pack file.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	entries, err := ParsePack(data)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	for i := range entries {
		entries[i].FilePath = path
	}
	return entries, nil
}

func isPackFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
