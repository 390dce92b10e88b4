package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/plus3/boxpush/internal/levels"
	"github.com/plus3/boxpush/internal/sokoban"
)

// loadPack returns the pack under --levels, or the embedded one.
func loadPack() (*levels.Pack, error) {
	if flagLevelsDir == "" {
		return levels.Default(), nil
	}
	return levels.NewLoader(flagLevelsDir).LoadAll()
}

// resolveLevel picks the level to run. A file wins over the pack; a YAML
// file is read as a pack, anything else as raw level text. Without an id the
// first level of the pack is used.
func resolveLevel(file, id string) (levels.Entry, error) {
	if file != "" {
		if isPackFile(file) {
			entries, err := levels.LoadFile(file)
			if err != nil {
				return levels.Entry{}, err
			}
			pack, err := levels.NewPack(entries)
			if err != nil {
				return levels.Entry{}, err
			}
			return pickLevel(pack, id)
		}
		return loadRawLevel(file)
	}

	pack, err := loadPack()
	if err != nil {
		return levels.Entry{}, err
	}
	return pickLevel(pack, id)
}

func pickLevel(pack *levels.Pack, id string) (levels.Entry, error) {
	if id != "" {
		return pack.ByID(id)
	}
	first, ok := pack.First()
	if !ok {
		return levels.Entry{}, fmt.Errorf("%w: pack is empty", levels.ErrNotFound)
	}
	return first, nil
}

func loadRawLevel(path string) (levels.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return levels.Entry{}, fmt.Errorf("reading level %s: %w", path, err)
	}

	level, err := sokoban.ParseLevel(string(data))
	if err != nil {
		return levels.Entry{}, fmt.Errorf("parsing level %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return levels.Entry{ID: name, Name: name, Level: level, FilePath: path}, nil
}

func isPackFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
