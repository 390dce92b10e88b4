// Package levels loads named level packs. A pack file is a stream of YAML
// documents, each holding one level:
//
//	id: "01"
//	name: First Push
//	map: |
//	  W W W W W W
//	  W P . RB RS W
//	  W W W W W W
package levels

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/plus3/boxpush/internal/sokoban"
)

//go:embed packs/default.yaml
var defaultPack []byte

var (
	ErrMissingID   = errors.New("level has no id")
	ErrDuplicateID = errors.New("duplicate level id")
	ErrNotFound    = errors.New("level not found")
)

// yamlLevel is the on-disk form of one level document.
type yamlLevel struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Map  string `yaml:"map"`
}

// Entry is a parsed level with its pack metadata.
type Entry struct {
	ID       string
	Name     string
	Level    *sokoban.Level
	FilePath string
}

// Title returns the name, or the id when the level is unnamed.
func (e Entry) Title() string {
	if e.Name == "" {
		return e.ID
	}
	return e.Name
}

// Pack is an ordered set of levels with unique ids.
type Pack struct {
	entries []Entry
}

// ParsePack decodes every YAML document in data. Each map is parsed eagerly,
// so a pack never holds a level that would fail to spawn.
func ParsePack(data []byte) ([]Entry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var entries []Entry
	for doc := 0; ; doc++ {
		var yl yamlLevel
		err := dec.Decode(&yl)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("yaml document %d: %w", doc, err)
		}

		id := strings.TrimSpace(yl.ID)
		if id == "" {
			return nil, fmt.Errorf("yaml document %d: %w", doc, ErrMissingID)
		}

		level, err := sokoban.ParseLevel(yl.Map)
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", id, err)
		}

		entries = append(entries, Entry{ID: id, Name: yl.Name, Level: level})
	}
	return entries, nil
}

// NewPack sorts entries by id and rejects duplicates.
func NewPack(entries []Entry) (*Pack, error) {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		return strings.Compare(a.ID, b.ID)
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].ID == sorted[i-1].ID {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, sorted[i].ID)
		}
	}
	return &Pack{entries: sorted}, nil
}

// Default returns the embedded pack.
func Default() *Pack {
	entries, err := ParsePack(defaultPack)
	if err != nil {
		panic("embedded level pack: " + err.Error())
	}
	pack, err := NewPack(entries)
	if err != nil {
		panic("embedded level pack: " + err.Error())
	}
	return pack
}

// Entries returns the levels in id order.
func (p *Pack) Entries() []Entry {
	return slices.Clone(p.entries)
}

// Len returns the number of levels.
func (p *Pack) Len() int {
	return len(p.entries)
}

// IDs returns all level ids in sorted order.
func (p *Pack) IDs() []string {
	ids := make([]string, len(p.entries))
	for i, e := range p.entries {
		ids[i] = e.ID
	}
	return ids
}

// ByID looks up a level by id.
func (p *Pack) ByID(id string) (Entry, error) {
	i, found := slices.BinarySearchFunc(p.entries, id, func(e Entry, id string) int {
		return strings.Compare(e.ID, id)
	})
	if !found {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p.entries[i], nil
}

// First returns the lowest id level. ok is false for an empty pack.
func (p *Pack) First() (Entry, bool) {
	if len(p.entries) == 0 {
		return Entry{}, false
	}
	return p.entries[0], true
}
