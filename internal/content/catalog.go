package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gamelog_daily/internal/model"

	"github.com/goccy/go-json"
)

//go:embed data/*.json
var embedded embed.FS

var ErrUnsupportedMode = errors.New("unsupported mode")

type table[T any] struct {
	Version int `json:"version"`
	Entries []T `json:"entries"`
}

// Catalog holds the content banks. It is built once and never modified.
type Catalog struct {
	words     table[model.WordContent]
	decks     table[model.MemoryContent]
	reactions table[model.ReactionContent]
}

// Load reads the banks from dir, or from the embedded tables when dir is empty.
func Load(dir string) (*Catalog, error) {
	if dir == "" {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			return nil, err
		}
		return LoadFS(sub)
	}
	return LoadFS(os.DirFS(dir))
}

func LoadFS(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{}

	if err := readTable(fsys, "word.json", &c.words); err != nil {
		return nil, err
	}
	if err := readTable(fsys, "memory.json", &c.decks); err != nil {
		return nil, err
	}
	if err := readTable(fsys, "reaction.json", &c.reactions); err != nil {
		return nil, err
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func readTable[T any](fsys fs.FS, name string, dst *table[T]) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read content table %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to parse content table %s: %w", name, err)
	}
	if len(dst.Entries) == 0 {
		return fmt.Errorf("content table %s is empty", name)
	}
	return nil
}

func (c *Catalog) validate() error {
	for i := range c.words.Entries {
		w := &c.words.Entries[i]
		w.Solution = strings.ToUpper(strings.TrimSpace(w.Solution))
		if w.Solution == "" {
			return fmt.Errorf("word entry %d has no solution", i)
		}
		for j := 0; j < len(w.Solution); j++ {
			if w.Solution[j] < 'A' || w.Solution[j] > 'Z' {
				return fmt.Errorf("word entry %d: solution %q must contain only letters", i, w.Solution)
			}
		}
		if w.Length == 0 {
			w.Length = len(w.Solution)
		}
		if w.Length != len(w.Solution) {
			return fmt.Errorf("word entry %d: length %d does not match solution %q", i, w.Length, w.Solution)
		}
	}

	for i, d := range c.decks.Entries {
		if d.DeckID == "" {
			return fmt.Errorf("memory entry %d has no deck id", i)
		}
		if len(d.Cards) < 2 {
			return fmt.Errorf("memory deck %s needs at least two cards", d.DeckID)
		}
	}

	for i, r := range c.reactions.Entries {
		if r.MinDelayMs <= 0 || r.MinDelayMs > r.MaxDelayMs {
			return fmt.Errorf("reaction entry %d: invalid delay bounds %d..%d", i, r.MinDelayMs, r.MaxDelayMs)
		}
	}

	return nil
}

func (c *Catalog) Version(mode model.Mode) int {
	switch mode {
	case model.ModeWord:
		return c.words.Version
	case model.ModeMemory:
		return c.decks.Version
	case model.ModeReaction:
		return c.reactions.Version
	default:
		return 0
	}
}
