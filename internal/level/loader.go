package level

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed levels/*.yaml
var builtinFS embed.FS

// Builtin returns the embedded level pack.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtinFS, "levels")
	if err != nil {
		panic(err) // embedded layout is fixed at build time
	}
	return sub
}

// Loader reads levels from a read-only pack and a writable user directory.
// User levels shadow pack levels with the same ID.
type Loader struct {
	pack fs.FS
	dir  string
}

// NewLoader creates a loader over the built-in pack and dir. An empty dir
// disables user levels and saving.
func NewLoader(dir string) *Loader {
	return &Loader{pack: Builtin(), dir: dir}
}

// NewLoaderFS creates a loader over an arbitrary pack.
func NewLoaderFS(pack fs.FS, dir string) *Loader {
	return &Loader{pack: pack, dir: dir}
}

// Dir returns the user level directory.
func (l *Loader) Dir() string {
	return l.dir
}

// List loads every level, sorted by Order then ID. Invalid files are
// skipped.
func (l *Loader) List() ([]Level, error) {
	byID := make(map[string]Level)

	if l.pack != nil {
		if err := loadAll(l.pack, "builtin", byID); err != nil {
			return nil, err
		}
	}
	if l.dir != "" {
		if _, err := os.Stat(l.dir); err == nil {
			if err := loadAll(os.DirFS(l.dir), l.dir, byID); err != nil {
				return nil, err
			}
		}
	}

	levels := make([]Level, 0, len(byID))
	for _, lvl := range byID {
		levels = append(levels, lvl)
	}
	sort.Slice(levels, func(i, j int) bool {
		if levels[i].Order != levels[j].Order {
			return levels[i].Order < levels[j].Order
		}
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// Load returns the level with the given ID.
func (l *Loader) Load(id string) (Level, error) {
	levels, err := l.List()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Save validates lvl and writes it to the user directory as <id>.yaml.
func (l *Loader) Save(lvl Level) (string, error) {
	if l.dir == "" {
		return "", errors.New("level: no user level directory")
	}
	if err := lvl.Validate(); err != nil {
		return "", err
	}

	data, err := Marshal(lvl)
	if err != nil {
		return "", fmt.Errorf("level: encode %s: %w", lvl.ID, err)
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("level: create directory: %w", err)
	}

	path := filepath.Join(l.dir, lvl.ID+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("level: write %s: %w", path, err)
	}
	return path, nil
}

func loadAll(fsys fs.FS, source string, into map[string]Level) error {
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isLevelFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil
		}
		lvl, err := Parse(data)
		if err != nil {
			// Skip invalid files
			return nil
		}
		if source == "builtin" {
			lvl.Source = source
		} else {
			lvl.Source = filepath.Join(source, filepath.FromSlash(path))
		}
		into[lvl.ID] = lvl
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", source, err)
	}
	return nil
}

func isLevelFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
