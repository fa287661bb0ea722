// Package level provides platformer level definitions, parsing and
// loading from the built-in pack and the user's level directory.
package level

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Tile is a single cell of a level grid.
type Tile byte

const (
	TileEmpty Tile = '.'
	TileSolid Tile = '#'
	TileCoin  Tile = 'o'
	TileSpike Tile = '^'
	TileSpawn Tile = 'P'
	TileGoal  Tile = 'G'
)

// Palette lists the tiles in editor cycling order.
var Palette = []Tile{TileEmpty, TileSolid, TileCoin, TileSpike, TileGoal, TileSpawn}

// ParseTile converts a level file rune into a tile. Spaces are empty.
func ParseTile(r rune) (Tile, bool) {
	switch r {
	case ' ', '.':
		return TileEmpty, true
	case '#', 'o', '^', 'P', 'G':
		return Tile(r), true
	default:
		return 0, false
	}
}

// Solid reports whether the player collides with the tile.
func (t Tile) Solid() bool {
	return t == TileSolid
}

var (
	// ErrNotFound is returned when no level has the requested ID.
	ErrNotFound = errors.New("level not found")

	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("invalid level")
)

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Level is a rectangular tile grid with metadata.
type Level struct {
	ID       string
	Name     string
	Order    int // sort key in menus; ties break by ID
	Width    int
	Height   int
	Tiles    []Tile // row-major
	Metadata map[string]string
	Source   string // file path, or "builtin"
}

// New creates an empty level with a solid floor and a spawn point.
func New(id, name string, width, height int) Level {
	l := Level{
		ID:     id,
		Name:   name,
		Width:  width,
		Height: height,
		Tiles:  make([]Tile, width*height),
	}
	for i := range l.Tiles {
		l.Tiles[i] = TileEmpty
	}
	for x := range width {
		l.Set(x, height-1, TileSolid)
	}
	if width > 2 && height > 2 {
		l.Set(1, height-2, TileSpawn)
		l.Set(width-2, height-2, TileGoal)
	}
	return l
}

// InBounds reports whether (x, y) lies inside the grid.
func (l *Level) InBounds(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height
}

// At returns the tile at (x, y). Out-of-range positions are empty.
func (l *Level) At(x, y int) Tile {
	if !l.InBounds(x, y) {
		return TileEmpty
	}
	return l.Tiles[y*l.Width+x]
}

// Set changes the tile at (x, y). Out-of-range positions are ignored.
func (l *Level) Set(x, y int, t Tile) {
	if !l.InBounds(x, y) {
		return
	}
	l.Tiles[y*l.Width+x] = t
}

// Spawn returns the spawn tile position, or (-1, -1) if there is none.
func (l *Level) Spawn() (int, int) {
	for i, t := range l.Tiles {
		if t == TileSpawn {
			return i % l.Width, i / l.Width
		}
	}
	return -1, -1
}

// Count returns how many tiles of kind t the level contains.
func (l *Level) Count(t Tile) int {
	n := 0
	for _, v := range l.Tiles {
		if v == t {
			n++
		}
	}
	return n
}

// Rows returns the grid as one string per row.
func (l *Level) Rows() []string {
	rows := make([]string, l.Height)
	for y := range l.Height {
		var sb strings.Builder
		sb.Grow(l.Width)
		for _, t := range l.Tiles[y*l.Width : (y+1)*l.Width] {
			sb.WriteByte(byte(t))
		}
		rows[y] = sb.String()
	}
	return rows
}

// Clone returns a deep copy.
func (l Level) Clone() Level {
	l.Tiles = append([]Tile(nil), l.Tiles...)
	if l.Metadata != nil {
		meta := make(map[string]string, len(l.Metadata))
		for k, v := range l.Metadata {
			meta[k] = v
		}
		l.Metadata = meta
	}
	return l
}

// Title returns the display name, falling back to the ID.
func (l *Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// Validate checks that the level is playable.
func (l *Level) Validate() error {
	if !idPattern.MatchString(l.ID) {
		return fmt.Errorf("%w: id %q must be lower-case letters, digits, '-' or '_'", ErrInvalid, l.ID)
	}
	if l.Width < 2 || l.Height < 2 {
		return fmt.Errorf("%w: %s is %dx%d, expected at least 2x2", ErrInvalid, l.ID, l.Width, l.Height)
	}
	if len(l.Tiles) != l.Width*l.Height {
		return fmt.Errorf("%w: %s has %d tiles, expected %d", ErrInvalid, l.ID, len(l.Tiles), l.Width*l.Height)
	}
	if n := l.Count(TileSpawn); n != 1 {
		return fmt.Errorf("%w: %s has %d spawn points, expected 1", ErrInvalid, l.ID, n)
	}
	if l.Count(TileGoal) == 0 {
		return fmt.Errorf("%w: %s has no goal", ErrInvalid, l.ID)
	}
	return nil
}
