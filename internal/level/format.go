package level

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlLevel is the on-disk level format. Tiles is a block of rows, one
// per line.
type yamlLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Order    int               `yaml:"order,omitempty"`
	Tiles    string            `yaml:"tiles"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// Parse decodes and validates a YAML level.
func Parse(data []byte) (Level, error) {
	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	rows := splitRows(yl.Tiles)
	if len(rows) == 0 {
		return Level{}, fmt.Errorf("%w: %s has no tiles", ErrInvalid, yl.ID)
	}

	lvl := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Order:    yl.Order,
		Width:    len([]rune(rows[0])),
		Height:   len(rows),
		Metadata: yl.Metadata,
	}
	lvl.Tiles = make([]Tile, 0, lvl.Width*lvl.Height)

	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != lvl.Width {
			return Level{}, fmt.Errorf("%w: %s row %d is %d wide, expected %d",
				ErrInvalid, yl.ID, y, len(runes), lvl.Width)
		}
		for x, r := range runes {
			t, ok := ParseTile(r)
			if !ok {
				return Level{}, fmt.Errorf("%w: %s has unknown tile %q at %d,%d", ErrInvalid, yl.ID, r, x, y)
			}
			lvl.Tiles = append(lvl.Tiles, t)
		}
	}

	if err := lvl.Validate(); err != nil {
		return Level{}, err
	}
	return lvl, nil
}

// Marshal encodes a level in the YAML format read by Parse.
func Marshal(l Level) ([]byte, error) {
	yl := yamlLevel{
		ID:       l.ID,
		Name:     l.Name,
		Order:    l.Order,
		Tiles:    strings.Join(l.Rows(), "\n") + "\n",
		Metadata: l.Metadata,
	}
	data, err := yaml.Marshal(&yl)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// splitRows breaks a tile block into rows, dropping trailing blank lines
// and carriage returns.
func splitRows(block string) []string {
	lines := strings.Split(strings.ReplaceAll(block, "\r", ""), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
