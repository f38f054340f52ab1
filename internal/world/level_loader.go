package world

import (
	"errors"
	"fmt"
	"log"
	"os"

	"doomlike/internal/graphics"
	"doomlike/internal/player"

	"gopkg.in/yaml.v3"
)

// levelFile mirrors the on-disk format. Sectors are
// [wall_start, wall_end, floor_z, ceiling_z, floor_color, ceiling_color]
// and walls are [x1, y1, x2, y2, color]; the ceiling is absolute on disk.
type levelFile struct {
	Name    string        `yaml:"name"`
	Start   player.Player `yaml:"start"`
	Sectors [][]int       `yaml:"sectors"`
	Walls   [][]int       `yaml:"walls"`
}

// ParseLevel decodes and validates a level document.
func ParseLevel(data []byte) (*Level, error) {
	var lf levelFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to parse level: %w", err)
	}

	lvl := &Level{
		Name:    lf.Name,
		Start:   lf.Start,
		Sectors: make([]Sector, 0, len(lf.Sectors)),
		Walls:   make([]Wall, 0, len(lf.Walls)),
	}

	for i, row := range lf.Walls {
		if len(row) != 5 {
			return nil, fmt.Errorf("%w: wall %d has %d values, want 5", ErrInvalidLevel, i, len(row))
		}
		c, err := colorID(row[4])
		if err != nil {
			return nil, fmt.Errorf("wall %d: %w", i, err)
		}
		lvl.Walls = append(lvl.Walls, Wall{X1: row[0], Y1: row[1], X2: row[2], Y2: row[3], Color: c})
	}

	for i, row := range lf.Sectors {
		if len(row) != 6 {
			return nil, fmt.Errorf("%w: sector %d has %d values, want 6", ErrInvalidLevel, i, len(row))
		}
		fc, err := colorID(row[4])
		if err != nil {
			return nil, fmt.Errorf("sector %d: %w", i, err)
		}
		cc, err := colorID(row[5])
		if err != nil {
			return nil, fmt.Errorf("sector %d: %w", i, err)
		}
		lvl.Sectors = append(lvl.Sectors, Sector{
			WallStart:    row[0],
			WallEnd:      row[1],
			Floor:        row[2],
			Height:       row[3] - row[2],
			FloorColor:   fc,
			CeilingColor: cc,
		})
	}

	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return lvl, nil
}

// LoadLevel reads a level file from disk.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level file %s: %w", path, err)
	}
	lvl, err := ParseLevel(data)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return lvl, nil
}

// LoadLevelOrDefault falls back to DefaultLevel when the file is missing.
// Any other failure is returned.
func LoadLevelOrDefault(path string) (*Level, error) {
	lvl, err := LoadLevel(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: level file %s not found, using built-in level", path)
		return DefaultLevel(), nil
	}
	return lvl, err
}

func colorID(v int) (graphics.ColorID, error) {
	if v < 0 || v >= graphics.NumColors {
		return 0, fmt.Errorf("%w: unknown color index %d", ErrInvalidLevel, v)
	}
	return graphics.ColorID(v), nil
}
