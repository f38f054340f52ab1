package world

import (
	"errors"

	"doomlike/internal/graphics"
	"doomlike/internal/player"
)

// ErrInvalidLevel is wrapped by every level validation failure
var ErrInvalidLevel = errors.New("invalid level")

// Wall is a vertical quad between two floor points. Which side faces the
// camera decides whether it is drawn in the front or back pass.
type Wall struct {
	X1, Y1 int
	X2, Y2 int
	Color  graphics.ColorID
}

// Sector is a convex room: a contiguous run of walls with a flat floor
// and a flat ceiling Height units above it.
type Sector struct {
	WallStart    int // first wall index, inclusive
	WallEnd      int // last wall index, exclusive
	Floor        int
	Height       int
	FloorColor   graphics.ColorID
	CeilingColor graphics.ColorID
}

// Ceiling returns the absolute ceiling height.
func (s Sector) Ceiling() int {
	return s.Floor + s.Height
}

// WallCount returns the number of walls in the sector.
func (s Sector) WallCount() int {
	return s.WallEnd - s.WallStart
}

// Level is the read-only geometry of one map plus the camera start.
type Level struct {
	Name    string
	Sectors []Sector
	Walls   []Wall
	Start   player.Player
}

// SectorWalls returns the walls of sector i. The slice aliases the level
// and must not be modified.
func (l *Level) SectorWalls(i int) []Wall {
	s := l.Sectors[i]
	return l.Walls[s.WallStart:s.WallEnd]
}

// Bounds returns the bounding box of all wall endpoints.
func (l *Level) Bounds() (minX, minY, maxX, maxY int) {
	if len(l.Walls) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = l.Walls[0].X1, l.Walls[0].Y1
	maxX, maxY = minX, minY
	for _, w := range l.Walls {
		for _, p := range [2][2]int{{w.X1, w.Y1}, {w.X2, w.Y2}} {
			minX = min(minX, p[0])
			maxX = max(maxX, p[0])
			minY = min(minY, p[1])
			maxY = max(maxY, p[1])
		}
	}
	return minX, minY, maxX, maxY
}
