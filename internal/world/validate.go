package world

import (
	"fmt"
	"sort"
)

// Validate checks that the sector wall ranges partition the wall list
// and that every height and colour is usable by the renderer.
func (l *Level) Validate() error {
	for i, w := range l.Walls {
		if !w.Color.Valid() {
			return fmt.Errorf("%w: wall %d has unknown color %d", ErrInvalidLevel, i, w.Color)
		}
	}

	order := make([]int, len(l.Sectors))
	for i, s := range l.Sectors {
		if s.WallStart < 0 || s.WallEnd > len(l.Walls) {
			return fmt.Errorf("%w: sector %d walls [%d,%d) out of range 0..%d", ErrInvalidLevel, i, s.WallStart, s.WallEnd, len(l.Walls))
		}
		if s.WallEnd < s.WallStart {
			return fmt.Errorf("%w: sector %d has inverted wall range [%d,%d)", ErrInvalidLevel, i, s.WallStart, s.WallEnd)
		}
		if s.Height < 0 {
			return fmt.Errorf("%w: sector %d ceiling is below its floor", ErrInvalidLevel, i)
		}
		if !s.FloorColor.Valid() || !s.CeilingColor.Valid() {
			return fmt.Errorf("%w: sector %d has unknown surface color", ErrInvalidLevel, i)
		}
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return l.Sectors[order[a]].WallStart < l.Sectors[order[b]].WallStart
	})
	next := 0
	for _, i := range order {
		s := l.Sectors[i]
		if s.WallStart != next {
			if s.WallStart < next {
				return fmt.Errorf("%w: sector %d walls [%d,%d) overlap another sector", ErrInvalidLevel, i, s.WallStart, s.WallEnd)
			}
			return fmt.Errorf("%w: walls [%d,%d) belong to no sector", ErrInvalidLevel, next, s.WallStart)
		}
		next = s.WallEnd
	}
	if next != len(l.Walls) {
		return fmt.Errorf("%w: walls [%d,%d) belong to no sector", ErrInvalidLevel, next, len(l.Walls))
	}
	return nil
}
