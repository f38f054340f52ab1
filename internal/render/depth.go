package render

import (
	"sort"

	"doomlike/internal/world"

	"github.com/go-gl/mathgl/mgl64"
)

// sectorDepth is the mean squared camera-space distance to the midpoints
// of the sector's walls.
func sectorDepth(cam Camera, walls []world.Wall) float64 {
	if len(walls) == 0 {
		return 0
	}
	var sum float64
	for _, w := range walls {
		a := cam.ToCamera(mgl64.Vec2{float64(w.X1), float64(w.Y1)})
		b := cam.ToCamera(mgl64.Vec2{float64(w.X2), float64(w.Y2)})
		mid := a.Add(b).Mul(0.5)
		sum += mid.Dot(mid)
	}
	return sum / float64(len(walls))
}

// sortBackToFront orders sector indices farthest first. Equal depths keep
// level order.
func sortBackToFront(order []int, states []SectorState) {
	sort.SliceStable(order, func(i, j int) bool {
		return states[order[i]].Depth > states[order[j]].Depth
	})
}
