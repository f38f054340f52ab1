package render

import (
	"doomlike/internal/graphics"
	"doomlike/internal/mathutil"
	"doomlike/internal/world"
)

// wallSpan is one projected wall: columns x1..x2 with float edge rows at
// each end.
type wallSpan struct {
	x1, x2 int
	b1, b2 float64 // bottom edge
	t1, t2 float64 // top edge
	color  graphics.ColorID
}

// drawWall rasterizes one wall column by column into the surface, or
// records edge rows into st.Heights when the sector is in a record mode.
func (r *Renderer) drawWall(span wallSpan, sec world.Sector, st *SectorState) {
	w, h := r.settings.Width, r.settings.Height

	dyb := span.b2 - span.b1
	dyt := span.t2 - span.t1
	dx := span.x2 - span.x1
	if dx == 0 {
		dx = 1
	}
	xs := span.x1

	x1 := mathutil.Clamp(span.x1, 1, w-1)
	x2 := mathutil.Clamp(span.x2, 1, w-1)
	maxRow := float64(h - 1)

	for x := x1; x < x2; x++ {
		t := float64(x-xs) + 0.5
		bottom := int(mathutil.ClampF(dyb*t/float64(dx)+span.b1, 1, maxRow))
		top := int(mathutil.ClampF(dyt*t/float64(dx)+span.t1, 1, maxRow))

		switch st.Mode {
		case ModeRecordFloor:
			st.Heights[x] = bottom
			continue
		case ModeRecordCeiling:
			st.Heights[x] = top
			continue
		case ModeStencilFloor:
			if rec := st.Heights[x]; rec != unrecorded {
				for y := rec; y < bottom; y++ {
					r.plot(x, y, sec.FloorColor)
				}
			}
		case ModeStencilCeiling:
			if rec := st.Heights[x]; rec != unrecorded {
				for y := top; y < rec; y++ {
					r.plot(x, y, sec.CeilingColor)
				}
			}
		}

		for y := bottom; y < top; y++ {
			r.plot(x, y, span.color)
		}
	}
}

func (r *Renderer) plot(x, y int, c graphics.ColorID) {
	r.surface.SetPixel(x, y, c)
	r.stats.Pixels++
}
