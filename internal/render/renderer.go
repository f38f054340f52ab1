package render

import (
	"doomlike/internal/graphics"
	"doomlike/internal/mathutil"
	"doomlike/internal/player"
	"doomlike/internal/world"

	"github.com/go-gl/mathgl/mgl64"
)

// Surface receives the pixels of a frame. y = 0 is the bottom row.
type Surface interface {
	Clear(c graphics.ColorID)
	SetPixel(x, y int, c graphics.ColorID)
}

// FrameStats summarises one RenderFrame call. Wall counters are per pass,
// so every wall is counted twice per frame.
type FrameStats struct {
	Sectors      int
	WallsDrawn   int
	WallsCulled  int
	WallsClipped int
	Pixels       int
}

// Renderer draws sector levels. It keeps its scratch frame between calls
// to avoid reallocating and is not safe for concurrent use.
type Renderer struct {
	settings Settings
	trig     *mathutil.TrigTable
	proj     Projector
	frame    Frame

	surface Surface
	stats   FrameStats
}

func NewRenderer(settings Settings, trig *mathutil.TrigTable) *Renderer {
	return &Renderer{
		settings: settings,
		trig:     trig,
		proj:     NewProjector(settings),
	}
}

// Order returns the sector draw order of the last frame.
func (r *Renderer) Order() []int {
	return append([]int(nil), r.frame.Order...)
}

// RenderFrame clears the surface to the background colour and draws every
// sector of lvl from the viewpoint of p, farthest sector first.
func (r *Renderer) RenderFrame(p player.Player, lvl *world.Level, s Surface) FrameStats {
	r.surface = s
	r.stats = FrameStats{}
	defer func() { r.surface = nil }()

	s.Clear(graphics.Background)

	cam := NewCamera(p, r.trig, r.settings.LookScale)
	r.frame.reset(len(lvl.Sectors), r.settings.Width)

	for i := range lvl.Sectors {
		r.frame.States[i].Depth = sectorDepth(cam, lvl.SectorWalls(i))
	}
	sortBackToFront(r.frame.Order, r.frame.States)

	for _, si := range r.frame.Order {
		r.drawSector(cam, p.Z, lvl.Sectors[si], lvl.SectorWalls(si), &r.frame.States[si])
		r.stats.Sectors++
	}
	return r.stats
}

// drawSector runs the two passes: back faces first (walls reversed), which
// only record edge rows when the camera is outside the sector's vertical
// range, then front faces, which fill floor or ceiling up to the recorded
// rows and draw the walls.
func (r *Renderer) drawSector(cam Camera, camZ int, sec world.Sector, walls []world.Wall, st *SectorState) {
	st.Mode = modeFor(camZ, sec)

	for pass := 0; pass < 2; pass++ {
		for _, w := range walls {
			a := mgl64.Vec2{float64(w.X1), float64(w.Y1)}
			b := mgl64.Vec2{float64(w.X2), float64(w.Y2)}
			if pass == 0 {
				a, b = b, a
			}
			if span, ok := r.projectWall(cam, sec, a, b, w.Color); ok {
				r.drawWall(span, sec, st)
				r.stats.WallsDrawn++
			}
		}
		st.Mode = -st.Mode
	}
}

// projectWall transforms, clips and projects the four corners of a wall.
// ok is false when the whole wall is behind the near plane.
func (r *Renderer) projectWall(cam Camera, sec world.Sector, a, b mgl64.Vec2, c graphics.ColorID) (wallSpan, bool) {
	near := r.settings.NearPlane
	ca, cb := cam.ToCamera(a), cam.ToCamera(b)

	if ca.Y() < near && cb.Y() < near {
		r.stats.WallsCulled++
		return wallSpan{}, false
	}

	za := cam.Elevation(float64(sec.Floor), ca.Y())
	zb := cam.Elevation(float64(sec.Floor), cb.Y())
	height := float64(sec.Height)

	bl := camPoint{ca.X(), ca.Y(), za}
	br := camPoint{cb.X(), cb.Y(), zb}
	tl := camPoint{ca.X(), ca.Y(), za + height}
	tr := camPoint{cb.X(), cb.Y(), zb + height}

	clipped := false
	if bl.Y < near {
		bl = clipBehind(bl, br, near)
		tl = clipBehind(tl, tr, near)
		clipped = true
	}
	if br.Y < near {
		br = clipBehind(br, bl, near)
		tr = clipBehind(tr, tl, near)
		clipped = true
	}
	if clipped {
		r.stats.WallsClipped++
	}

	sx1, sb1 := r.proj.Project(bl)
	sx2, sb2 := r.proj.Project(br)
	_, st1 := r.proj.Project(tl)
	_, st2 := r.proj.Project(tr)

	return wallSpan{
		x1: column(sx1), x2: column(sx2),
		b1: sb1, b2: sb2,
		t1: st1, t2: st2,
		color: c,
	}, true
}

// column truncates a projected x. Points clipped right onto the near
// plane can land far off screen; they are bounded so the int conversion
// stays defined.
func column(sx float64) int {
	return int(mathutil.ClampF(sx, -maxColumn, maxColumn))
}

const maxColumn = 1 << 24
