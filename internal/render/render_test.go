package render

import (
	"testing"

	"doomlike/internal/graphics"
	"doomlike/internal/mathutil"
	"doomlike/internal/player"
	"doomlike/internal/world"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pixelWrite struct {
	X, Y int
	C    graphics.ColorID
}

// recorder keeps every write in order and the resulting image.
type recorder struct {
	w, h   int
	writes []pixelWrite
	pix    map[[2]int]graphics.ColorID
	clears int
}

func newRecorder(s Settings) *recorder {
	return &recorder{w: s.Width, h: s.Height, pix: map[[2]int]graphics.ColorID{}}
}

func (r *recorder) Clear(c graphics.ColorID) {
	r.clears++
	r.writes = r.writes[:0]
	r.pix = map[[2]int]graphics.ColorID{}
}

func (r *recorder) SetPixel(x, y int, c graphics.ColorID) {
	r.writes = append(r.writes, pixelWrite{x, y, c})
	r.pix[[2]int{x, y}] = c
}

func (r *recorder) at(x, y int) graphics.ColorID {
	if c, ok := r.pix[[2]int{x, y}]; ok {
		return c
	}
	return graphics.Background
}

func newTestRenderer() (*Renderer, *recorder) {
	s := DefaultSettings()
	return NewRenderer(s, mathutil.NewTrigTable()), newRecorder(s)
}

// box returns a sector's walls for the rectangle [x0,x1]x[y0,y1], wound
// so that faces pointing away from the interior are the front faces.
func box(x0, y0, x1, y1 int, c graphics.ColorID) []world.Wall {
	return []world.Wall{
		{X1: x0, Y1: y0, X2: x1, Y2: y0, Color: c},
		{X1: x1, Y1: y0, X2: x1, Y2: y1, Color: c},
		{X1: x1, Y1: y1, X2: x0, Y2: y1, Color: c},
		{X1: x0, Y1: y1, X2: x0, Y2: y0, Color: c},
	}
}

func singleBox() *world.Level {
	return &world.Level{
		Sectors: []world.Sector{{
			WallStart: 0, WallEnd: 4, Floor: 0, Height: 40,
			FloorColor: graphics.Green, CeilingColor: graphics.Cyan,
		}},
		Walls: box(-16, 32, 16, 64, graphics.Yellow),
	}
}

func TestCameraRoundTripAllAngles(t *testing.T) {
	trig := mathutil.NewTrigTable()
	points := []mgl64.Vec2{{0, 0}, {32, 0}, {-17, 45}, {96, -110}, {1e4, -3e3}}

	for angle := 0; angle < 360; angle++ {
		cam := NewCamera(player.Player{X: 70, Y: -110, Z: 20, Angle: angle}, trig, 32)
		for _, p := range points {
			back := cam.ToWorld(cam.ToCamera(p))
			require.InDelta(t, p.X(), back.X(), 1e-9, "angle %d", angle)
			require.InDelta(t, p.Y(), back.Y(), 1e-9, "angle %d", angle)
		}
	}
}

func TestCameraFacesAlongAngle(t *testing.T) {
	trig := mathutil.NewTrigTable()

	cam := NewCamera(player.Player{}, trig, 32)
	assert.Equal(t, mgl64.Vec2{5, 32}, cam.ToCamera(mgl64.Vec2{5, 32}))

	// Facing 90 degrees looks down +x, so a point on +x is straight ahead.
	cam = NewCamera(player.Player{Angle: 90}, trig, 32)
	ahead := cam.ToCamera(mgl64.Vec2{50, 0})
	assert.InDelta(t, 0, ahead.X(), 1e-9)
	assert.InDelta(t, 50, ahead.Y(), 1e-9)
}

func TestCameraElevationAppliesLook(t *testing.T) {
	cam := NewCamera(player.Player{Z: 20, Look: 8}, mathutil.NewTrigTable(), 32)
	assert.Equal(t, -20.0, cam.Elevation(0, 0))
	assert.Equal(t, -12.0, cam.Elevation(0, 32))
	assert.Equal(t, 28.0, cam.Elevation(40, 32))
}

func TestClipBehindLandsOnNearPlane(t *testing.T) {
	testCases := []struct {
		name   string
		p, ref camPoint
	}{
		{"far reference", camPoint{-30, -10, 5}, camPoint{30, 30, -5}},
		{"just behind", camPoint{4, 0.999, 0}, camPoint{-4, 2, 0}},
		{"at camera", camPoint{10, 0, 0}, camPoint{10, 100, 40}},
		{"deep behind", camPoint{1e5, -1e5, 3}, camPoint{0, 1.5, 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := clipBehind(tc.p, tc.ref, 1)
			assert.Equal(t, 1.0, got.Y)
		})
	}

	got := clipBehind(camPoint{-30, -10, 10}, camPoint{30, 30, -10}, 1)
	// s = 11/40 along the segment
	assert.InDelta(t, -30+60*11.0/40, got.X, 1e-12)
	assert.InDelta(t, 10-20*11.0/40, got.Z, 1e-12)
}

func TestProjectorCentresForwardPoints(t *testing.T) {
	pr := NewProjector(DefaultSettings())
	sx, sy := pr.Project(camPoint{0, 50, 0})
	assert.Equal(t, 80.0, sx)
	assert.Equal(t, 60.0, sy)

	sx, sy = pr.Project(camPoint{16, 32, -4})
	assert.Equal(t, 180.0, sx)
	assert.Equal(t, 35.0, sy)
}

func TestSortBackToFrontIsStableDescending(t *testing.T) {
	states := []SectorState{{Depth: 50}, {Depth: 100}, {Depth: 50}, {Depth: 75}, {Depth: 100}}
	order := []int{0, 1, 2, 3, 4}
	sortBackToFront(order, states)
	assert.Equal(t, []int{1, 4, 3, 0, 2}, order)
}

func TestSectorDepth(t *testing.T) {
	cam := NewCamera(player.Player{}, mathutil.NewTrigTable(), 32)
	assert.Zero(t, sectorDepth(cam, nil))

	walls := []world.Wall{{X1: -10, Y1: 10, X2: 10, Y2: 10}, {X1: 20, Y1: 0, X2: 20, Y2: 0}}
	// midpoints (0,10) and (20,0)
	assert.Equal(t, (100.0+400.0)/2, sectorDepth(cam, walls))
}

func TestModeFor(t *testing.T) {
	sec := world.Sector{Floor: 10, Height: 30}
	assert.Equal(t, ModeRecordFloor, modeFor(9, sec))
	assert.Equal(t, ModeDirect, modeFor(10, sec))
	assert.Equal(t, ModeDirect, modeFor(40, sec))
	assert.Equal(t, ModeRecordCeiling, modeFor(41, sec))
	assert.Equal(t, "stencil-floor", (-ModeRecordFloor).String())
	assert.Equal(t, "stencil-ceiling", (-ModeRecordCeiling).String())
}

func TestDrawWallRecordModesWriteNothing(t *testing.T) {
	r, rec := newTestRenderer()
	r.surface = rec
	sec := world.Sector{FloorColor: graphics.Green, CeilingColor: graphics.Cyan}
	st := &SectorState{Mode: ModeRecordFloor, Heights: make([]int, 160)}
	for i := range st.Heights {
		st.Heights[i] = unrecorded
	}

	span := wallSpan{x1: 10, x2: 20, b1: 30, b2: 40, t1: 90, t2: 100, color: graphics.Yellow}
	r.drawWall(span, sec, st)
	assert.Empty(t, rec.writes)
	for x := 10; x < 20; x++ {
		want := int(10*(float64(x-10)+0.5)/10 + 30)
		assert.Equal(t, want, st.Heights[x], "column %d", x)
	}
	assert.Equal(t, unrecorded, st.Heights[9])
	assert.Equal(t, unrecorded, st.Heights[20])

	st.Mode = ModeRecordCeiling
	r.drawWall(span, sec, st)
	assert.Empty(t, rec.writes)
	assert.Equal(t, 90, st.Heights[10])
}

func TestDrawWallStencilSkipsUnrecordedColumns(t *testing.T) {
	r, rec := newTestRenderer()
	r.surface = rec
	sec := world.Sector{FloorColor: graphics.Green, CeilingColor: graphics.Cyan}
	st := &SectorState{Mode: ModeStencilFloor, Heights: make([]int, 160)}
	for i := range st.Heights {
		st.Heights[i] = unrecorded
	}
	st.Heights[11] = 20

	r.drawWall(wallSpan{x1: 10, x2: 12, b1: 30, b2: 30, t1: 35, t2: 35, color: graphics.Yellow}, sec, st)

	for y := 20; y < 30; y++ {
		assert.Equal(t, graphics.Green, rec.at(11, y))
		assert.Equal(t, graphics.Background, rec.at(10, y))
	}
	for y := 30; y < 35; y++ {
		assert.Equal(t, graphics.Yellow, rec.at(10, y))
		assert.Equal(t, graphics.Yellow, rec.at(11, y))
	}
}

func TestDrawWallClampsToScreen(t *testing.T) {
	r, rec := newTestRenderer()
	r.surface = rec
	st := &SectorState{Mode: ModeDirect, Heights: make([]int, 160)}

	r.drawWall(wallSpan{x1: -500, x2: 900, b1: -1e6, b2: -1e6, t1: 1e6, t2: 1e6, color: graphics.Brown}, world.Sector{}, st)

	require.NotEmpty(t, rec.writes)
	assert.Len(t, rec.writes, 158*118)
	for _, w := range rec.writes {
		assert.True(t, w.X >= 1 && w.X <= 158, "column %d", w.X)
		assert.True(t, w.Y >= 1 && w.Y <= 118, "row %d", w.Y)
	}
}

func TestRenderSingleSectorFromInside(t *testing.T) {
	r, rec := newTestRenderer()
	stats := r.RenderFrame(player.Player{Z: 20}, singleBox(), rec)

	assert.Equal(t, 1, rec.clears)
	assert.Equal(t, 1, stats.Sectors)
	assert.Equal(t, graphics.Yellow, rec.at(80, 60))
	assert.Equal(t, graphics.Yellow, rec.at(1, 1))
	assert.Equal(t, graphics.Yellow, rec.at(158, 118))
	for _, w := range rec.writes {
		assert.Equal(t, graphics.Yellow, w.C)
	}
}

func TestRenderSingleSectorCeilingAboveWall(t *testing.T) {
	r, rec := newTestRenderer()
	r.RenderFrame(player.Player{Z: 44}, singleBox(), rec)

	// near wall top edge projects to row 35, far wall top to row 47.5
	for y := 1; y < 35; y++ {
		assert.Equal(t, graphics.Yellow, rec.at(80, y), "row %d", y)
	}
	for y := 35; y < 47; y++ {
		assert.Equal(t, graphics.Cyan, rec.at(80, y), "row %d", y)
	}
	assert.Equal(t, graphics.Background, rec.at(80, 47))
	assert.Equal(t, graphics.Background, rec.at(80, 100))
}

func TestRenderCameraBelowFloorFillsFloor(t *testing.T) {
	r, rec := newTestRenderer()
	lvl := singleBox()
	p := player.Player{Z: -4}

	assert.Equal(t, ModeRecordFloor, modeFor(p.Z, lvl.Sectors[0]))
	r.RenderFrame(p, lvl, rec)

	// The record pass leaves the far wall's bottom row for the centre
	// column, and the stencil pass has flipped the mode.
	st := r.frame.States[0]
	assert.Equal(t, 72, st.Heights[80])
	assert.Equal(t, ModeRecordFloor, st.Mode, "mode is negated after each pass")

	for y := 72; y < 85; y++ {
		assert.Equal(t, graphics.Green, rec.at(80, y), "row %d", y)
	}
	for y := 85; y < 119; y++ {
		assert.Equal(t, graphics.Yellow, rec.at(80, y), "row %d", y)
	}
	assert.Equal(t, graphics.Background, rec.at(80, 71))
}

func TestRenderNearerSectorOverwritesFarther(t *testing.T) {
	walls := append(box(-16, 64, 16, 96, graphics.Cyan), box(-8, 32, 8, 40, graphics.Brown)...)
	lvl := &world.Level{
		Sectors: []world.Sector{
			{WallStart: 4, WallEnd: 8, Height: 40}, // near
			{WallStart: 0, WallEnd: 4, Height: 40}, // far
		},
		Walls: walls,
	}
	r, rec := newTestRenderer()
	r.RenderFrame(player.Player{Z: 20}, lvl, rec)

	require.Equal(t, []int{1, 0}, r.Order())
	assert.Greater(t, r.frame.States[1].Depth, r.frame.States[0].Depth)
	assert.Equal(t, graphics.Brown, rec.at(80, 60))

	firstFar, firstNear := -1, -1
	for i, w := range rec.writes {
		if w.C == graphics.Cyan && firstFar < 0 {
			firstFar = i
		}
		if w.C == graphics.Brown && firstNear < 0 {
			firstNear = i
		}
	}
	require.GreaterOrEqual(t, firstFar, 0)
	require.GreaterOrEqual(t, firstNear, 0)
	assert.Less(t, firstFar, firstNear)
}

func TestRenderSkipsWallsBehindCamera(t *testing.T) {
	lvl := &world.Level{
		Sectors: []world.Sector{{WallStart: 0, WallEnd: 4, Height: 40}},
		Walls:   box(-16, -64, 16, -32, graphics.Yellow),
	}
	r, rec := newTestRenderer()
	stats := r.RenderFrame(player.Player{Z: 20}, lvl, rec)

	assert.Empty(t, rec.writes)
	assert.Zero(t, stats.Pixels)
	assert.Equal(t, 8, stats.WallsCulled)
	assert.Zero(t, stats.WallsDrawn)
}

func TestRenderClipsWallsCrossingNearPlane(t *testing.T) {
	lvl := &world.Level{
		Sectors: []world.Sector{{WallStart: 0, WallEnd: 4, Height: 40}},
		Walls:   box(-16, -16, 16, 16, graphics.Yellow),
	}
	r, rec := newTestRenderer()
	stats := r.RenderFrame(player.Player{Z: 20}, lvl, rec)

	// Side walls cross the camera plane in both passes.
	assert.Equal(t, 4, stats.WallsClipped)
	assert.NotEmpty(t, rec.writes)
}

func TestRenderWritesStayInsideBorder(t *testing.T) {
	lvl := world.DefaultLevel()
	views := []player.Player{
		lvl.Start,
		{X: 16, Y: 16, Z: 20},
		{X: 48, Y: 48, Z: 20, Angle: 45, Look: -10},
		{X: 80, Y: -20, Z: -30, Angle: 350, Look: 12},
		{X: 48, Y: 130, Z: 90, Angle: 180, Look: 30},
		{X: 30, Y: 1, Z: 20, Angle: 271},
	}

	r, rec := newTestRenderer()
	for _, p := range views {
		stats := r.RenderFrame(p, lvl, rec)
		assert.Equal(t, len(rec.writes), stats.Pixels)
		for _, w := range rec.writes {
			if w.X < 1 || w.X > 158 || w.Y < 1 || w.Y > 118 {
				t.Fatalf("write (%d,%d) outside border for %+v", w.X, w.Y, p)
			}
		}
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	lvl := world.DefaultLevel()
	p := player.Player{X: 48, Y: -40, Z: -10, Angle: 10, Look: 5}

	r, rec := newTestRenderer()
	r.RenderFrame(p, lvl, rec)
	first := append([]pixelWrite(nil), rec.writes...)
	require.NotEmpty(t, first)

	r.RenderFrame(p, lvl, rec)
	assert.Equal(t, first, rec.writes)

	// Frames from other views in between leave no scratch state behind.
	for _, other := range []player.Player{
		lvl.Start,
		{X: 80, Y: -20, Z: -30, Angle: 350, Look: 12},
		{X: 40, Y: 90, Z: 200, Angle: 180, Look: -8},
	} {
		r.RenderFrame(other, lvl, rec)
	}
	r.RenderFrame(p, lvl, rec)
	assert.Equal(t, first, rec.writes)

	fresh, freshRec := newTestRenderer()
	fresh.RenderFrame(p, lvl, freshRec)
	assert.Equal(t, first, freshRec.writes)
}

func TestRenderDefaultLevelStart(t *testing.T) {
	lvl := world.DefaultLevel()
	r := NewRenderer(DefaultSettings(), mathutil.NewTrigTable())
	fb := graphics.NewFrameBuffer(160, 120)

	stats := r.RenderFrame(lvl.Start, lvl, fb)

	assert.Equal(t, 4, stats.Sectors)
	assert.Equal(t, 32, stats.WallsDrawn)
	assert.Equal(t, stats.Pixels, fb.Writes())
	assert.Positive(t, stats.Pixels)
}
