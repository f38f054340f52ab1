package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"doomlike/internal/config"
	"doomlike/internal/graphics"
	"doomlike/internal/mathutil"
	"doomlike/internal/world"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	windowWidth  = 1000
	windowHeight = 700
	sidebarWidth = 260
	padding      = 16
)

type viewer struct {
	level    *world.Level
	palette  graphics.Palette
	trig     *mathutil.TrigTable
	selected int // highlighted sector, -1 for none
}

func main() {
	ensureRuntimeCWD()

	cfg := config.MustLoadConfig("config.yaml")

	levelPath := flag.String("level", cfg.Level.File, "level file to show")
	flag.Parse()

	lvl, err := world.LoadLevelOrDefault(*levelPath)
	if err != nil {
		log.Fatal(err)
	}
	pal, err := graphics.PaletteFromConfig(cfg.Palette)
	if err != nil {
		log.Printf("Warning: %v, using built-in palette", err)
		pal = graphics.DefaultPalette()
	}

	v := &viewer{
		level:    lvl,
		palette:  pal,
		trig:     mathutil.NewTrigTable(),
		selected: -1,
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle(fmt.Sprintf("Doomlike Map Viewer - %s", lvl.Name))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	n := len(v.level.Sectors)
	if n == 0 {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		v.selected = (v.selected + 1) % n
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		v.selected--
		if v.selected < 0 {
			v.selected = n - 1
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.selected = -1
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.palette.RGBA(graphics.Background))

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	mapW := screenW - sidebarWidth - padding*3
	mapH := screenH - padding*2

	minX, minY, maxX, maxY := v.level.Bounds()
	start := v.level.Start
	minX, maxX = min(minX, start.X), max(maxX, start.X)
	minY, maxY = min(minY, start.Y), max(maxY, start.Y)
	m := fitTransform(minX, minY, maxX, maxY, padding, padding, mapW, mapH)

	for si := range v.level.Sectors {
		width := float32(2)
		if si == v.selected {
			width = 5
		}
		for _, w := range v.level.SectorWalls(si) {
			a := apply(m, float64(w.X1), float64(w.Y1))
			b := apply(m, float64(w.X2), float64(w.Y2))
			vector.StrokeLine(screen, float32(a.X()), float32(a.Y()), float32(b.X()), float32(b.Y()), width, v.palette.RGBA(w.Color), true)
		}
	}

	v.drawStart(screen, m)
	v.drawSidebar(screen, screenW-sidebarWidth-padding, padding)
}

// drawStart marks the camera start and its facing direction.
func (v *viewer) drawStart(screen *ebiten.Image, m mgl64.Mat3) {
	s := v.level.Start
	p := apply(m, float64(s.X), float64(s.Y))
	dir := mgl64.Vec2{v.trig.Sin(s.Angle), v.trig.Cos(s.Angle)}.Mul(12)
	tip := apply(m, float64(s.X)+dir.X(), float64(s.Y)+dir.Y())

	white := color.RGBA{255, 255, 255, 255}
	vector.DrawFilledCircle(screen, float32(p.X()), float32(p.Y()), 5, white, true)
	vector.StrokeLine(screen, float32(p.X()), float32(p.Y()), float32(tip.X()), float32(tip.Y()), 2, white, true)
}

func (v *viewer) drawSidebar(screen *ebiten.Image, x, y int) {
	vector.DrawFilledRect(screen, float32(x), float32(y), sidebarWidth, float32(windowHeight-padding*2), color.RGBA{15, 15, 22, 220}, false)

	lines := sidebarLines(v.level, v.selected)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x+8, y+8+i*14)
	}
}

func sidebarLines(lvl *world.Level, selected int) []string {
	s := lvl.Start
	lines := []string{
		lvl.Name,
		fmt.Sprintf("%d sectors, %d walls", len(lvl.Sectors), len(lvl.Walls)),
		fmt.Sprintf("start %d,%d,%d angle %d", s.X, s.Y, s.Z, s.Angle),
		"",
		"<-/-> select sector, space clears",
		"",
	}
	for i, sec := range lvl.Sectors {
		marker := "  "
		if i == selected {
			marker = "> "
		}
		lines = append(lines, fmt.Sprintf("%s#%d walls %d-%d z %d..%d %s/%s",
			marker, i, sec.WallStart, sec.WallEnd-1, sec.Floor, sec.Ceiling(),
			sec.FloorColor, sec.CeilingColor))
	}
	return lines
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

// fitTransform maps the world box onto the panel at (x, y, w, h),
// keeping the aspect ratio and pointing world +y up the screen.
func fitTransform(minX, minY, maxX, maxY, x, y, w, h int) mgl64.Mat3 {
	spanX := float64(max(1, maxX-minX))
	spanY := float64(max(1, maxY-minY))
	scale := min(float64(w)/spanX, float64(h)/spanY)

	offX := float64(x) + (float64(w)-spanX*scale)/2
	offY := float64(y) + (float64(h)+spanY*scale)/2

	return mgl64.Translate2D(offX, offY).
		Mul3(mgl64.Scale2D(scale, -scale)).
		Mul3(mgl64.Translate2D(-float64(minX), -float64(minY)))
}

func apply(m mgl64.Mat3, x, y float64) mgl64.Vec2 {
	return m.Mul3x1(mgl64.Vec3{x, y, 1}).Vec2()
}

func ensureRuntimeCWD() {
	if _, err := os.Stat("config.yaml"); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	_ = os.Chdir(filepath.Dir(exe))
}
