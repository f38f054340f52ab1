package game

import (
	"log"
	"time"

	"doomlike/internal/config"
	"doomlike/internal/engine"
	"doomlike/internal/game/keytracker"
	"doomlike/internal/threading"

	"github.com/hajimehoshi/ebiten/v2"
)

// alertInterval is how often performance alerts are logged
const alertInterval = 5 * time.Second

// Game is the ebiten backend: it gates input ticks, resolves the indexed
// frame to RGBA and scales it to the window.
type Game struct {
	config    *config.Config
	session   *engine.Session
	threading *threading.ThreadingComponents

	gate      *FrameGate
	hud       HUD
	hudToggle keytracker.KeyStateTracker
	keys      KeyState
	now       func() time.Time

	frame     *ebiten.Image
	pixels    []byte
	dirty     bool
	lastAlert time.Time
}

// NewGame wires a session to the ebiten loop.
func NewGame(cfg *config.Config, session *engine.Session, tc *threading.ThreadingComponents) *Game {
	w, h := cfg.GetScreenWidth(), cfg.GetScreenHeight()
	return &Game{
		config:    cfg,
		session:   session,
		threading: tc,
		gate:      NewFrameGate(cfg.GetFrameInterval()),
		hud:       HUD{Visible: cfg.HUD.Visible},
		keys:      ebiten.IsKeyPressed,
		now:       time.Now,
		frame:     ebiten.NewImage(w, h),
		pixels:    make([]byte, w*h*4),
	}
}

// Update advances the world when the frame gate opens
func (g *Game) Update() error {
	if quitRequested(g.keys) {
		return ebiten.Termination
	}
	if g.hudToggle.Update(g.keys(ebiten.KeyH)) {
		g.hud.Visible = !g.hud.Visible
	}

	now := g.now()
	if g.gate.Ready(now) {
		g.session.Step(intentFromKeys(g.keys))
		g.dirty = true
	}

	if now.Sub(g.lastAlert) >= alertInterval {
		g.lastAlert = now
		for _, alert := range g.threading.CheckPerformanceAlerts() {
			log.Printf("Warning: %s (%.1f)", alert.Message, alert.Value)
		}
	}
	return nil
}

// resolveFrame converts the indexed frame into g.pixels, one row per job.
func (g *Game) resolveFrame() {
	fb := g.session.Frame
	stride := fb.Width() * 4
	g.threading.WorkerPool.ParallelFor(0, fb.Height(), func(row int) {
		fb.ResolveRow(&g.session.Palette, row, g.pixels[row*stride:(row+1)*stride])
	})
}

// Draw presents the latest frame scaled to the window
func (g *Game) Draw(screen *ebiten.Image) {
	if g.dirty {
		g.resolveFrame()
		g.frame.WritePixels(g.pixels)
		g.dirty = false
	}

	op := &ebiten.DrawImageOptions{}
	scale := float64(g.config.Display.PixelScale)
	op.GeoM.Scale(scale, scale)
	screen.DrawImage(g.frame, op)

	g.hud.Draw(screen, g.session.Player, g.threading.GetPerformanceMetrics())
}

// Layout returns the window size in pixels
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.config.GetWindowWidth(), g.config.GetWindowHeight()
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, session *engine.Session, tc *threading.ThreadingComponents) error {
	ebiten.SetWindowSize(cfg.GetWindowWidth(), cfg.GetWindowHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.Timing.TicksPerSecond > 0 {
		ebiten.SetTPS(cfg.Timing.TicksPerSecond)
	}

	if err := ebiten.RunGame(NewGame(cfg, session, tc)); err != nil {
		return err
	}
	return nil
}
