package engine

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"doomlike/internal/config"
	"doomlike/internal/graphics"
	"doomlike/internal/mathutil"
	"doomlike/internal/player"
	"doomlike/internal/render"
	"doomlike/internal/threading/monitoring"
	"doomlike/internal/world"

	xdraw "golang.org/x/image/draw"
)

// Session ties a level, the camera and a renderer together. Backends call
// Step once per gated tick and then present Frame.
type Session struct {
	Level    *world.Level
	Player   player.Player
	Trig     *mathutil.TrigTable
	Renderer *render.Renderer
	Frame    *graphics.FrameBuffer
	Palette  graphics.Palette
	Monitor  *monitoring.PerformanceMonitor

	movement  config.MovementConfig
	lastStats render.FrameStats
}

// NewSession builds a session starting at the level's start position. A
// nil monitor gets a private one.
func NewSession(cfg *config.Config, lvl *world.Level, monitor *monitoring.PerformanceMonitor) (*Session, error) {
	pal, err := graphics.PaletteFromConfig(cfg.Palette)
	if err != nil {
		return nil, fmt.Errorf("failed to build palette: %w", err)
	}
	if monitor == nil {
		monitor = monitoring.NewPerformanceMonitor()
	}

	trig := mathutil.NewTrigTable()
	return &Session{
		Level:    lvl,
		Player:   lvl.Start,
		Trig:     trig,
		Renderer: render.NewRenderer(render.SettingsFromConfig(cfg), trig),
		Frame:    graphics.NewFrameBuffer(cfg.GetScreenWidth(), cfg.GetScreenHeight()),
		Palette:  pal,
		Monitor:  monitor,
		movement: cfg.Movement,
	}, nil
}

// Step applies one tick of input and renders the resulting view.
func (s *Session) Step(in player.Intent) render.FrameStats {
	frameTimer := s.Monitor.StartFrame()
	defer frameTimer.EndFrame()

	s.Player.Apply(in, s.Trig, s.movement)
	return s.render()
}

// Render redraws the current view without moving.
func (s *Session) Render() render.FrameStats {
	frameTimer := s.Monitor.StartFrame()
	defer frameTimer.EndFrame()

	return s.render()
}

func (s *Session) render() render.FrameStats {
	renderTimer := s.Monitor.StartRender()
	stats := s.Renderer.RenderFrame(s.Player, s.Level, s.Frame)
	renderTimer.EndRender(stats)
	s.lastStats = stats
	return stats
}

// LastStats returns the counters of the latest frame.
func (s *Session) LastStats() render.FrameStats {
	return s.lastStats
}

// Image resolves the current frame to RGBA.
func (s *Session) Image() *image.RGBA {
	return s.Frame.Image(&s.Palette)
}

// WritePNG encodes the current frame, scaled by an integer factor.
func (s *Session) WritePNG(w io.Writer, scale int) error {
	img := s.Image()
	if scale > 1 {
		img = scaleNearest(img, scale)
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	return nil
}

func scaleNearest(src *image.RGBA, scale int) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}
