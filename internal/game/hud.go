package game

import (
	"fmt"
	"image/color"

	"doomlike/internal/player"
	"doomlike/internal/threading/monitoring"

	"github.com/hajimehoshi/ebiten/v2"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	hudText   = color.RGBA{255, 255, 255, 255}
	hudShadow = color.RGBA{0, 0, 0, 160}
)

// HUD draws the debug overlay in window pixels.
type HUD struct {
	Visible bool
}

func hudLines(p player.Player, m monitoring.FrameMetrics) []string {
	s := m.LastFrame
	return []string{
		fmt.Sprintf("FPS %.1f  render %s", m.FramesPerSecond, m.RenderTime),
		fmt.Sprintf("pos %d,%d,%d  angle %d  look %d", p.X, p.Y, p.Z, p.Angle, p.Look),
		fmt.Sprintf("sectors %d  walls %d  culled %d  clipped %d", s.Sectors, s.WallsDrawn, s.WallsCulled, s.WallsClipped),
		fmt.Sprintf("pixels %d", s.Pixels),
	}
}

// Draw renders the overlay in the top-left corner.
func (h *HUD) Draw(screen *ebiten.Image, p player.Player, m monitoring.FrameMetrics) {
	if !h.Visible {
		return
	}
	face := basicfont.Face7x13
	lines := hudLines(p, m)

	lineHeight := face.Metrics().Height.Ceil()
	vector.DrawFilledRect(screen, 4, 4, 330, float32(len(lines)*lineHeight+8), hudShadow, false)
	for i, line := range lines {
		ebitext.Draw(screen, line, face, 8, 8+face.Ascent+i*lineHeight, hudText)
	}
}
