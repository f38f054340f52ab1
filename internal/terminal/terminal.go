// Package terminal presents frames in a text terminal using half-block
// characters, two frame rows per cell.
package terminal

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"
	"unicode"

	"doomlike/internal/config"
	"doomlike/internal/engine"
	"doomlike/internal/graphics"
	"doomlike/internal/player"

	"github.com/gdamore/tcell/v2"
)

const halfBlock = '▀'

// Backend drives a session from terminal key events. Terminals report key
// presses but not releases, so every press counts for one tick and M
// toggles fly/look mode instead of being held.
type Backend struct {
	screen   tcell.Screen
	session  *engine.Session
	interval time.Duration

	pending    player.Intent
	alt        bool
	showStatus bool
	colors     [graphics.NumColors]tcell.Color
}

func NewBackend(screen tcell.Screen, session *engine.Session, cfg *config.Config) *Backend {
	b := &Backend{
		screen:     screen,
		session:    session,
		interval:   cfg.GetFrameInterval(),
		showStatus: cfg.HUD.Visible,
	}
	for i, c := range session.Palette {
		b.colors[i] = tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return b
}

// HandleEvent folds one event into the pending intent. It returns false
// when the user asked to quit.
func (b *Backend) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			b.pending.Forward = true
		case tcell.KeyDown:
			b.pending.Backward = true
		case tcell.KeyLeft:
			b.pending.TurnLeft = true
		case tcell.KeyRight:
			b.pending.TurnRight = true
		case tcell.KeyRune:
			switch unicode.ToLower(ev.Rune()) {
			case 'w':
				b.pending.Forward = true
			case 's':
				b.pending.Backward = true
			case 'a':
				b.pending.TurnLeft = true
			case 'd':
				b.pending.TurnRight = true
			case 'q':
				b.pending.StrafeLeft = true
			case 'e':
				b.pending.StrafeRight = true
			case 'm':
				b.alt = !b.alt
			case 'h':
				b.showStatus = !b.showStatus
			}
		}
	case *tcell.EventResize:
		b.screen.Sync()
	}
	return true
}

// Tick applies the pending intent, renders and presents the frame.
func (b *Backend) Tick() {
	in := b.pending
	in.Alt = b.alt
	b.pending = player.Intent{}

	b.session.Step(in)
	b.Draw()
}

// Draw copies the session frame to the screen.
func (b *Backend) Draw() {
	fb := b.session.Frame
	cols, rows := b.screen.Size()
	b.screen.Clear()

	for cy := 0; cy < rows && 2*cy < fb.Height(); cy++ {
		top := fb.Height() - 1 - 2*cy
		for x := 0; x < cols && x < fb.Width(); x++ {
			style := tcell.StyleDefault.Foreground(b.colors[fb.At(x, top)])
			if top-1 >= 0 {
				style = style.Background(b.colors[fb.At(x, top-1)])
			}
			b.screen.SetContent(x, cy, halfBlock, nil, style)
		}
	}

	if b.showStatus && rows > 0 {
		b.drawText(0, rows-1, b.status())
	}
	b.screen.Show()
}

func (b *Backend) status() string {
	p := b.session.Player
	mode := "walk"
	if b.alt {
		mode = "fly"
	}
	s := b.session.LastStats()
	return fmt.Sprintf("%s  pos %d,%d,%d  angle %d  look %d  walls %d  [wasd qe m h esc]",
		mode, p.X, p.Y, p.Z, p.Angle, p.Look, s.WallsDrawn)
}

func (b *Backend) drawText(x, y int, text string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for _, r := range text {
		b.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Run processes events and ticks at the frame interval until the user
// quits or ctx is cancelled.
func (b *Backend) Run(ctx context.Context) {
	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(b.screen, events, done)

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	b.session.Render()
	b.Draw()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok || !b.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			b.Tick()
		}
	}
}

// pumpEvents forwards screen events until the screen is finalized or done
// is closed. events is closed when the screen stops.
func pumpEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// Run opens the terminal, sends log output to logPath while the screen is
// active, and blocks until the user quits.
func Run(ctx context.Context, cfg *config.Config, session *engine.Session, logPath string) error {
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	prev := log.Writer()
	log.SetOutput(logFile)
	defer log.SetOutput(prev)

	log.Printf("Terminal backend started")
	NewBackend(screen, session, cfg).Run(ctx)
	screen.Fini()
	return nil
}
