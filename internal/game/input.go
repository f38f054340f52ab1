package game

import (
	"doomlike/internal/player"

	"github.com/hajimehoshi/ebiten/v2"
)

// KeyState reports whether a key is held.
type KeyState func(ebiten.Key) bool

// intentFromKeys maps held keys to movement. Arrow keys mirror WASD.
func intentFromKeys(pressed KeyState) player.Intent {
	held := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if pressed(k) {
				return true
			}
		}
		return false
	}

	return player.Intent{
		Forward:     held(ebiten.KeyW, ebiten.KeyArrowUp),
		Backward:    held(ebiten.KeyS, ebiten.KeyArrowDown),
		TurnLeft:    held(ebiten.KeyA, ebiten.KeyArrowLeft),
		TurnRight:   held(ebiten.KeyD, ebiten.KeyArrowRight),
		StrafeLeft:  pressed(ebiten.KeyQ),
		StrafeRight: pressed(ebiten.KeyE),
		Alt:         pressed(ebiten.KeyM),
	}
}

// quitRequested reports whether the player asked to leave.
func quitRequested(pressed KeyState) bool {
	return pressed(ebiten.KeyEscape)
}
