package player

import (
	"doomlike/internal/config"
	"doomlike/internal/mathutil"
)

// Player is the camera: integer world position, facing angle in whole
// degrees [0, 359] and a vertical look tilt.
type Player struct {
	X     int `yaml:"x"`
	Y     int `yaml:"y"`
	Z     int `yaml:"z"`
	Angle int `yaml:"angle"`
	Look  int `yaml:"look"`
}

// Intent is the set of movement keys held for one tick. Alt switches
// forward/backward to flying and turning to looking.
type Intent struct {
	Forward     bool
	Backward    bool
	TurnLeft    bool
	TurnRight   bool
	StrafeLeft  bool
	StrafeRight bool
	Alt         bool
}

// Idle reports whether the intent moves nothing.
func (in Intent) Idle() bool {
	return !in.Forward && !in.Backward && !in.TurnLeft && !in.TurnRight &&
		!in.StrafeLeft && !in.StrafeRight
}

// Apply advances the player by one tick. Turning happens before the
// step vector is taken, so turning and walking in the same tick walks
// along the new heading.
func (p *Player) Apply(in Intent, trig *mathutil.TrigTable, mv config.MovementConfig) {
	if !in.Alt {
		if in.TurnLeft {
			p.Angle -= mv.TurnSpeed
		}
		if in.TurnRight {
			p.Angle += mv.TurnSpeed
		}
	}
	p.Angle = mathutil.WrapDegrees(p.Angle)

	dx := int(trig.Sin(p.Angle) * float64(mv.MoveSpeed))
	dy := int(trig.Cos(p.Angle) * float64(mv.MoveSpeed))

	if in.Alt {
		if in.TurnLeft {
			p.Look -= mv.LookSpeed
		}
		if in.TurnRight {
			p.Look += mv.LookSpeed
		}
		if in.Forward {
			p.Z += mv.FlySpeed
		}
		if in.Backward {
			p.Z -= mv.FlySpeed
		}
	} else {
		if in.Forward {
			p.X += dx
			p.Y += dy
		}
		if in.Backward {
			p.X -= dx
			p.Y -= dy
		}
	}

	if in.StrafeLeft {
		p.X -= dy
		p.Y += dx
	}
	if in.StrafeRight {
		p.X += dy
		p.Y -= dx
	}
}
