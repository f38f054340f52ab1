package render

import (
	"doomlike/internal/mathutil"
	"doomlike/internal/player"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera converts world points into camera space, where X runs to the
// right of the view and Y is the forward depth.
type Camera struct {
	Pos  mgl64.Vec2
	Z    float64
	Look float64

	rot       mgl64.Mat2
	lookScale float64
}

// NewCamera builds the view for p. Rotation values come from the trig
// table so the camera agrees exactly with player movement.
func NewCamera(p player.Player, trig *mathutil.TrigTable, lookScale float64) Camera {
	cs, sn := trig.Cos(p.Angle), trig.Sin(p.Angle)
	return Camera{
		Pos:       mgl64.Vec2{float64(p.X), float64(p.Y)},
		Z:         float64(p.Z),
		Look:      float64(p.Look),
		rot:       mgl64.Mat2{cs, sn, -sn, cs},
		lookScale: lookScale,
	}
}

// ToCamera maps a world point into camera space.
func (c Camera) ToCamera(world mgl64.Vec2) mgl64.Vec2 {
	return c.rot.Mul2x1(world.Sub(c.Pos))
}

// ToWorld is the inverse of ToCamera.
func (c Camera) ToWorld(cam mgl64.Vec2) mgl64.Vec2 {
	return c.rot.Transpose().Mul2x1(cam).Add(c.Pos)
}

// Elevation returns the camera-space height of world height z seen at
// forward depth depth, with the look tilt applied.
func (c Camera) Elevation(z, depth float64) float64 {
	return z - c.Z + c.Look*depth/c.lookScale
}
