package render

// Projector performs the perspective divide. Screen y grows upwards;
// the surface flips rows when pixels are written.
type Projector struct {
	Focal float64
	HalfW float64
	HalfH float64
}

func NewProjector(s Settings) Projector {
	return Projector{
		Focal: s.Focal,
		HalfW: float64(s.Width / 2),
		HalfH: float64(s.Height / 2),
	}
}

// Project maps a camera-space point to screen space. p.Y must be positive.
func (pr Projector) Project(p camPoint) (sx, sy float64) {
	sx = p.X*pr.Focal/p.Y + pr.HalfW
	sy = p.Z*pr.Focal/p.Y + pr.HalfH
	return sx, sy
}
