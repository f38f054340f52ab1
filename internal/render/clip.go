package render

// camPoint is a wall corner in camera space; Y is forward depth.
type camPoint struct {
	X, Y, Z float64
}

// clipBehind slides p along the segment towards ref until it sits on the
// near plane. p is assumed to be behind the plane.
func clipBehind(p, ref camPoint, near float64) camPoint {
	d := p.Y - ref.Y
	if d == 0 {
		d = 1
	}
	s := (p.Y - near) / d
	p.X += s * (ref.X - p.X)
	p.Z += s * (ref.Z - p.Z)
	p.Y = near
	return p
}
