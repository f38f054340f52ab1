package mathutil

import "math"

// TrigTable caches sine and cosine for every whole degree.
type TrigTable struct {
	sin [360]float64
	cos [360]float64
}

// NewTrigTable fills the table once. The values are read-only afterwards
// so a single table can be shared freely.
func NewTrigTable() *TrigTable {
	t := &TrigTable{}
	for deg := 0; deg < 360; deg++ {
		rad := float64(deg) / 180 * math.Pi
		t.sin[deg] = math.Sin(rad)
		t.cos[deg] = math.Cos(rad)
	}
	return t
}

// Sin returns the sine of deg; deg is wrapped into [0, 359].
func (t *TrigTable) Sin(deg int) float64 {
	return t.sin[WrapDegrees(deg)]
}

// Cos returns the cosine of deg; deg is wrapped into [0, 359].
func (t *TrigTable) Cos(deg int) float64 {
	return t.cos[WrapDegrees(deg)]
}
