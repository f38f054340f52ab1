package render

import "doomlike/internal/world"

// SurfaceMode selects what the rasterizer does with a sector's columns.
type SurfaceMode int

const (
	ModeStencilCeiling SurfaceMode = -2 // fill from the top edge to the recorded row
	ModeStencilFloor   SurfaceMode = -1 // fill from the recorded row to the bottom edge
	ModeDirect         SurfaceMode = 0
	ModeRecordFloor    SurfaceMode = 1 // camera below the floor: remember bottom rows
	ModeRecordCeiling  SurfaceMode = 2 // camera above the ceiling: remember top rows
)

// unrecorded marks a column no record pass has touched this frame.
const unrecorded = -1

func (m SurfaceMode) String() string {
	switch m {
	case ModeStencilCeiling:
		return "stencil-ceiling"
	case ModeStencilFloor:
		return "stencil-floor"
	case ModeDirect:
		return "direct"
	case ModeRecordFloor:
		return "record-floor"
	case ModeRecordCeiling:
		return "record-ceiling"
	}
	return "unknown"
}

// modeFor picks the record mode from the camera height.
func modeFor(z int, s world.Sector) SurfaceMode {
	switch {
	case z < s.Floor:
		return ModeRecordFloor
	case z > s.Ceiling():
		return ModeRecordCeiling
	default:
		return ModeDirect
	}
}

// SectorState is the per-frame scratch data of one sector.
type SectorState struct {
	Depth   float64
	Mode    SurfaceMode
	Heights []int // one row per screen column
}

// Frame holds all scratch state for one render. It is rebuilt at the
// start of every frame so nothing carries over between frames.
type Frame struct {
	States []SectorState
	Order  []int
}

func (f *Frame) reset(sectors, width int) {
	if cap(f.States) < sectors {
		f.States = make([]SectorState, sectors)
		f.Order = make([]int, sectors)
	}
	f.States = f.States[:sectors]
	f.Order = f.Order[:sectors]

	for i := range f.States {
		st := &f.States[i]
		st.Depth = 0
		st.Mode = ModeDirect
		if len(st.Heights) != width {
			st.Heights = make([]int, width)
		}
		for x := range st.Heights {
			st.Heights[x] = unrecorded
		}
		f.Order[i] = i
	}
}
