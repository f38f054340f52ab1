package graphics

import (
	"image"
)

// FrameBuffer is an indexed-colour frame. Coordinates passed to SetPixel
// and At have y = 0 at the bottom; rows are stored top-down so the
// buffer can be copied straight to an image.
type FrameBuffer struct {
	width  int
	height int
	pixels []ColorID
	writes int
}

func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		width:  width,
		height: height,
		pixels: make([]ColorID, width*height),
	}
}

func (fb *FrameBuffer) Width() int  { return fb.width }
func (fb *FrameBuffer) Height() int { return fb.height }

// Clear fills the whole buffer with c and resets the write counter.
func (fb *FrameBuffer) Clear(c ColorID) {
	for i := range fb.pixels {
		fb.pixels[i] = c
	}
	fb.writes = 0
}

// SetPixel writes c at (x, y). Out of range writes are dropped.
func (fb *FrameBuffer) SetPixel(x, y int, c ColorID) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	fb.pixels[(fb.height-1-y)*fb.width+x] = c
	fb.writes++
}

// At returns the colour at (x, y) using the same bottom-up rows as SetPixel.
func (fb *FrameBuffer) At(x, y int) ColorID {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return Background
	}
	return fb.pixels[(fb.height-1-y)*fb.width+x]
}

// Writes returns the number of pixels written since the last Clear.
func (fb *FrameBuffer) Writes() int {
	return fb.writes
}

// ResolveRow converts screen row (0 = top) to RGBA bytes in dst, which
// must hold at least width*4 bytes. Rows are independent, so callers may
// resolve different rows concurrently.
func (fb *FrameBuffer) ResolveRow(pal *Palette, row int, dst []byte) {
	src := fb.pixels[row*fb.width : (row+1)*fb.width]
	for x, id := range src {
		c := pal.RGBA(id)
		o := x * 4
		dst[o] = c.R
		dst[o+1] = c.G
		dst[o+2] = c.B
		dst[o+3] = c.A
	}
}

// Image resolves the whole frame into a new RGBA image.
func (fb *FrameBuffer) Image(pal *Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for row := 0; row < fb.height; row++ {
		fb.ResolveRow(pal, row, img.Pix[row*img.Stride:])
	}
	return img
}
