package core

// RGB is a 24-bit pixel colour.
type RGB struct {
	R, G, B uint8
}

// Black is the zero pixel; frames start out black.
var Black = RGB{}

// Frame is an H×W×3 byte image stored row-major, channel-last.
// It matches the pixel observation layout RL callers expect.
type Frame struct {
	Height int
	Width  int
	Pix    []uint8
}

// NewFrame allocates a zeroed frame.
func NewFrame(height, width int) *Frame {
	return &Frame{
		Height: height,
		Width:  width,
		Pix:    make([]uint8, height*width*3),
	}
}

// Shape returns (height, width, channels).
func (f *Frame) Shape() [3]int {
	return [3]int{f.Height, f.Width, 3}
}

// Set writes a pixel. Out-of-bounds coordinates are silently ignored.
func (f *Frame) Set(y, x int, c RGB) {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return
	}
	i := (y*f.Width + x) * 3
	f.Pix[i] = c.R
	f.Pix[i+1] = c.G
	f.Pix[i+2] = c.B
}

// At returns the pixel at (y, x), or black when out of bounds.
func (f *Frame) At(y, x int) RGB {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return Black
	}
	i := (y*f.Width + x) * 3
	return RGB{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2]}
}

// FillRect paints every pixel of r (X = column, Y = row) with c.
func (f *Frame) FillRect(r Rect, c RGB) {
	y0 := Max(r.Y, 0)
	y1 := Min(r.Bottom(), f.Height)
	x0 := Max(r.X, 0)
	x1 := Min(r.Right(), f.Width)
	for y := y0; y < y1; y++ {
		row := y * f.Width * 3
		for x := x0; x < x1; x++ {
			i := row + x*3
			f.Pix[i] = c.R
			f.Pix[i+1] = c.G
			f.Pix[i+2] = c.B
		}
	}
}

// Clear resets every pixel to black.
func (f *Frame) Clear() {
	clear(f.Pix)
}
