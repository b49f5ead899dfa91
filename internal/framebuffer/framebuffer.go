// Package framebuffer provides the 64x32 monochrome display
// memory. Sprites are XOR plotted onto the framebuffer, and a
// dirty flag records whether the contents changed since the
// host last polled it.
package framebuffer

import (
	"image"
	"image/color"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/gochip8/internal/types"
)

const (
	// Width is the number of pixels in a row.
	Width = 64
	// Height is the number of rows.
	Height = 32
	// Size is the total number of pixels.
	Size = Width * Height
)

// WrapMode determines how pixels that fall off the edge of the
// framebuffer are placed.
type WrapMode uint8

const (
	// WrapLinear wraps the flat pixel index modulo Size, so a
	// pixel falling off the right edge continues on the next row.
	WrapLinear WrapMode = iota
	// WrapAxis wraps x modulo Width and y modulo Height
	// independently.
	WrapAxis
)

func (w WrapMode) String() string {
	switch w {
	case WrapLinear:
		return "linear"
	case WrapAxis:
		return "axis"
	}
	return "unknown"
}

// Framebuffer holds the pixel state of the display.
type Framebuffer struct {
	pixels [Size]bool
	dirty  bool
	wrap   WrapMode
}

// New returns a cleared Framebuffer using the given WrapMode.
// A new framebuffer is dirty, so the first poll always
// yields a frame.
func New(wrap WrapMode) *Framebuffer {
	return &Framebuffer{
		dirty: true,
		wrap:  wrap,
	}
}

// SetWrapMode changes how DrawSprite wraps pixels.
func (f *Framebuffer) SetWrapMode(wrap WrapMode) {
	f.wrap = wrap
}

// WrapMode returns the current wrap mode.
func (f *Framebuffer) WrapMode() WrapMode {
	return f.wrap
}

// Clear turns every pixel off and marks the framebuffer dirty.
func (f *Framebuffer) Clear() {
	f.pixels = [Size]bool{}
	f.dirty = true
}

// Reset restores the power-on state.
func (f *Framebuffer) Reset() {
	f.Clear()
}

// index returns the flat pixel index of (x, y) after wrapping.
func (f *Framebuffer) index(x, y int) int {
	if f.wrap == WrapAxis {
		return (y%Height)*Width + x%Width
	}
	return (y*Width + x) % Size
}

// DrawSprite XORs an 8 pixel wide sprite onto the framebuffer
// with its top left corner at (x, y). Each byte of rows is one
// line of the sprite, most significant bit leftmost. It reports
// whether any pixel was turned off. The framebuffer is marked
// dirty even when rows is empty.
func (f *Framebuffer) DrawSprite(x, y uint8, rows []uint8) (collision bool) {
	for row, line := range rows {
		for col := 0; col < 8; col++ {
			if line&(types.Bit7>>col) == 0 {
				continue
			}
			i := f.index(int(x)+col, int(y)+row)
			if f.pixels[i] {
				collision = true
			}
			f.pixels[i] = !f.pixels[i]
		}
	}
	f.dirty = true

	return collision
}

// Pixel reports whether the pixel at (x, y) is on. Coordinates
// outside of the framebuffer are reported as off.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f.pixels[y*Width+x]
}

// Dirty reports whether the framebuffer changed since the last Poll.
func (f *Framebuffer) Dirty() bool {
	return f.dirty
}

// Poll returns a copy of the pixels and whether they changed
// since the last call, clearing the dirty flag.
func (f *Framebuffer) Poll() ([]bool, bool) {
	if !f.dirty {
		return nil, false
	}
	f.dirty = false

	pixels := make([]bool, Size)
	copy(pixels, f.pixels[:])
	return pixels, true
}

// Bytes returns the pixels as one byte per pixel, 1 for on
// and 0 for off, in row major order.
func (f *Framebuffer) Bytes() []byte {
	b := make([]byte, Size)
	for i, on := range f.pixels {
		if on {
			b[i] = 1
		}
	}
	return b
}

// Hash returns a digest of the current pixels.
func (f *Framebuffer) Hash() uint64 {
	return xxhash.Sum64(f.Bytes())
}

// Image renders the framebuffer as a grayscale image, white
// pixels on a black background.
func (f *Framebuffer) Image() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, Width, Height))
	for i, on := range f.pixels {
		if on {
			img.SetGray(i%Width, i/Width, color.Gray{Y: 0xFF})
		}
	}
	return img
}

var _ types.Stater = (*Framebuffer)(nil)

func (f *Framebuffer) Load(s *types.State) {
	for i := range f.pixels {
		f.pixels[i] = s.ReadBool()
	}
	f.wrap = WrapMode(s.Read8())
	// force the restored frame to be redrawn
	f.dirty = true
}

func (f *Framebuffer) Save(s *types.State) {
	for _, on := range f.pixels {
		s.WriteBool(on)
	}
	s.Write8(uint8(f.wrap))
}
