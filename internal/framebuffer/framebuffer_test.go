package framebuffer

import (
	"testing"

	"github.com/thelolagemann/gochip8/internal/types"
)

// glyph for 0
var zero = []uint8{0xF0, 0x90, 0x90, 0x90, 0xF0}

func TestFramebuffer_New(t *testing.T) {
	f := New(WrapLinear)
	if !f.Dirty() {
		t.Errorf("expected new framebuffer to be dirty")
	}
	pixels, ok := f.Poll()
	if !ok || len(pixels) != Size {
		t.Fatalf("expected a %d pixel frame, got %d (%v)", Size, len(pixels), ok)
	}
	if _, ok := f.Poll(); ok {
		t.Errorf("expected second poll to report clean framebuffer")
	}
}

func TestFramebuffer_DrawSprite(t *testing.T) {
	f := New(WrapLinear)
	f.Poll()

	if f.DrawSprite(0, 0, zero) {
		t.Errorf("expected no collision on empty framebuffer")
	}
	if !f.Dirty() {
		t.Errorf("expected framebuffer to be dirty after draw")
	}
	// top row of the glyph is 4 pixels wide
	for x := 0; x < 8; x++ {
		if want := x < 4; f.Pixel(x, 0) != want {
			t.Errorf("pixel (%d, 0): expected %v, got %v", x, want, f.Pixel(x, 0))
		}
	}
	if !f.Pixel(0, 1) || f.Pixel(1, 1) || f.Pixel(2, 1) || !f.Pixel(3, 1) {
		t.Errorf("expected second row to be 1001")
	}
}

func TestFramebuffer_DrawIdempotence(t *testing.T) {
	f := New(WrapLinear)
	before := f.Bytes()

	if f.DrawSprite(10, 12, zero) {
		t.Errorf("expected first draw to not collide")
	}
	if !f.DrawSprite(10, 12, zero) {
		t.Errorf("expected second draw to collide")
	}

	after := f.Bytes()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("expected framebuffer to be restored, pixel %d differs", i)
		}
	}
}

func TestFramebuffer_EmptySpriteMarksDirty(t *testing.T) {
	f := New(WrapLinear)
	f.Poll()
	if f.DrawSprite(5, 5, nil) {
		t.Errorf("expected no collision")
	}
	if !f.Dirty() {
		t.Errorf("expected framebuffer to be dirty")
	}
}

func TestFramebuffer_Wrap(t *testing.T) {
	t.Run("linear", func(t *testing.T) {
		f := New(WrapLinear)
		// 0xFF at x=60 spills 4 pixels onto the next row
		f.DrawSprite(60, 0, []uint8{0xFF})
		for x := 60; x < Width; x++ {
			if !f.Pixel(x, 0) {
				t.Errorf("expected pixel (%d, 0) set", x)
			}
		}
		for x := 0; x < 4; x++ {
			if !f.Pixel(x, 1) {
				t.Errorf("expected pixel (%d, 1) set", x)
			}
			if f.Pixel(x, 0) {
				t.Errorf("expected pixel (%d, 0) clear", x)
			}
		}

		// the last row wraps back to the top of the framebuffer
		f.Clear()
		f.DrawSprite(0, 31, []uint8{0x80, 0x80})
		if !f.Pixel(0, 31) || !f.Pixel(0, 0) {
			t.Errorf("expected sprite to wrap from the bottom row to the top")
		}
	})
	t.Run("axis", func(t *testing.T) {
		f := New(WrapAxis)
		f.DrawSprite(60, 0, []uint8{0xFF})
		for x := 0; x < 4; x++ {
			if !f.Pixel(x, 0) {
				t.Errorf("expected pixel (%d, 0) set", x)
			}
			if f.Pixel(x, 1) {
				t.Errorf("expected pixel (%d, 1) clear", x)
			}
		}

		// coordinates beyond the screen wrap on each axis
		f.Clear()
		f.DrawSprite(64+3, 32+2, []uint8{0x80})
		if !f.Pixel(3, 2) {
			t.Errorf("expected pixel (3, 2) set")
		}
	})
}

func TestFramebuffer_Clear(t *testing.T) {
	f := New(WrapLinear)
	f.DrawSprite(0, 0, zero)
	f.Poll()

	f.Clear()
	pixels, ok := f.Poll()
	if !ok {
		t.Fatalf("expected clear to mark framebuffer dirty")
	}
	for i, on := range pixels {
		if on {
			t.Fatalf("expected pixel %d to be clear", i)
		}
	}
}

func TestFramebuffer_Image(t *testing.T) {
	f := New(WrapLinear)
	f.DrawSprite(2, 3, []uint8{0x80})

	img := f.Image()
	if b := img.Bounds(); b.Dx() != Width || b.Dy() != Height {
		t.Fatalf("expected %dx%d image, got %dx%d", Width, Height, b.Dx(), b.Dy())
	}
	if img.GrayAt(2, 3).Y != 0xFF {
		t.Errorf("expected pixel (2, 3) to be white")
	}
	if img.GrayAt(3, 3).Y != 0 {
		t.Errorf("expected pixel (3, 3) to be black")
	}
}

func TestFramebuffer_Hash(t *testing.T) {
	a, b := New(WrapLinear), New(WrapLinear)
	if a.Hash() != b.Hash() {
		t.Errorf("expected equal framebuffers to hash equal")
	}
	a.DrawSprite(0, 0, zero)
	if a.Hash() == b.Hash() {
		t.Errorf("expected different framebuffers to hash differently")
	}
}

func TestFramebuffer_State(t *testing.T) {
	f := New(WrapAxis)
	f.DrawSprite(7, 9, zero)
	f.Poll()

	st := types.NewState()
	f.Save(st)

	restored := New(WrapLinear)
	restored.Load(types.StateFromBytes(st.Bytes()))
	if restored.Hash() != f.Hash() {
		t.Errorf("expected restored pixels to match")
	}
	if restored.WrapMode() != WrapAxis {
		t.Errorf("expected wrap mode %v, got %v", WrapAxis, restored.WrapMode())
	}
	if !restored.Dirty() {
		t.Errorf("expected restored framebuffer to be dirty")
	}
}
