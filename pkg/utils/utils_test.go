package utils

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestClamp(t *testing.T) {
	if got := Clamp(1, 0, 10); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := Clamp(1.0, 12.5, 10.0); got != 10 {
		t.Errorf("expected 10, got %f", got)
	}
	if got := Clamp(uint8(1), 5, 10); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
}

func TestBits(t *testing.T) {
	var v uint16
	v = SetBit(v, 15)
	if v != 0x8000 || !TestBit(v, 15) || TestBit(v, 0) {
		t.Errorf("unexpected value after SetBit: %04X", v)
	}
	if v = ClearBit(v, 15); v != 0 {
		t.Errorf("unexpected value after ClearBit: %04X", v)
	}
}

func TestBytes(t *testing.T) {
	hi, lo := Uint16ToBytes(0xABCD)
	if hi != 0xAB || lo != 0xCD {
		t.Errorf("expected AB CD, got %02X %02X", hi, lo)
	}
	if got := BytesToUint16(hi, lo); got != 0xABCD {
		t.Errorf("expected ABCD, got %04X", got)
	}
}

func TestSavePNG(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 2))
	img.SetGray(1, 1, color.Gray{Y: 0xFF})

	path, err := SavePNG(img, filepath.Join(t.TempDir(), "shot"), 3)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Ext(path) != ".png" {
		t.Errorf("expected .png extension, got %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}

	if b := decoded.Bounds(); b.Dx() != 12 || b.Dy() != 6 {
		t.Fatalf("expected 12x6 image, got %dx%d", b.Dx(), b.Dy())
	}
	for _, p := range []image.Point{{3, 3}, {5, 5}} {
		if r, _, _, _ := decoded.At(p.X, p.Y).RGBA(); r != 0xFFFF {
			t.Errorf("expected pixel %v to be lit", p)
		}
	}
	if r, _, _, _ := decoded.At(0, 0).RGBA(); r != 0 {
		t.Errorf("expected pixel (0,0) to be dark")
	}
}
