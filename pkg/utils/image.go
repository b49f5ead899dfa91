package utils

import (
	"image"
	"image/png"
	"os"
	"strings"

	"golang.org/x/image/draw"
)

// Scale returns img scaled up by factor, keeping hard pixel edges.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// SavePNG saves img scaled by factor to filename, adding the
// .png extension if it is missing.
func SavePNG(img image.Image, filename string, factor int) (string, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".png") {
		filename += ".png"
	}

	file, err := os.Create(filename)
	if err != nil {
		return "", err
	}

	if err := png.Encode(file, Scale(img, factor)); err != nil {
		file.Close()
		return "", err
	}

	return filename, file.Close()
}
