package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
)

// SavePNG writes the image to path, creating or truncating the file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	return EncodePNG(f, img)
}

// EncodePNG writes the image to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
