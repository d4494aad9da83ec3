package utils

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"sync"

	"golang.design/x/clipboard"
)

// FrameImage wraps a raw RGBA framebuffer in an image without
// copying it.
func FrameImage(fb []byte, width, height int) *image.RGBA {
	return &image.RGBA{
		Pix:    fb,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
}

// SaveImage writes the given image to the given path as a PNG.
func SaveImage(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}

var clipboardOnce sync.Once
var clipboardErr error

// CopyImage places the given image on the system clipboard as a PNG.
func CopyImage(img image.Image) error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		return clipboardErr
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	return nil
}
