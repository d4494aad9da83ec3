// Package fyne provides a desktop window display driver built on the
// fyne toolkit. The framebuffer is presented as a pixel-scaled canvas
// image; pressing S copies a screenshot to the clipboard.
package fyne

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"

	"github.com/eastgate/dotmatrix/internal/ppu"
	"github.com/eastgate/dotmatrix/pkg/display"
	"github.com/eastgate/dotmatrix/pkg/log"
	"github.com/eastgate/dotmatrix/pkg/utils"
)

func init() {
	f := &Fyne{Log: log.New("info")}
	display.Install("fyne", f, []display.DriverOption{
		{Name: "scale", Default: 4, Value: &f.scale, Description: "window scale factor"},
	})
}

// Fyne is the fyne display driver.
type Fyne struct {
	Log log.Logger

	scale int
	app   fyne.App
}

// Start opens the window and presents frames until the channel
// closes or the window is dismissed.
func (f *Fyne) Start(frames <-chan []byte) error {
	f.app = app.New()
	w := f.app.NewWindow("dotmatrix")

	rgba := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	img := canvas.NewImageFromImage(rgba)
	img.ScaleMode = canvas.ImageScalePixels
	img.SetMinSize(fyne.NewSize(float32(ppu.ScreenWidth*f.scale), float32(ppu.ScreenHeight*f.scale)))

	w.SetContent(img)
	w.SetFixedSize(true)

	w.Canvas().SetOnTypedKey(func(k *fyne.KeyEvent) {
		if k.Name == fyne.KeyS {
			if err := utils.CopyImage(rgba); err != nil {
				f.Log.Errorf("fyne: copying screenshot: %v", err)
			} else {
				f.Log.Infof("fyne: screenshot copied to clipboard")
			}
		}
	})

	go func() {
		for fb := range frames {
			copy(rgba.Pix, fb)
			canvas.Refresh(img)
		}
		f.app.Quit()
	}()

	w.ShowAndRun()
	return nil
}

// Stop closes the window.
func (f *Fyne) Stop() error {
	if f.app != nil {
		f.app.Quit()
	}
	return nil
}
