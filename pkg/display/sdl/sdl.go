// Package sdl provides a display driver built on SDL2: a window, an
// accelerated renderer and a streaming texture the framebuffer is
// uploaded into every frame.
package sdl

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/eastgate/dotmatrix/internal/ppu"
	"github.com/eastgate/dotmatrix/pkg/display"
	"github.com/eastgate/dotmatrix/pkg/log"
)

func init() {
	s := &SDL{Log: log.New("info")}
	display.Install("sdl", s, []display.DriverOption{
		{Name: "scale", Default: 4, Value: &s.scale, Description: "window scale factor"},
	})
}

// SDL is the SDL2 display driver.
type SDL struct {
	Log log.Logger

	scale int
	stop  chan struct{}
}

// Start opens the window and presents frames until the channel
// closes, the window is dismissed, or Stop is called.
func (s *SDL) Start(frames <-chan []byte) error {
	s.stop = make(chan struct{})

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return err
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("dotmatrix",
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(ppu.ScreenWidth*s.scale), int32(ppu.ScreenHeight*s.scale),
		sdl.WINDOW_SHOWN)
	if err != nil {
		return err
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888,
		sdl.TEXTUREACCESS_STREAMING, ppu.ScreenWidth, ppu.ScreenHeight)
	if err != nil {
		return err
	}
	defer texture.Destroy()

	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if _, ok := event.(*sdl.QuitEvent); ok {
				return nil
			}
		}

		select {
		case <-s.stop:
			return nil
		case fb, ok := <-frames:
			if !ok {
				return nil
			}

			if err := texture.Update(nil, fb, ppu.ScreenWidth*4); err != nil {
				s.Log.Errorf("sdl: updating texture: %v", err)
				continue
			}
			renderer.Clear()
			renderer.Copy(texture, nil, nil)
			renderer.Present()
		}
	}
}

// Stop stops the driver.
func (s *SDL) Stop() error {
	if s.stop != nil {
		close(s.stop)
	}
	return nil
}
