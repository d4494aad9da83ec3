// Package terminal provides a display driver that renders frames
// into the terminal, either as ANSI 256-colour blocks or greyscale
// ASCII shades.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/eastgate/dotmatrix/internal/ppu"
	"github.com/eastgate/dotmatrix/pkg/display"
)

func init() {
	d := &Terminal{out: os.Stdout}
	display.Install("terminal", d, []display.DriverOption{
		{Name: "ascii", Default: false, Value: &d.ascii, Description: "render greyscale ASCII shades instead of coloured blocks"},
	})
}

// shadeBlocks maps a brightness quartile to an ANSI 256-colour
// two-space block.
var shadeBlocks = [4]string{
	"\x1b[48;5;232m  \x1b[0m",
	"\x1b[48;5;240m  \x1b[0m",
	"\x1b[48;5;248m  \x1b[0m",
	"\x1b[48;5;255m  \x1b[0m",
}

// shadeRunes maps a brightness quartile to a block-drawing rune,
// darkest first.
var shadeRunes = [4]rune{'█', '▓', '▒', '░'}

// Terminal renders each frame over the previous one by clearing and
// homing the cursor before every draw.
type Terminal struct {
	ascii bool
	out   io.Writer

	frameCount uint64
	stop       chan struct{}
}

// Start consumes frames until the channel closes or Stop is called.
func (t *Terminal) Start(frames <-chan []byte) error {
	t.stop = make(chan struct{})
	for {
		select {
		case <-t.stop:
			return nil
		case fb, ok := <-frames:
			if !ok {
				return nil
			}
			t.frameCount++
			t.presentFrame(fb)
		}
	}
}

// Stop stops the driver.
func (t *Terminal) Stop() error {
	if t.stop != nil {
		close(t.stop)
	}
	return nil
}

// presentFrame writes one frame to the terminal.
func (t *Terminal) presentFrame(fb []byte) {
	w := bufio.NewWriterSize(t.out, 256*1024)

	// clear the screen and move the cursor home
	fmt.Fprint(w, "\x1b[2J\x1b[H")
	t.renderFrame(w, fb)
	w.Flush()
}

// renderFrame renders the framebuffer into the given writer, framed
// by a box border with a frame counter above it.
func (t *Terminal) renderFrame(w io.Writer, fb []byte) {
	width := ppu.ScreenWidth
	if !t.ascii {
		width *= 2
	}

	fmt.Fprintf(w, "dotmatrix - frame %d\n", t.frameCount)
	fmt.Fprint(w, "┌")
	for i := 0; i < width; i++ {
		fmt.Fprint(w, "─")
	}
	fmt.Fprint(w, "┐\n")

	for y := 0; y < ppu.ScreenHeight; y++ {
		fmt.Fprint(w, "│")
		for x := 0; x < ppu.ScreenWidth; x++ {
			offset := (y*ppu.ScreenWidth + x) * 4
			shade := brightness(fb[offset], fb[offset+1], fb[offset+2])
			if t.ascii {
				fmt.Fprintf(w, "%c", shadeRunes[shade])
			} else {
				fmt.Fprint(w, shadeBlocks[shade])
			}
		}
		fmt.Fprint(w, "│\n")
	}

	fmt.Fprint(w, "└")
	for i := 0; i < width; i++ {
		fmt.Fprint(w, "─")
	}
	fmt.Fprint(w, "┘\n")
}

// brightness reduces an RGB pixel to one of four shades, 0 being the
// darkest.
func brightness(r, g, b uint8) int {
	grey := (int(r) + int(g) + int(b)) / 3
	return grey / 64
}
