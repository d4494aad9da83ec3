// Package debug provides a display driver for inspecting emulator
// output without a window: it logs the frame cadence, can dump
// numbered PNG screenshots, and writes a frame-time plot when it
// stops.
package debug

import (
	"fmt"
	"image"
	"path/filepath"
	"time"

	"golang.org/x/image/draw"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/eastgate/dotmatrix/internal/ppu"
	"github.com/eastgate/dotmatrix/pkg/display"
	"github.com/eastgate/dotmatrix/pkg/log"
	"github.com/eastgate/dotmatrix/pkg/utils"
)

func init() {
	d := &Debug{Log: log.New("info")}
	display.Install("debug", d, []display.DriverOption{
		{Name: "dump", Default: 0, Value: &d.dumpEvery, Description: "dump a PNG every n frames (0 disables)"},
		{Name: "dir", Default: ".", Value: &d.dumpDir, Description: "directory to write dumped frames and the timing plot into"},
		{Name: "scale", Default: 2, Value: &d.scale, Description: "scale factor for dumped frames"},
	})
}

// Debug observes frames rather than presenting them.
type Debug struct {
	Log log.Logger

	dumpEvery int
	dumpDir   string
	scale     int

	frameCount uint64
	intervals  []float64
	stop       chan struct{}
}

// Start consumes frames until the channel closes or Stop is called.
func (d *Debug) Start(frames <-chan []byte) error {
	d.stop = make(chan struct{})
	last := time.Now()

	for {
		select {
		case <-d.stop:
			return d.writePlot()
		case fb, ok := <-frames:
			if !ok {
				return d.writePlot()
			}

			now := time.Now()
			d.intervals = append(d.intervals, now.Sub(last).Seconds()*1000)
			last = now
			d.frameCount++

			if d.frameCount%60 == 0 {
				d.Log.Infof("debug: %d frames, last interval %.2fms", d.frameCount, d.intervals[len(d.intervals)-1])
			}

			if d.dumpEvery > 0 && d.frameCount%uint64(d.dumpEvery) == 0 {
				if err := d.dumpFrame(fb); err != nil {
					d.Log.Errorf("debug: dumping frame: %v", err)
				}
			}
		}
	}
}

// Stop stops the driver and writes the frame-time plot.
func (d *Debug) Stop() error {
	if d.stop != nil {
		close(d.stop)
	}
	return nil
}

// dumpFrame scales the frame up and writes it as a numbered PNG.
func (d *Debug) dumpFrame(fb []byte) error {
	src := utils.FrameImage(fb, ppu.ScreenWidth, ppu.ScreenHeight)

	dst := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth*d.scale, ppu.ScreenHeight*d.scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	path := filepath.Join(d.dumpDir, fmt.Sprintf("frame-%06d.png", d.frameCount))
	return utils.SaveImage(dst, path)
}

// writePlot renders the recorded frame intervals into a PNG chart.
func (d *Debug) writePlot() error {
	if len(d.intervals) == 0 {
		return nil
	}

	p := plot.New()
	p.Title.Text = "frame time"
	p.X.Label.Text = "frame"
	p.Y.Label.Text = "interval (ms)"

	points := make(plotter.XYs, len(d.intervals))
	for i, v := range d.intervals {
		points[i].X = float64(i)
		points[i].Y = v
	}

	line, err := plotter.NewLine(points)
	if err != nil {
		return err
	}
	p.Add(line)

	path := filepath.Join(d.dumpDir, "frame-times.png")
	d.Log.Infof("debug: writing frame-time plot to %s", path)
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
