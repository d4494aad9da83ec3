// Package null provides a display driver that discards every frame.
// It is used for headless runs and benchmarks, where only the
// emulation itself matters.
package null

import (
	"github.com/eastgate/dotmatrix/pkg/display"
)

func init() {
	display.Install("null", &Null{}, nil)
}

// Null discards frames.
type Null struct {
	stop chan struct{}
}

// Start consumes and discards frames until the channel closes or
// Stop is called.
func (n *Null) Start(frames <-chan []byte) error {
	n.stop = make(chan struct{})
	for {
		select {
		case <-n.stop:
			return nil
		case _, ok := <-frames:
			if !ok {
				return nil
			}
		}
	}
}

// Stop stops the driver.
func (n *Null) Stop() error {
	if n.stop != nil {
		close(n.stop)
	}
	return nil
}
