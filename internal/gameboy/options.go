package gameboy

import (
	"github.com/eastgate/dotmatrix/pkg/log"
)

type options struct {
	logger log.Logger
	strict bool
}

// Opt configures the construction of a GameBoy.
type Opt func(*options)

// WithLogger attaches a logging sink to every component. The default
// is a logger that discards everything.
func WithLogger(l log.Logger) Opt {
	return func(o *options) {
		o.logger = l
	}
}

// WithStrictChecksum verifies the cartridge global checksum during
// loading. Real hardware never checks it.
func WithStrictChecksum() Opt {
	return func(o *options) {
		o.strict = true
	}
}
