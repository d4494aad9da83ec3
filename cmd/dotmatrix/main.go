// Command dotmatrix emulates the original Game Boy. It takes a ROM
// file as its only positional argument and presents frames through
// one of the installed display drivers.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/eastgate/dotmatrix/internal/gameboy"
	"github.com/eastgate/dotmatrix/pkg/display"
	_ "github.com/eastgate/dotmatrix/pkg/display/debug"
	_ "github.com/eastgate/dotmatrix/pkg/display/fyne"
	_ "github.com/eastgate/dotmatrix/pkg/display/null"
	_ "github.com/eastgate/dotmatrix/pkg/display/sdl"
	_ "github.com/eastgate/dotmatrix/pkg/display/terminal"
	_ "github.com/eastgate/dotmatrix/pkg/display/web"
	"github.com/eastgate/dotmatrix/pkg/log"
	"github.com/eastgate/dotmatrix/pkg/utils"
)

func main() {
	trace := flag.Bool("trace", false, "enable verbose diagnostics")
	strict := flag.Bool("strict", false, "verify the cartridge global checksum")
	driverName := flag.String("driver", "terminal",fmt.Sprintf("display driver to use (auto, %s)", strings.Join(display.Names(), ", ")))
	display.RegisterFlags()

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <rom file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	level := "info"
	if *trace {
		level = "trace"
	}
	logger := log.New(level)

	romFile := flag.Arg(0)
	if romFile == "" {
		// no ROM on the command line; ask for one
		var err error
		romFile, err = utils.AskForFile("Open ROM", ".")
		if err != nil {
			fmt.Fprintln(os.Stderr, "no ROM file given")
			os.Exit(1)
		}
	}

	rom, err := utils.LoadFile(romFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to load ROM %s: %v\n", romFile, err)
		os.Exit(1)
	}

	opts := []gameboy.Opt{gameboy.WithLogger(logger)}
	if *strict {
		opts = append(opts, gameboy.WithStrictChecksum())
	}

	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	driver := display.GetDriver(*driverName)
	if driver == nil {
		fmt.Fprintf(os.Stderr, "invalid display driver %q\n", *driverName)
		os.Exit(1)
	}

	frames := make(chan []byte, 2)
	stop := make(chan struct{})

	// stop the emulation loop cleanly on interrupt
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		close(stop)
		driver.Stop()
	}()

	go gb.Run(frames, stop)

	// the display driver owns the foreground; it returns when the
	// frame channel closes or the user dismisses it
	if err := driver.Start(frames); err != nil {
		logger.Fatal(fmt.Sprintf("display driver: %v", err))
	}
}
