// Package display provides the presentation side of the emulator: a
// registry of display drivers that consume completed frames from the
// core. Drivers self-register from their package init, so the set of
// available sinks is decided by what the binary was compiled with.
package display

import (
	"flag"
	"fmt"
)

// Driver is the interface that wraps the basic methods for a display
// driver. Start blocks, presenting every frame received on the
// channel until the channel closes or Stop is called.
type Driver interface {
	Start(frames <-chan []byte) error
	Stop() error
}

// DriverOption is a display driver option, registered as a prefixed
// command-line flag.
type DriverOption struct {
	Name        string // name of the option
	Default     any    // default value of the option
	Value       any    // pointer to the value of the option
	Description string // description of the option
}

// InstalledDriver is a driver that has been installed.
type InstalledDriver struct {
	Name    string
	Options []DriverOption
	Driver
}

// InstalledDrivers is a list of all the installed drivers. Drivers
// call Install in their init() function to appear here.
var InstalledDrivers []*InstalledDriver

// Install registers a display driver with the given name.
func Install(name string, driver Driver, options []DriverOption) {
	InstalledDrivers = append(InstalledDrivers, &InstalledDriver{
		Name:    name,
		Options: options,
		Driver:  driver,
	})
}

// GetDriver returns the driver with the given name, or nil if no
// driver with that name is installed. The name "auto" selects the
// first installed driver.
func GetDriver(name string) Driver {
	if len(InstalledDrivers) == 0 {
		return nil
	}
	if name == "auto" {
		return InstalledDrivers[0].Driver
	}
	for _, driver := range InstalledDrivers {
		if driver.Name == name {
			return driver.Driver
		}
	}
	return nil
}

// Names returns the names of the installed drivers.
func Names() []string {
	names := make([]string, 0, len(InstalledDrivers))
	for _, driver := range InstalledDrivers {
		names = append(names, driver.Name)
	}
	return names
}

// RegisterFlags registers every installed driver's options with the
// flag package, prefixed by the driver name.
func RegisterFlags() {
	for _, driver := range InstalledDrivers {
		for _, opt := range driver.Options {
			name := fmt.Sprintf("%s-%s", driver.Name, opt.Name)
			switch v := opt.Value.(type) {
			case *string:
				flag.StringVar(v, name, opt.Default.(string), opt.Description)
			case *bool:
				flag.BoolVar(v, name, opt.Default.(bool), opt.Description)
			case *int:
				flag.IntVar(v, name, opt.Default.(int), opt.Description)
			case *float64:
				flag.Float64Var(v, name, opt.Default.(float64), opt.Description)
			}
		}
	}
}
