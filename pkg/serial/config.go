package serial

import (
	"flag"
	"os"
	"time"
)

// Drivers.
const (
	DriverTarm  = "tarm"
	DriverBugst = "bugst"
)

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g., "/dev/ttyACM0").
	Device string
	Baud   int
	// Driver selects the implementation, see DriverTarm and DriverBugst.
	Driver string
	// ReadTimeout bounds a poll for one byte. tarm rounds it up to
	// a multiple of 100ms.
	ReadTimeout time.Duration
}

var defaultConfig = Config{
	Device:      "/dev/ttyACM0",
	Baud:        9600,
	Driver:      DriverTarm,
	ReadTimeout: 5 * time.Millisecond,
}

func init() {
	if val := os.Getenv("INOCTL_DEVICE"); val != "" {
		defaultConfig.Device = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Device, "device", defaultConfig.Device, "Serial device path.")
	flag.StringVar(&defaultConfig.Device, "d", defaultConfig.Device, "Shorthand for -device.")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Serial port baud rate.")
	flag.IntVar(&defaultConfig.Baud, "b", defaultConfig.Baud, "Shorthand for -baud.")
	flag.StringVar(&defaultConfig.Driver, "driver", defaultConfig.Driver, "Serial driver: tarm (shared access) or bugst (exclusive access).")
	flag.DurationVar(&defaultConfig.ReadTimeout, "read-timeout", defaultConfig.ReadTimeout, "Serial read timeout while listening.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}
