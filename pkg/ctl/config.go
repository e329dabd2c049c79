package ctl

import (
	"flag"
	"fmt"
	"strconv"
	"time"
)

// Config holds the settings of a session. It is built once at startup
// and not modified afterwards.
type Config struct {
	// SideMonitor is the rotating monitor reported by the sensor.
	SideMonitor string
	// MainMonitor is moved next to the side monitor on rotation.
	MainMonitor string
	// MainMode is the resolution and refresh rate of the main monitor.
	MainMode string
	// MainScale is the scale of the main monitor.
	MainScale string
	// Threshold is the relative angle at which the firmware switches
	// orientations, reported back on ENQ.
	Threshold uint
	// Delay is the pause after every command.
	Delay time.Duration
	// PollInterval is the pause when the listen loop finds no input.
	PollInterval time.Duration
}

var defaultConfig = Config{
	SideMonitor:  "HDMI-A-1",
	MainMonitor:  "DP-1",
	MainMode:     "1920x1080@144",
	MainScale:    "1",
	Threshold:    65,
	Delay:        50 * time.Millisecond,
	PollInterval: 5 * time.Millisecond,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.SideMonitor, "side-monitor", defaultConfig.SideMonitor, "Monitor rotated by the sensor.")
	flag.StringVar(&defaultConfig.MainMonitor, "main-monitor", defaultConfig.MainMonitor, "Monitor repositioned on rotation.")
	flag.StringVar(&defaultConfig.MainMode, "main-mode", defaultConfig.MainMode, "Mode of the main monitor.")
	flag.StringVar(&defaultConfig.MainScale, "main-scale", defaultConfig.MainScale, "Scale of the main monitor.")
	flag.UintVar(&defaultConfig.Threshold, "threshold", defaultConfig.Threshold, "Relative angle at which the monitor switches orientations.")
	flag.UintVar(&defaultConfig.Threshold, "t", defaultConfig.Threshold, "Shorthand for -threshold.")
	flag.Var((*millis)(&defaultConfig.Delay), "delay", "Millisecond delay between commands.")
	flag.Var((*millis)(&defaultConfig.PollInterval), "poll", "Millisecond pause between reads while listening.")
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

// Validate checks the config.
func (c *Config) Validate() error {
	if c.SideMonitor == "" {
		return fmt.Errorf("side monitor must be specified")
	}
	if c.MainMonitor == "" {
		return fmt.Errorf("main monitor must be specified")
	}
	if c.Threshold > 0xff {
		return fmt.Errorf("threshold %d out of range 0-255", c.Threshold)
	}
	if c.Delay < 0 || c.PollInterval < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	return nil
}

// millis is a duration flag taking plain milliseconds or a
// time.Duration string.
type millis time.Duration

func (m *millis) String() string {
	return strconv.FormatInt(int64(time.Duration(*m)/time.Millisecond), 10)
}

func (m *millis) Set(s string) error {
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		*m = millis(time.Duration(n) * time.Millisecond)
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid delay %q", s)
	}
	*m = millis(d)
	return nil
}
