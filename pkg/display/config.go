package display

import (
	"flag"

	"github.com/golang/glog"
)

// Config selects the compositor instance.
type Config struct {
	// SocketPath overrides the detected IPC socket.
	SocketPath string
}

var defaultConfig Config

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.SocketPath, "hypr-socket", defaultConfig.SocketPath, "Hyprland IPC socket, detected from HYPRLAND_INSTANCE_SIGNATURE if empty.")
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

// NewService creates the display service. Without a socket the
// service is still created and every request fails with ErrNoInstance,
// so commands that never touch the display keep working.
func (c *Config) NewService() *Hyprland {
	path := c.SocketPath
	if path == "" {
		var err error
		if path, err = SocketPath(); err != nil {
			glog.Warningf("display: %v", err)
		}
	}
	return NewHyprland(path)
}
