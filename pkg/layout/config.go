package layout

import (
	"flag"
)

// Config defines how kitty is reached.
type Config struct {
	Binary string
	To     string
	Match  string
}

var defaultConfig = Config{
	Binary: "kitty",
	To:     "tcp:localhost:65065",
	Match:  "all",
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Binary, "kitty", defaultConfig.Binary, "kitty executable.")
	flag.StringVar(&defaultConfig.To, "kitty-to", defaultConfig.To, "kitty remote control address.")
	flag.StringVar(&defaultConfig.Match, "kitty-match", defaultConfig.Match, "kitty tab match expression for goto-layout.")
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

// NewService creates the layout service.
func (c *Config) NewService() *Kitty {
	return &Kitty{Binary: c.Binary, To: c.To, Match: c.Match}
}
