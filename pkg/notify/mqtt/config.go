package mqtt

import (
	"flag"
	"os"

	"github.com/romner-set/arduino/pkg/notify"
)

// Config enables event publication.
type Config struct {
	// BrokerURL e.g. mqtt://host:port/topic-prefix, empty disables.
	BrokerURL string
	// Source is the topic component identifying this host.
	Source string
}

var defaultConfig Config

func init() {
	if val := os.Getenv("INOCTL_MQTT_URL"); val != "" {
		defaultConfig.BrokerURL = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.BrokerURL, "mqtt", defaultConfig.BrokerURL, "MQTT broker URL for orientation events, e.g. mqtt://localhost:1883/inoctl/")
	flag.StringVar(&defaultConfig.Source, "mqtt-source", defaultConfig.Source, "Source name in MQTT topics, defaults to a machine id.")
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

// Enabled reports whether a broker is configured.
func (c *Config) Enabled() bool {
	return c.BrokerURL != ""
}

// NewPublisher creates the publisher.
func (c *Config) NewPublisher() (*Publisher, error) {
	source := c.Source
	if source == "" {
		source = notify.DefaultSource()
	}
	return NewPublisher(c.BrokerURL, source)
}
