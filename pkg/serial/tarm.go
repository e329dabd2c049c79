package serial

import (
	"github.com/tarm/serial"
)

type tarmConn struct {
	*serial.Port
}

func openTarm(cfg *Config) (Conn, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, err
	}
	return &tarmConn{Port: port}, nil
}

// Flush implements Conn. tarm writes go straight to the tty and its
// own Flush discards pending data, so there is nothing to do.
func (c *tarmConn) Flush() error {
	return nil
}
