package serial

import (
	bugst "go.bug.st/serial"
)

type bugstConn struct {
	bugst.Port
}

func openBugst(cfg *Config) (Conn, error) {
	port, err := bugst.Open(cfg.Device, &bugst.Mode{
		BaudRate: cfg.Baud,
		DataBits: 8,
		Parity:   bugst.NoParity,
		StopBits: bugst.OneStopBit,
	})
	if err != nil {
		return nil, err
	}
	if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
		port.Close()
		return nil, err
	}
	return &bugstConn{Port: port}, nil
}

// Flush implements Conn.
func (c *bugstConn) Flush() error {
	return c.Port.Drain()
}
