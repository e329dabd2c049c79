// Package serial opens the serial link to the firmware.
package serial

import (
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
)

// Conn represents an opened serial device.
// This abstraction allows for different implementations:
// - github.com/tarm/serial (non-exclusive, decisecond timeouts)
// - go.bug.st/serial (exclusive, millisecond timeouts, real drain)
// - in-memory streams for testing
type Conn interface {
	io.ReadWriteCloser

	// Flush blocks until written data is transmitted.
	Flush() error
}

// OpenError is returned when the device cannot be opened.
type OpenError struct {
	Device string
	Err    error
}

// Error implements error.
func (e *OpenError) Error() string {
	return fmt.Sprintf("failed to open serial port %s: %v", e.Device, e.Err)
}

// Unwrap returns the driver error.
func (e *OpenError) Unwrap() error { return e.Err }

// Port is a byte link over a Conn. It polls one byte at a time using
// the read timeout of the device.
type Port struct {
	conn Conn
	buf  [1]byte
}

// Open opens the device with the configured driver.
func Open(cfg *Config) (*Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	var conn Conn
	var err error
	switch cfg.Driver {
	case DriverTarm, "":
		conn, err = openTarm(cfg)
	case DriverBugst:
		conn, err = openBugst(cfg)
	default:
		err = fmt.Errorf("unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, &OpenError{Device: cfg.Device, Err: err}
	}
	glog.V(1).Infof("serial %s opened (driver=%s baud=%d)", cfg.Device, cfg.Driver, cfg.Baud)
	return NewPort(conn), nil
}

// NewPort wraps an opened Conn.
func NewPort(conn Conn) *Port {
	return &Port{conn: conn}
}

// Write writes data to the device.
func (p *Port) Write(b []byte) (int, error) {
	return p.conn.Write(b)
}

// Flush flushes written data.
func (p *Port) Flush() error {
	return p.conn.Flush()
}

// PollByte reads one byte if available within the read timeout.
func (p *Port) PollByte() (byte, bool, error) {
	n, err := p.conn.Read(p.buf[:])
	if n > 0 {
		glog.V(3).Infof("serial read 0x%02x", p.buf[0])
		return p.buf[0], true, nil
	}
	// tarm reports an expired timeout as io.EOF, go.bug.st as (0, nil).
	if err == nil || err == io.EOF || os.IsTimeout(err) {
		return 0, false, nil
	}
	return 0, false, err
}

// Close closes the device.
func (p *Port) Close() error {
	return p.conn.Close()
}
