package ctl

import "io"

// Transport is the byte link to the firmware.
type Transport interface {
	io.Writer
	// Flush pushes buffered output to the device.
	Flush() error
	// PollByte reads one byte if one is available. ok is false when
	// nothing was received within the transport's read timeout.
	PollByte() (b byte, ok bool, err error)
}
