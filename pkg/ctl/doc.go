// Package ctl implements the control-code protocol spoken with the
// orientation sensor firmware.
package ctl

// The protocol is single-byte based and borrows its alphabet from the
// transmission control characters (ENQ, ACK, NAK, SYN, EOT, DC1-DC4, SUB,
// DLE, STX/ETX). There is no framing and no checksum: every byte on the
// line is either a control code or, between STX and ETX, raw text.
//
// Host -> firmware: operator commands (start, stop, query, ...) and
// text payloads.
// Firmware -> host: orientation changes (DC1-DC4), status queries (ENQ),
// link tests (SYN) and end of transmission (EOT).
