package ctl

import (
	"fmt"
	"strings"
)

// ControlCode is a single reserved byte of the protocol.
type ControlCode byte

// The protocol alphabet.
const (
	EOT ControlCode = 0x04
	ENQ ControlCode = 0x05
	ACK ControlCode = 0x06
	STX ControlCode = 0x02
	ETX ControlCode = 0x03
	DLE ControlCode = 0x10
	DC1 ControlCode = 0x11
	DC2 ControlCode = 0x12
	DC3 ControlCode = 0x13
	DC4 ControlCode = 0x14
	NAK ControlCode = 0x15
	SYN ControlCode = 0x16
	SUB ControlCode = 0x1A
)

// ListenToken is the canonical name of the listen pseudo command.
// Any token starting with the same letter is treated as listen.
const ListenToken = "listen"

type codeInfo struct {
	code  ControlCode
	alias string
	name  string
	help  string
}

var codeTable = []codeInfo{
	{code: ENQ, alias: "ENQ", name: "query", help: "Send an ENQ to check the firmware's running status"},
	{code: DC2, alias: "DC2", name: "recalibrate", help: "Make the firmware recalibrate its IMU"},
	{code: DC1, alias: "DC1", name: "start", help: "Start the firmware"},
	{code: DC3, alias: "DC3", name: "stop", help: "Stop the firmware"},
	{code: DC4, alias: "DC4", name: "stop-all", help: "Stop the firmware and make it send EOT to all listeners"},
	{code: SYN, alias: "SYN", name: "test-comms", help: "Send a SYN to test comms"},
	{code: DLE, alias: "DLE", name: "ble-command", help: "Process the next command in BLE mode"},
	{code: STX, alias: "STX", name: "text-start", help: "Send STX and interpret commands until ETX as literal strings"},
	{code: ETX, alias: "ETX", name: "text-end", help: "End of text"},
	{code: ACK, alias: "ACK"},
	{code: NAK, alias: "NAK"},
	{code: EOT, alias: "EOT"},
	{code: SUB, alias: "SUB"},
}

var (
	byCode  = make(map[ControlCode]*codeInfo, len(codeTable))
	byToken = make(map[string]ControlCode, 2*len(codeTable))
)

func init() {
	for n := range codeTable {
		info := &codeTable[n]
		if _, exists := byCode[info.code]; exists {
			panic(fmt.Sprintf("duplicated control code 0x%02x", byte(info.code)))
		}
		byCode[info.code] = info
		byToken[info.alias] = info.code
		if info.name != "" {
			byToken[info.name] = info.code
		}
	}
}

// Codes returns all control codes in table order.
func Codes() []ControlCode {
	codes := make([]ControlCode, len(codeTable))
	for n, info := range codeTable {
		codes[n] = info.code
	}
	return codes
}

// Resolve looks up a command token, either the command name or the
// protocol alias. The match is case-sensitive.
func Resolve(token string) (ControlCode, bool) {
	c, ok := byToken[token]
	return c, ok
}

// IsListen reports whether the token requests the listen loop.
func IsListen(token string) bool {
	return strings.HasPrefix(token, ListenToken[:1])
}

// IsValid reports whether c belongs to the protocol alphabet.
func (c ControlCode) IsValid() bool {
	_, ok := byCode[c]
	return ok
}

// Alias returns the protocol alias, e.g. "DC1".
func (c ControlCode) Alias() string {
	if info := byCode[c]; info != nil {
		return info.alias
	}
	return fmt.Sprintf("0x%02x", byte(c))
}

// Name returns the command name, empty if the code is never sent by
// the operator.
func (c ControlCode) Name() string {
	if info := byCode[c]; info != nil {
		return info.name
	}
	return ""
}

// Help returns the command description.
func (c ControlCode) Help() string {
	if info := byCode[c]; info != nil {
		return info.help
	}
	return ""
}

// String implements fmt.Stringer.
func (c ControlCode) String() string {
	return c.Alias()
}

// IsOrientation reports whether c is one of DC1-DC4.
func (c ControlCode) IsOrientation() bool {
	return c >= DC1 && c <= DC4
}
