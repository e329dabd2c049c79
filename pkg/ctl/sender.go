package ctl

import (
	"fmt"

	"github.com/golang/glog"
)

// Payload is a sequence of bytes written in one send, with a label
// for status lines.
type Payload struct {
	Data  []byte
	Label string
}

// CodePayload creates the payload of a single control code.
func CodePayload(c ControlCode) Payload {
	return Payload{Data: []byte{byte(c)}, Label: c.Alias()}
}

// TextPayload creates a raw text payload.
func TextPayload(text string) Payload {
	return Payload{Data: []byte(text), Label: text}
}

// Sender writes payloads to the transport and reports the outcome.
// A failed send is logged and returned, it is up to the caller to
// carry on.
type Sender struct {
	Transport Transport
}

// NewSender creates a Sender.
func NewSender(t Transport) *Sender {
	return &Sender{Transport: t}
}

// Send writes and flushes the payload.
func (s *Sender) Send(p Payload) error {
	err := s.write(p.Data)
	if err != nil {
		glog.Errorf("Sending %s...error, couldn't send: %v", p.Label, err)
		return &SendError{Label: p.Label, Err: err}
	}
	glog.Infof("Sending %s...done", p.Label)
	return nil
}

// SendCode sends a single control code.
func (s *Sender) SendCode(c ControlCode) error {
	return s.Send(CodePayload(c))
}

// SendByte sends a single data byte.
func (s *Sender) SendByte(b byte, label string) error {
	return s.Send(Payload{Data: []byte{b}, Label: fmt.Sprintf("%s 0x%02x", label, b)})
}

func (s *Sender) write(data []byte) error {
	if s.Transport == nil {
		return ErrNoTransport
	}
	n, err := s.Transport.Write(data)
	if err != nil {
		return err
	}
	if n < len(data) {
		return ErrShortWrite
	}
	return s.Transport.Flush()
}
