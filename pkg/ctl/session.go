package ctl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/romner-set/arduino/pkg/display"
	"github.com/romner-set/arduino/pkg/layout"
)

// State is the session state.
type State int

const (
	// StateDispatching processes operator commands.
	StateDispatching State = iota
	// StateListening reacts to bytes from the firmware until EOT.
	StateListening
)

// ErrListening is returned by Exec after the session started listening.
var ErrListening = errors.New("session is listening")

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateDispatching:
		return "dispatching"
	case StateListening:
		return "listening"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Session drives one connection to the firmware: it sends the queued
// commands and, when asked to, listens until EOT.
type Session struct {
	Config     *Config
	Transport  Transport
	Engine     *Engine
	Sender     *Sender
	Dispatcher *Dispatcher
	// Commands are processed in order by Run.
	Commands []string

	state State
}

// NewSession creates a Session.
func NewSession(conf *Config, t Transport, disp display.Service, lay layout.Service) *Session {
	sender := NewSender(t)
	return &Session{
		Config:    conf,
		Transport: t,
		Engine:    NewEngine(),
		Sender:    sender,
		Dispatcher: &Dispatcher{
			Config:  conf,
			Display: disp,
			Layout:  lay,
			Sender:  sender,
		},
	}
}

// State gets the current state.
func (s *Session) State() State {
	return s.state
}

// Run implements Runnable. It returns nil when the commands are
// exhausted or EOT is received.
func (s *Session) Run(ctx context.Context) error {
	for _, token := range s.Commands {
		done, err := s.Exec(ctx, token)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return nil
}

// Exec handles a single command token. done is true when the session
// ended with EOT. Nothing is sent once ctx is done.
func (s *Session) Exec(ctx context.Context, token string) (done bool, err error) {
	if s.state == StateListening {
		return false, ErrListening
	}
	if err = ctx.Err(); err != nil {
		return false, err
	}
	out, err := s.Engine.HandleOutbound(token)
	if err != nil {
		return false, err
	}
	if out.Listen {
		if err = s.Listen(ctx); err != nil {
			return false, err
		}
		return true, nil
	}
	for _, p := range out.Payloads {
		s.Sender.Send(p)
	}
	return false, pause(ctx, s.Config.Delay)
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Listen reacts to received bytes until EOT, a read error, an
// actuator failure or ctx is done. There is no way back to
// dispatching.
func (s *Session) Listen(ctx context.Context) error {
	s.state = StateListening
	glog.Info("Listening...")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		b, ok, err := s.Transport.PollByte()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if !ok {
			if err = pause(ctx, s.Config.PollInterval); err != nil {
				return err
			}
			continue
		}
		exit, err := s.Dispatcher.Dispatch(ctx, s.Engine.HandleInbound(b))
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
	}
}
