package ctl

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/romner-set/arduino/pkg/display"
)

// testStream is a scripted Transport: injected bytes are returned by
// PollByte, every Write is recorded.
type testStream struct {
	lock     sync.Mutex
	inbound  []byte
	writes   [][]byte
	attempts int
	flushes  int
	writeErr error
	flushErr error
	readErr  error
}

func newTestStream(inbound ...byte) *testStream {
	return &testStream{inbound: inbound}
}

func (s *testStream) Write(p []byte) (int, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.attempts++
	if s.writeErr != nil {
		return 0, s.writeErr
	}
	s.writes = append(s.writes, append([]byte(nil), p...))
	return len(p), nil
}

func (s *testStream) Flush() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.flushes++
	return s.flushErr
}

func (s *testStream) PollByte() (byte, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if len(s.inbound) == 0 {
		if s.readErr != nil {
			return 0, false, s.readErr
		}
		return 0, false, nil
	}
	b := s.inbound[0]
	s.inbound = s.inbound[1:]
	return b, true, nil
}

func (s *testStream) inject(p ...byte) {
	s.lock.Lock()
	s.inbound = append(s.inbound, p...)
	s.lock.Unlock()
}

// sent returns all writes.
func (s *testStream) sent() [][]byte {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([][]byte(nil), s.writes...)
}

func codes(cs ...ControlCode) [][]byte {
	out := make([][]byte, len(cs))
	for n, c := range cs {
		out[n] = []byte{byte(c)}
	}
	return out
}

type testDisplay struct {
	monitors   []display.Monitor
	listErr    error
	failOn     string
	transforms []string
	geometries []string
}

func (d *testDisplay) Monitors(context.Context) ([]display.Monitor, error) {
	return d.monitors, d.listErr
}

func (d *testDisplay) SetTransform(ctx context.Context, name string, transform int) error {
	if d.failOn == "transform" {
		return errors.New("transform rejected")
	}
	d.transforms = append(d.transforms, fmt.Sprintf("%s,transform,%d", name, transform))
	return nil
}

func (d *testDisplay) SetGeometry(ctx context.Context, name string, g display.Geometry) error {
	if d.failOn == "geometry" {
		return errors.New("geometry rejected")
	}
	d.geometries = append(d.geometries, g.Rule(name))
	return nil
}

type testLayout struct {
	layouts []string
	err     error
}

func (l *testLayout) GotoLayout(ctx context.Context, name string) error {
	if l.err != nil {
		return l.err
	}
	l.layouts = append(l.layouts, name)
	return nil
}

type sessionTestEnv struct {
	stream  *testStream
	display *testDisplay
	layout  *testLayout
	session *Session
}

func newSessionTestEnv(commands ...string) *sessionTestEnv {
	conf := NewConfig()
	conf.Delay, conf.PollInterval = 0, 0
	env := &sessionTestEnv{
		stream: newTestStream(),
		display: &testDisplay{
			monitors: []display.Monitor{
				{Name: "DP-1", Transform: 0},
				{Name: "HDMI-A-1", Transform: 7},
			},
		},
		layout: &testLayout{},
	}
	env.session = NewSession(conf, env.stream, env.display, env.layout)
	env.session.Commands = commands
	return env
}
