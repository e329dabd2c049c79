package ctl

import (
	"context"
	"time"

	"github.com/golang/glog"

	"github.com/romner-set/arduino/pkg/display"
	"github.com/romner-set/arduino/pkg/layout"
	"github.com/romner-set/arduino/pkg/notify"
)

// Orientation is the side monitor state reported on ENQ.
type Orientation struct {
	Monitor   string
	Transform int
	// Code is Transform reduced to 0-3.
	Code      byte
	Threshold byte
}

// arrangement is the main monitor position and terminal layout for
// an orientation, indexed by orientation code % 2.
type arrangement struct {
	position string
	layout   string
}

var arrangements = [2]arrangement{
	{position: "1920x0", layout: layout.Grid},
	{position: "1080x400", layout: layout.Vertical},
}

// Dispatcher executes inbound actions.
type Dispatcher struct {
	Config   *Config
	Display  display.Service
	Layout   layout.Service
	Sender   *Sender
	Notifier notify.Notifier
}

// Dispatch executes the action. exit is true when the session ends.
// Only actuator failures are returned, everything else is logged and
// answered on the link. Events are published after the replies are
// sent.
func (d *Dispatcher) Dispatch(ctx context.Context, in Inbound) (exit bool, err error) {
	var ev *notify.Event
	switch in.Kind {
	case InboundNotice, InboundReply:
		glog.Infof("%s received.", in.Code)
	case InboundQuery:
		glog.Infof("%s received.", in.Code)
		ev = d.answerQuery(ctx)
	case InboundExit:
		glog.Infof("%s received.", in.Code)
		exit = true
	case InboundRotate:
		glog.Infof("%s received, rotating monitor...", in.Code)
		if ev, err = d.ApplyOrientation(ctx, in.Orientation); err != nil {
			glog.Errorf("Rotating monitor...error: %v", err)
			return
		}
		glog.Info("Rotating monitor...done")
	case InboundUnrecognized:
		glog.Errorf("error, %v.", &UnrecognizedCodeError{Code: byte(in.Code)})
	}
	d.reply(in.Replies...)
	if ev != nil {
		d.notify(ctx, ev)
	}
	return
}

// QueryOrientation reads the side monitor orientation.
func (d *Dispatcher) QueryOrientation(ctx context.Context) (o Orientation, err error) {
	monitors, err := d.Display.Monitors(ctx)
	if err != nil {
		err = &QueryError{Err: err}
		return
	}
	m, ok := display.Find(monitors, d.Config.SideMonitor)
	if !ok {
		err = &MonitorNotFoundError{Name: d.Config.SideMonitor}
		return
	}
	o.Monitor, o.Transform = m.Name, m.Transform
	o.Code = byte(m.Transform % 4)
	o.Threshold = byte(d.Config.Threshold)
	return
}

// ApplyOrientation rotates the side monitor, moves the main monitor
// and switches the terminal layout. code must be 0-3. The returned
// event describes the applied orientation.
func (d *Dispatcher) ApplyOrientation(ctx context.Context, code byte) (*notify.Event, error) {
	arr := arrangements[code%2]
	if err := d.Display.SetTransform(ctx, d.Config.SideMonitor, int(code)); err != nil {
		return nil, &ActuatorError{Op: "set transform of " + d.Config.SideMonitor, Err: err}
	}
	geometry := display.Geometry{
		Mode:     d.Config.MainMode,
		Position: arr.position,
		Scale:    d.Config.MainScale,
	}
	if err := d.Display.SetGeometry(ctx, d.Config.MainMonitor, geometry); err != nil {
		return nil, &ActuatorError{Op: "set geometry of " + d.Config.MainMonitor, Err: err}
	}
	if err := d.Layout.GotoLayout(ctx, arr.layout); err != nil {
		return nil, &ActuatorError{Op: "goto layout " + arr.layout, Err: err}
	}
	return &notify.Event{
		Kind:        notify.KindOrientation,
		Monitor:     d.Config.SideMonitor,
		Orientation: int(code),
		Layout:      arr.layout,
	}, nil
}

func (d *Dispatcher) answerQuery(ctx context.Context) *notify.Event {
	glog.Info("Getting monitor data...")
	o, err := d.QueryOrientation(ctx)
	if err != nil {
		glog.Errorf("Getting monitor data...error, %v", err)
		d.reply(NAK)
		return nil
	}
	glog.Info("Getting monitor data...done")
	d.reply(ACK)
	d.Sender.SendByte(o.Code, "monitor orientation")
	d.Sender.SendByte(o.Threshold, "angle threshold")
	return &notify.Event{
		Kind:        notify.KindQuery,
		Monitor:     o.Monitor,
		Orientation: int(o.Code),
	}
}

func (d *Dispatcher) reply(codes ...ControlCode) {
	for _, c := range codes {
		d.Sender.SendCode(c)
	}
}

func (d *Dispatcher) notify(ctx context.Context, ev *notify.Event) {
	if d.Notifier == nil {
		return
	}
	ev.Time = time.Now()
	if err := d.Notifier.Notify(ctx, ev); err != nil {
		glog.Warningf("notify %s: %v", ev.Kind, err)
	}
}
