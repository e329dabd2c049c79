// Package notify publishes orientation changes to other programs.
package notify

import (
	"context"
	"os"
	"time"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/protobuf/proto"
	structpb "github.com/golang/protobuf/ptypes/struct"
)

// Event kinds.
const (
	KindOrientation = "orientation"
	KindQuery       = "query"
)

// Event describes something the listen loop did on the displays.
type Event struct {
	Kind    string
	Source  string
	Monitor string
	// Orientation is the rotation code, 0-3.
	Orientation int
	Layout      string
	Time        time.Time
}

// Notifier delivers events.
type Notifier interface {
	Notify(context.Context, *Event) error
}

// NotifyFunc is func type of Notifier.
type NotifyFunc func(context.Context, *Event) error

// Notify implements Notifier.
func (f NotifyFunc) Notify(ctx context.Context, ev *Event) error {
	return f(ctx, ev)
}

// DefaultSource identifies this host in events.
func DefaultSource() string {
	if id, err := machineid.ProtectedID("inoctl"); err == nil {
		return id
	}
	if name, err := os.Hostname(); err == nil {
		return name
	}
	return "unknown"
}

// Struct converts the event to a protobuf Struct.
func (e *Event) Struct() *structpb.Struct {
	fields := map[string]*structpb.Value{
		"kind":        stringValue(e.Kind),
		"source":      stringValue(e.Source),
		"monitor":     stringValue(e.Monitor),
		"orientation": {Kind: &structpb.Value_NumberValue{NumberValue: float64(e.Orientation)}},
		"time":        {Kind: &structpb.Value_NumberValue{NumberValue: float64(e.Time.UnixNano() / int64(time.Millisecond))}},
	}
	if e.Layout != "" {
		fields["layout"] = stringValue(e.Layout)
	}
	return &structpb.Struct{Fields: fields}
}

// Marshal encodes the event as a serialized protobuf Struct.
func (e *Event) Marshal() ([]byte, error) {
	return proto.Marshal(e.Struct())
}

// Unmarshal decodes an event encoded by Marshal.
func Unmarshal(data []byte) (*Event, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	ev := &Event{
		Kind:    s.Fields["kind"].GetStringValue(),
		Source:  s.Fields["source"].GetStringValue(),
		Monitor: s.Fields["monitor"].GetStringValue(),
		Layout:  s.Fields["layout"].GetStringValue(),

		Orientation: int(s.Fields["orientation"].GetNumberValue()),
	}
	if ms := int64(s.Fields["time"].GetNumberValue()); ms != 0 {
		ev.Time = time.Unix(0, ms*int64(time.Millisecond))
	}
	return ev, nil
}

func stringValue(s string) *structpb.Value {
	return &structpb.Value{Kind: &structpb.Value_StringValue{StringValue: s}}
}
