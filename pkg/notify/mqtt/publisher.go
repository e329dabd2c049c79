// Package mqtt publishes orientation events to an MQTT broker.
//
// Topics, relative to the prefix taken from the broker URL path:
//
//	<source>/status       retained "online"/"offline", offline is the last will
//	<source>/orientation  one message per applied orientation change
//	<source>/query        one message per answered ENQ
//
// Event payloads are serialized google.protobuf.Struct messages.
package mqtt

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/romner-set/arduino/pkg/notify"
)

// Status payloads.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// DefaultTimeout bounds connect and publish.
const DefaultTimeout = 2 * time.Second

var (
	// ErrTimeout indicates the broker did not complete an operation in time.
	ErrTimeout = errors.New("mqtt timeout")
	// ErrOffline is returned by Notify while the broker is unreachable.
	ErrOffline = errors.New("mqtt broker offline")
)

type publishClient interface {
	PubWith(topic string, payload []byte, qos byte, retain bool) paho.Token
}

// Publisher implements notify.Notifier over MQTT.
type Publisher struct {
	Queue   *Queue
	Source  string
	Timeout time.Duration

	pub    publishClient
	online int32
}

// NewPublisher creates a Publisher. The connection is not made until
// Connect.
func NewPublisher(brokerURL, source string) (*Publisher, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	opts.SetBinaryWill(topicPrefix+source+"/status", []byte(StatusOffline), 1, true)
	if opts.ClientID == "" {
		opts.SetClientID(clientID(source))
	}
	p := &Publisher{
		Queue:   NewQueue(opts, topicPrefix),
		Source:  source,
		Timeout: DefaultTimeout,
	}
	p.pub = p.Queue
	p.Queue.OnConnect = func(*Queue) {
		atomic.StoreInt32(&p.online, 1)
		p.publishStatus(StatusOnline)
	}
	p.Queue.OnDisconnect = func(*Queue) {
		atomic.StoreInt32(&p.online, 0)
		glog.Warning("mqtt events dropped until the broker is back")
	}
	return p, nil
}

// Connect connects to the broker.
func (p *Publisher) Connect(ctx context.Context) error {
	if err := p.wait(ctx, p.Queue.Connect()); err != nil {
		return err
	}
	atomic.StoreInt32(&p.online, 1)
	return nil
}

// Online reports whether the broker connection is up.
func (p *Publisher) Online() bool {
	return atomic.LoadInt32(&p.online) != 0
}

// Notify implements notify.Notifier. Events are dropped without
// waiting while the broker is offline.
func (p *Publisher) Notify(ctx context.Context, ev *notify.Event) error {
	if !p.Online() {
		return ErrOffline
	}
	if ev.Source == "" {
		ev.Source = p.Source
	}
	payload, err := ev.Marshal()
	if err != nil {
		return err
	}
	return p.wait(ctx, p.pub.PubWith(p.Source+"/"+ev.Kind, payload, 1, false))
}

// Close implements io.Closer. The last will reports offline when the
// broker is unreachable.
func (p *Publisher) Close() error {
	var err error
	if p.Online() {
		err = p.publishStatus(StatusOffline)
	}
	p.Queue.Close()
	return err
}

func (p *Publisher) publishStatus(status string) error {
	return p.wait(context.Background(), p.pub.PubWith(p.Source+"/status", []byte(status), 1, true))
}

func (p *Publisher) wait(ctx context.Context, token paho.Token) error {
	timeout := p.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); d < timeout {
			timeout = d
		}
	}
	if !token.WaitTimeout(timeout) {
		return ErrTimeout
	}
	return token.Error()
}

func clientID(source string) string {
	id := "inoctl-" + source
	// MQTT 3.1 brokers reject client ids longer than 23 bytes.
	if len(id) > 23 {
		id = id[:23]
	}
	return id
}
