package ctl

// Outbound is the result of handling one operator command.
type Outbound struct {
	// Payloads are sent in order.
	Payloads []Payload
	// Listen requests the listen loop. No payload is sent.
	Listen bool
}

// InboundKind tells the dispatcher what to do with a received byte.
type InboundKind int

const (
	// InboundNotice is only logged.
	InboundNotice InboundKind = iota
	// InboundReply is answered with Replies.
	InboundReply
	// InboundQuery asks for the side monitor orientation.
	InboundQuery
	// InboundRotate applies an orientation change.
	InboundRotate
	// InboundExit is answered with Replies and ends the session.
	InboundExit
	// InboundUnrecognized is logged and answered with Replies.
	InboundUnrecognized
)

// Inbound is the result of handling one received byte.
type Inbound struct {
	Kind InboundKind
	// Code is the received byte.
	Code ControlCode
	// Replies are sent in order after the action is executed.
	Replies []ControlCode
	// Orientation is the requested orientation (0-3) for InboundRotate.
	Orientation byte
}

// Engine is the protocol state machine. It only decides, sending and
// side effects are left to the Session and the Dispatcher.
type Engine struct {
	textMode bool
}

// NewEngine creates an Engine outside text mode.
func NewEngine() *Engine {
	return &Engine{}
}

// TextMode reports whether the engine is between STX and ETX.
func (e *Engine) TextMode() bool {
	return e.textMode
}

// HandleOutbound handles one command token.
func (e *Engine) HandleOutbound(token string) (out Outbound, err error) {
	if e.textMode {
		out.Payloads = append(out.Payloads, TextPayload(token))
		if c, ok := Resolve(token); ok && c == ETX {
			e.textMode = false
			out.Payloads = append(out.Payloads, CodePayload(ETX))
		}
		return
	}

	if IsListen(token) {
		out.Listen = true
		return
	}

	c, ok := Resolve(token)
	if !ok {
		err = &UnknownCommandError{Token: token}
		return
	}
	if c == STX {
		e.textMode = true
	}
	out.Payloads = append(out.Payloads, CodePayload(c))
	return
}

// HandleInbound handles one byte received while listening.
func (e *Engine) HandleInbound(b byte) (in Inbound) {
	in.Code = ControlCode(b)
	switch c := in.Code; {
	case c == ACK, c == NAK, c == SUB:
		in.Kind = InboundNotice
	case c == ENQ:
		in.Kind = InboundQuery
	case c == SYN:
		in.Kind, in.Replies = InboundReply, []ControlCode{ACK}
	case c == EOT:
		in.Kind, in.Replies = InboundExit, []ControlCode{ACK}
	case c.IsOrientation():
		in.Kind, in.Replies = InboundRotate, []ControlCode{ACK}
		in.Orientation = b - byte(DC1)
	default:
		in.Kind, in.Replies = InboundUnrecognized, []ControlCode{SUB}
	}
	return
}
