package ctl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSenderSend(t *testing.T) {
	s := newTestStream()
	sender := NewSender(s)
	require.NoError(t, sender.SendCode(ACK))
	require.NoError(t, sender.SendByte(65, "angle threshold"))
	require.NoError(t, sender.Send(TextPayload("hi")))
	require.Equal(t, [][]byte{{byte(ACK)}, {65}, []byte("hi")}, s.sent())
	require.Equal(t, 3, s.flushes)
}

func TestSenderFailures(t *testing.T) {
	s := newTestStream()
	s.writeErr = errors.New("link down")
	sender := NewSender(s)
	err := sender.SendCode(SYN)
	require.Error(t, err)
	var sendErr *SendError
	require.True(t, errors.As(err, &sendErr))
	require.Equal(t, "SYN", sendErr.Label)
	require.Equal(t, s.writeErr, errors.Unwrap(err))

	s.writeErr, s.flushErr = nil, errors.New("flush failed")
	err = sender.SendCode(SYN)
	require.True(t, errors.As(err, &sendErr))
	require.Equal(t, s.flushErr, sendErr.Err)

	err = NewSender(nil).SendCode(SYN)
	require.True(t, errors.Is(err, ErrNoTransport))
}

type shortWriter struct{ testStream }

func (w *shortWriter) Write(p []byte) (int, error) { return len(p) - 1, nil }

func TestSenderShortWrite(t *testing.T) {
	err := NewSender(&shortWriter{}).Send(TextPayload("abc"))
	require.True(t, errors.Is(err, ErrShortWrite))
}
