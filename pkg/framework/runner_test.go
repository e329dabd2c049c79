package framework

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testCloser struct {
	closed int
	err    error
	ch     chan struct{}
}

func (c *testCloser) Close() error {
	c.closed++
	if c.ch != nil {
		close(c.ch)
		c.ch = nil
	}
	return c.err
}

func TestRunnerWait(t *testing.T) {
	errFailed := errors.New("failed")
	r := NewRunner().Go(
		NamedRun("ok", RunnableFunc(func(ctx context.Context) error { return nil })),
		NamedRun("canceled", RunnableFunc(func(ctx context.Context) error { return context.Canceled })),
		RunnableFunc(func(ctx context.Context) error { return errFailed }),
	)
	err := r.Wait()
	require.Error(t, err)
	aggr, ok := err.(*AggregatedError)
	require.True(t, ok)
	require.Equal(t, []error{errFailed}, aggr.Errors)
	require.Len(t, r.Runners, 3)
	require.Equal(t, "ok", r.Runners[0].(Named).Name())
}

func TestRunnerWaitNoError(t *testing.T) {
	require.NoError(t, NewRunner().Go(RunnableFunc(func(ctx context.Context) error {
		return nil
	})).Wait())
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Aggregate())
	require.Equal(t, "", errs.Error())
	errs.Add(nil, errors.New("a"), nil, errors.New("b"))
	require.Len(t, errs.Errors, 2)
	require.Equal(t, "2 errors:\n  a\n  b", errs.Aggregate().Error())

	errA := errors.New("a")
	single := (&AggregatedError{}).Add(errA)
	require.Equal(t, "a", single.Error())
	require.True(t, errors.Is(single, errA))
}

func TestRunnerInterrupt(t *testing.T) {
	r := NewRunner()
	started := make(chan struct{})
	r.Go(NamedRun("queue", RunnableFunc(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})))
	<-started
	r.Interrupt(syscall.SIGINT)
	r.Interrupt(syscall.SIGTERM)
	require.Equal(t, syscall.SIGINT, r.Signal())

	err := r.Wait()
	var interrupted *InterruptedError
	require.True(t, errors.As(err, &interrupted))
	require.Equal(t, syscall.SIGINT, interrupted.Signal)
	require.False(t, interrupted.Forced)
	require.Equal(t, 130, interrupted.ExitCode())
	require.Equal(t, "interrupted by interrupt", err.Error())
}

func TestRunnerCanceledWithoutSignal(t *testing.T) {
	require.NoError(t, NewRunner().Go(RunnableFunc(func(ctx context.Context) error {
		return context.Canceled
	})).Wait())
}

func TestRunWithContextCloserExit(t *testing.T) {
	closer := &testCloser{}
	errFn := errors.New("fn")
	err := RunWithContextCloser(context.Background(), closer, func() error { return errFn })
	require.Equal(t, errFn, err)
	require.Equal(t, 1, closer.closed)

	closer = &testCloser{err: errors.New("close")}
	err = RunWithContextCloser(context.Background(), closer, func() error { return nil })
	require.Equal(t, closer.err, err)
}

func TestRunWithContextCloserCancel(t *testing.T) {
	unblock := make(chan struct{})
	closer := &testCloser{ch: unblock}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := RunWithContextCloser(ctx, closer, func() error {
		<-unblock
		return errors.New("closed")
	})
	require.Equal(t, context.Canceled, err)
	require.Equal(t, 1, closer.closed)
}
