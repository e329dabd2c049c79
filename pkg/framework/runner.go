package framework

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/golang/glog"
)

type namedRunnable struct {
	Runnable
	name string
}

func (r *namedRunnable) Name() string {
	return r.name
}

// NamedRun wraps a Runnable with a name.
func NamedRun(name string, runnable Runnable) Runnable {
	return &namedRunnable{name: name, Runnable: runnable}
}

// Runner runs Runnables on a shared context and stops all of them on
// the first interrupt.
type Runner struct {
	Context context.Context
	Runners []Runnable

	cancel context.CancelFunc
	errCh  chan error
	exitCh chan struct{}

	lock   sync.Mutex
	signal os.Signal
}

// NewRunner creates a runner with a cancelable background context.
func NewRunner() *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		Context: ctx,
		cancel:  cancel,
		errCh:   make(chan error, 1),
		exitCh:  make(chan struct{}),
	}
}

// HandleSignals interrupts the runner on SIGINT or SIGTERM. A second
// signal makes Wait return without waiting for the Runnables.
func (r *Runner) HandleSignals() *Runner {
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		r.Interrupt(<-sigCh)
		<-sigCh
		glog.Error("stop requested again, force exit")
		close(r.exitCh)
	}()
	return r
}

// Interrupt records sig and cancels the context of all Runnables.
// Only the first call has an effect.
func (r *Runner) Interrupt(sig os.Signal) {
	r.lock.Lock()
	first := r.signal == nil
	if first {
		r.signal = sig
	}
	r.lock.Unlock()
	if first {
		glog.Infof("%v received, stopping...", sig)
		r.cancel()
	}
}

// Signal returns the signal which interrupted the runner, if any.
func (r *Runner) Signal() os.Signal {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.signal
}

// Go spawns Runnables on the runner context.
func (r *Runner) Go(runners ...Runnable) *Runner {
	for _, runner := range runners {
		name := strconv.Itoa(len(r.Runners))
		if named, ok := runner.(Named); ok {
			name = named.Name()
		}
		r.Runners = append(r.Runners, runner)
		go func(runner Runnable, name string) {
			glog.V(4).Infof("Runner[%s] started", name)
			r.errCh <- runner.Run(r.Context)
			glog.V(4).Infof("Runner[%s] stopped", name)
		}(runner, name)
	}
	return r
}

// Wait waits until all Runnables stop. Cancellation caused by an
// interrupt is reported once as *InterruptedError, other errors are
// aggregated.
func (r *Runner) Wait() error {
	defer r.cancel()
	var errs AggregatedError
	interrupted := false
	for range r.Runners {
		select {
		case <-r.exitCh:
			return &InterruptedError{Signal: r.Signal(), Forced: true}
		case err := <-r.errCh:
			if errors.Is(err, context.Canceled) {
				if sig := r.Signal(); sig != nil && !interrupted {
					interrupted = true
					errs.Add(&InterruptedError{Signal: sig})
				}
				continue
			}
			errs.Add(err)
		}
	}
	return errs.Aggregate()
}

// RunWithContextCancel runs fn which doesn't accept a context.
// onCancel is called only when ctx is done and must make fn return.
func RunWithContextCancel(ctx context.Context, onCancel func(), fn func() error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- fn()
	}()
	select {
	case <-ctx.Done():
		if onCancel != nil {
			onCancel()
		}
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// RunWithContextCloser runs fn and closes closer either when ctx is
// done, which unblocks fn, or after fn returns. A close error is
// returned only when fn succeeded.
func RunWithContextCloser(ctx context.Context, closer io.Closer, fn func() error) error {
	var closed bool
	var closeErr error
	err := RunWithContextCancel(ctx, func() {
		closeErr, closed = closer.Close(), true
	}, fn)
	if !closed {
		closeErr = closer.Close()
	}
	if err == nil && closeErr != nil {
		return closeErr
	}
	return err
}
