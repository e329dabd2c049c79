package framework

import (
	"fmt"
	"os"
	"strings"
	"syscall"
)

// AggregatedError collects the errors of the Runnables stopped together.
type AggregatedError struct {
	Errors []error
}

// Error implements error. A single error keeps its own message.
func (e *AggregatedError) Error() string {
	switch len(e.Errors) {
	case 0:
		return ""
	case 1:
		return e.Errors[0].Error()
	}
	msg := make([]string, 0, len(e.Errors)+1)
	msg = append(msg, fmt.Sprintf("%d errors:", len(e.Errors)))
	for _, err := range e.Errors {
		msg = append(msg, "  "+err.Error())
	}
	return strings.Join(msg, "\n")
}

// Unwrap allows errors.Is and errors.As to look at every error.
func (e *AggregatedError) Unwrap() []error {
	return e.Errors
}

// Add adds errors to be aggregated. nil will be skipped.
func (e *AggregatedError) Add(errs ...error) *AggregatedError {
	for _, err := range errs {
		if err != nil {
			e.Errors = append(e.Errors, err)
		}
	}
	return e
}

// Aggregate returns aggregated error if any error happened.
func (e *AggregatedError) Aggregate() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// InterruptedError is returned by Runner.Wait when a signal stopped
// the Runnables.
type InterruptedError struct {
	Signal os.Signal
	// Forced is set when a second signal abandoned the Runnables.
	Forced bool
}

// Error implements error.
func (e *InterruptedError) Error() string {
	if e.Forced {
		return fmt.Sprintf("interrupted by %v, forced exit", e.Signal)
	}
	return fmt.Sprintf("interrupted by %v", e.Signal)
}

// ExitCode follows the shell convention of 128 plus the signal number.
func (e *InterruptedError) ExitCode() int {
	if sig, ok := e.Signal.(syscall.Signal); ok {
		return 128 + int(sig)
	}
	return 1
}
