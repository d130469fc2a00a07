package model

import (
	"errors"
	"fmt"
)

// Error taxonomy for the pipeline. UnsupportedEvent and configuration
// errors are fatal before the scanner runs; a report parse error is fatal
// after it ran; channel failures are always recovered locally.
var (
	// ErrUnsupportedEvent means the raw event name is outside the closed
	// set of supported triggers.
	ErrUnsupportedEvent = errors.New("unsupported event")

	// ErrConfiguration means a required environment value was absent or
	// invalid for the requested feature.
	ErrConfiguration = errors.New("configuration error")

	// ErrReportParse means the scanner signalled findings but its report
	// was missing or malformed; there is nothing valid to report.
	ErrReportParse = errors.New("report parse error")
)

// ExecutionError is a scanner process failure or timeout. It carries the
// raw exit status so the final process status can mirror it.
type ExecutionError struct {
	ExitStatus int
	Cause      error
}

func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scanner execution failed with status %d: %v", e.ExitStatus, e.Cause)
	}
	return fmt.Sprintf("scanner execution failed with status %d", e.ExitStatus)
}

func (e *ExecutionError) Unwrap() error { return e.Cause }

// ChannelFailure wraps a reporting channel error. It is logged as a
// warning and recorded in the channel's DispatchResult, never escalated.
type ChannelFailure struct {
	Channel Channel
	Cause   error
}

func (e *ChannelFailure) Error() string {
	return fmt.Sprintf("%s channel failed: %v", e.Channel, e.Cause)
}

func (e *ChannelFailure) Unwrap() error { return e.Cause }
