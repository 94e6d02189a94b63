package generator

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// InputError is a request rejected before it reaches the pipeline.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string { return e.Reason }

// UpstreamReason distinguishes text-generation failures.
type UpstreamReason string

const (
	UpstreamTimeout UpstreamReason = "timeout"
	UpstreamStatus  UpstreamReason = "status"
	UpstreamNetwork UpstreamReason = "network"
	UpstreamEmpty   UpstreamReason = "empty"
)

// UpstreamError wraps a failed call to the text-generation service.
type UpstreamError struct {
	Reason UpstreamReason
	// StatusCode is set for UpstreamStatus.
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s (%d): %v", e.Reason, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream %s: %v", e.Reason, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Timeout reports whether the call ran out of time.
func (e *UpstreamError) Timeout() bool { return e.Reason == UpstreamTimeout }

// asUpstream classifies err unless it already is an *UpstreamError.
func asUpstream(err error) *UpstreamError {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &UpstreamError{Reason: UpstreamTimeout, Err: err}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &UpstreamError{Reason: UpstreamTimeout, Err: err}
	}
	return &UpstreamError{Reason: UpstreamNetwork, Err: err}
}
