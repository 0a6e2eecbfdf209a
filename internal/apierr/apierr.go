// Package apierr defines the error taxonomy shared by the outbound clients:
// network failures, per-call deadline expiry, and device positioning errors.
package apierr

import (
	"context"
	"errors"
	"fmt"
	"net"
)

type Kind int

const (
	KindNetwork Kind = iota
	KindTimeout
	KindGeolocation
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindGeolocation:
		return "geolocation"
	default:
		return "unknown"
	}
}

// Error carries the failure kind alongside the operation that produced it.
// Status is the HTTP status code for network errors, zero otherwise.
type Error struct {
	Kind   Kind
	Op     string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s error (status %d)", e.Op, e.Kind, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func Network(op string, status int, err error) *Error {
	return &Error{Kind: KindNetwork, Op: op, Status: status, Err: err}
}

func Timeout(op string, err error) *Error {
	return &Error{Kind: KindTimeout, Op: op, Err: err}
}

func Geolocation(op string, err error) *Error {
	return &Error{Kind: KindGeolocation, Op: op, Err: err}
}

// Wrap classifies a transport error as timeout or network. Context deadline
// expiry and net.Error timeouts both map to the timeout kind.
func Wrap(op string, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout(op, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Timeout(op, err)
	}
	return Network(op, 0, err)
}

func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func IsNetwork(err error) bool     { return IsKind(err, KindNetwork) }
func IsTimeout(err error) bool     { return IsKind(err, KindTimeout) }
func IsGeolocation(err error) bool { return IsKind(err, KindGeolocation) }
