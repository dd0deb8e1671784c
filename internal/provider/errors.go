package provider

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies a failed provider call. The aggregation layer records
// the kind in partial-failure manifests and maps it to HTTP status codes for
// single-tenant operations.
type ErrorKind string

const (
	KindNetwork           ErrorKind = "network"
	KindUnauthorized      ErrorKind = "unauthorized"
	KindTimeout           ErrorKind = "timeout"
	KindMalformedResponse ErrorKind = "malformed_response"
)

// CallError is the typed failure of one tenant-scoped provider call. It is a
// value the caller inspects, never a fault that unwinds the aggregation.
type CallError struct {
	Op         string
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *CallError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Op, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// KindOf extracts the error kind from a provider call error. Unclassified
// errors report as network failures.
func KindOf(err error) ErrorKind {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindNetwork
}

func newCallError(op string, kind ErrorKind, status int, err error) *CallError {
	return &CallError{Op: op, Kind: kind, StatusCode: status, Err: err}
}

// classifyTransport maps a transport-level error to a CallError.
func classifyTransport(op string, err error) *CallError {
	if errors.Is(err, context.DeadlineExceeded) {
		return newCallError(op, KindTimeout, 0, err)
	}
	return newCallError(op, KindNetwork, 0, err)
}

// classifyStatus maps a non-2xx HTTP status to a CallError.
func classifyStatus(op string, status int, err error) *CallError {
	if status == 401 || status == 403 {
		return newCallError(op, KindUnauthorized, status, err)
	}
	return newCallError(op, KindNetwork, status, err)
}
