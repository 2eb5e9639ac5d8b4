package transport

import (
	"context"
	"errors"
	"fmt"
)

// Transport errors.
var (
	ErrConnect        = errors.New("connect failed")
	ErrConnectTimeout = errors.New("connect timeout")
	ErrTransport      = errors.New("transport failure")
	ErrNotFound       = errors.New("service or characteristic not found")
	ErrClosed         = errors.New("connection closed")
	ErrAdapter        = errors.New("bluetooth adapter unavailable")
)

// ConnectError wraps a failed connection attempt with the peer address.
type ConnectError struct {
	Address string
	Err     error
}

// Error implements error.
func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.Address, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConnectError) Unwrap() error {
	return e.Err
}

// Is reports ErrConnect for every ConnectError and ErrConnectTimeout when
// the attempt ran out of time.
func (e *ConnectError) Is(target error) bool {
	switch target {
	case ErrConnect:
		return true
	case ErrConnectTimeout:
		return errors.Is(e.Err, context.DeadlineExceeded)
	}
	return false
}

// OpError wraps a failed GATT operation.
type OpError struct {
	Op             string
	Characteristic string
	Err            error
}

// Error implements error.
func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Characteristic, e.Err)
}

// Unwrap returns the underlying error.
func (e *OpError) Unwrap() error {
	return e.Err
}

// Is reports ErrTransport for every OpError.
func (e *OpError) Is(target error) bool {
	return target == ErrTransport
}
