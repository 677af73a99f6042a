package ioloop

import "errors"

// Sentinel errors logged by Engine methods. Use [errors.Is] to test for
// these across a wrapped cause chain (ErrDescriptorOutOfRange and
// ErrAllocationFailed are logged wrapped with fmt.Errorf("%w: ..."), while
// ErrBackendClosed is logged as is).
var (
	// ErrDescriptorOutOfRange is logged when a Descriptor value cannot be
	// represented by the active readiness backend (e.g. it overflows the
	// int32 fd space poll(2)/select(2) use, or select(2)'s FD_SETSIZE).
	// See validateDescriptor in each backend_*.go file.
	ErrDescriptorOutOfRange = errors.New("ioloop: descriptor out of range")

	// ErrBackendClosed is logged when Read, Write, AbsoluteAlarm, or
	// RelativeAlarm is called after Engine.Close.
	ErrBackendClosed = errors.New("ioloop: backend closed")

	// ErrAllocationFailed is logged when an operation's submission could
	// not reserve backend resources; see Engine.submit.
	ErrAllocationFailed = errors.New("ioloop: failed to allocate operation")
)
