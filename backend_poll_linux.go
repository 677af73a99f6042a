//go:build linux

package ioloop

import (
	"fmt"
	"math"

	"golang.org/x/sys/unix"
)

// validateDescriptor reports ErrDescriptorOutOfRange if fd cannot be
// represented by unix.PollFd.Fd, which is an int32.
func validateDescriptor(fd Descriptor) error {
	if fd > Descriptor(math.MaxInt32) {
		return fmt.Errorf("%w: %d exceeds poll(2) fd range", ErrDescriptorOutOfRange, fd)
	}
	return nil
}

// pollMonitor is the per-FunctionEntry backend state for the poll(2)
// backend: which event bit this direction watches for.
type pollMonitor struct {
	events int16
}

// pollBackend is the Linux readiness backend, built on unix.Poll. It is
// the direct descendant of this engine's original poll(2)-based design:
// one BeginFunction per direction records POLLIN or POLLOUT, and each
// Wait iteration rebuilds the pollfd slice from the registry's live
// FunctionEntry set.
type pollBackend struct {
	fds []unix.PollFd
	fes []*FunctionEntry
}

func newBackend(capacityHint int) backend {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &pollBackend{
		fds: make([]unix.PollFd, 0, capacityHint),
		fes: make([]*FunctionEntry, 0, capacityHint),
	}
}

func (b *pollBackend) prepare() {
	b.fds = b.fds[:0]
	b.fes = b.fes[:0]
}

func (b *pollBackend) addMonitor(fe *FunctionEntry) bool {
	op := fe.Head()
	if op.Finished {
		return true
	}
	mon := fe.backend.(*pollMonitor)
	b.fds = append(b.fds, unix.PollFd{Fd: int32(fe.FD), Events: mon.events})
	b.fes = append(b.fes, fe)
	return false
}

func (b *pollBackend) await(timeoutMs int) bool {
	n, err := unix.Poll(b.fds, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return false
		}
		return false
	}
	return n > 0
}

func (b *pollBackend) ready(fe *FunctionEntry) bool {
	for i, candidate := range b.fes {
		if candidate == fe {
			return b.fds[i].Revents != 0
		}
	}
	return false
}

func (b *pollBackend) close() error {
	return nil
}

var readMethods = &Methods{
	BeginFunction: func(fe *FunctionEntry) {
		fe.backend = &pollMonitor{events: unix.POLLIN}
	},
	FinishOperation: finishUnixRead,
	InvokeCallback:  invokeReadCallback,
}

var writeMethods = &Methods{
	BeginFunction: func(fe *FunctionEntry) {
		fe.backend = &pollMonitor{events: unix.POLLOUT}
	},
	FinishOperation: finishUnixWrite,
	InvokeCallback:  invokeWriteCallback,
}
