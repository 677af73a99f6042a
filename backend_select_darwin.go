//go:build darwin

package ioloop

import (
	"fmt"

	"golang.org/x/sys/unix"
)

const fdSetWordBits = 32

// fdSetSize mirrors Darwin's FD_SETSIZE: select(2) cannot monitor a
// descriptor at or above this value.
const fdSetSize = 1024

// validateDescriptor reports ErrDescriptorOutOfRange if fd falls outside
// the fixed-size bitmask select(2) uses.
func validateDescriptor(fd Descriptor) error {
	if fd >= Descriptor(fdSetSize) {
		return fmt.Errorf("%w: %d exceeds select(2) FD_SETSIZE", ErrDescriptorOutOfRange, fd)
	}
	return nil
}

func fdSet(set *unix.FdSet, fd int) {
	set.Bits[fd/fdSetWordBits] |= 1 << (uint(fd) % fdSetWordBits)
}

func fdIsSet(set *unix.FdSet, fd int) bool {
	return set.Bits[fd/fdSetWordBits]&(1<<(uint(fd)%fdSetWordBits)) != 0
}

// selectMonitor is the per-FunctionEntry backend state for the select(2)
// backend: which of the two engine-wide bitmasks this direction belongs
// to.
type selectMonitor struct {
	isWrite bool
}

// selectBackend is the Darwin readiness backend, built on unix.Select.
// Two bitmasks (read, write) are rebuilt from scratch every Wait
// iteration by prepare, exactly as the portable select(2)-based design
// this engine descends from did.
type selectBackend struct {
	readSet, writeSet   unix.FdSet
	readMax, writeMax   int
	fes                 []*FunctionEntry
}

func newBackend(capacityHint int) backend {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &selectBackend{fes: make([]*FunctionEntry, 0, capacityHint)}
}

func (b *selectBackend) prepare() {
	b.readSet = unix.FdSet{}
	b.writeSet = unix.FdSet{}
	b.readMax = 0
	b.writeMax = 0
	b.fes = b.fes[:0]
}

func (b *selectBackend) addMonitor(fe *FunctionEntry) bool {
	op := fe.Head()
	if op.Finished {
		return true
	}
	mon := fe.backend.(*selectMonitor)
	fd := int(fe.FD)
	if mon.isWrite {
		fdSet(&b.writeSet, fd)
		if fd+1 > b.writeMax {
			b.writeMax = fd + 1
		}
	} else {
		fdSet(&b.readSet, fd)
		if fd+1 > b.readMax {
			b.readMax = fd + 1
		}
	}
	b.fes = append(b.fes, fe)
	return false
}

func (b *selectBackend) await(timeoutMs int) bool {
	nfd := b.readMax
	if b.writeMax > nfd {
		nfd = b.writeMax
	}
	tv := unix.NsecToTimeval(int64(timeoutMs) * int64(1e6))
	n, err := unix.Select(nfd, &b.readSet, &b.writeSet, nil, &tv)
	if err != nil {
		return false
	}
	return n > 0
}

func (b *selectBackend) ready(fe *FunctionEntry) bool {
	mon := fe.backend.(*selectMonitor)
	fd := int(fe.FD)
	if mon.isWrite {
		return fdIsSet(&b.writeSet, fd)
	}
	return fdIsSet(&b.readSet, fd)
}

func (b *selectBackend) close() error {
	return nil
}

var readMethods = &Methods{
	BeginFunction: func(fe *FunctionEntry) {
		fe.backend = &selectMonitor{isWrite: false}
	},
	FinishOperation: finishUnixRead,
	InvokeCallback:  invokeReadCallback,
}

var writeMethods = &Methods{
	BeginFunction: func(fe *FunctionEntry) {
		fe.backend = &selectMonitor{isWrite: true}
	},
	FinishOperation: finishUnixWrite,
	InvokeCallback:  invokeWriteCallback,
}
