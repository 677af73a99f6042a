//go:build windows

package ioloop

import (
	"time"

	"golang.org/x/sys/windows"
)

// handleMonitor is the per-FunctionEntry backend state for the
// handle-event backend: a lazily-created manual-reset event plus the
// OVERLAPPED structure ReadFile/WriteFile populate against it.
type handleMonitor struct {
	event      windows.Handle
	overlapped windows.Overlapped
}

// handleBackend is the Windows readiness backend. Each pending read or
// write is issued eagerly (overlapped I/O), and Wait blocks on the set of
// live event handles via WaitForMultipleObjects — the direct generalization
// of this engine's handle-event design to an arbitrary descriptor count.
type handleBackend struct {
	handles []windows.Handle
	fes     []*FunctionEntry
}

func newBackend(capacityHint int) backend {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &handleBackend{
		handles: make([]windows.Handle, 0, capacityHint),
		fes:     make([]*FunctionEntry, 0, capacityHint),
	}
}

// validateDescriptor always succeeds: a Descriptor on Windows is a HANDLE
// value, which already fits the uintptr Descriptor is defined over, so
// there is no narrower range to violate.
func validateDescriptor(Descriptor) error {
	return nil
}

func (b *handleBackend) prepare() {
	b.handles = b.handles[:0]
	b.fes = b.fes[:0]
}

func (b *handleBackend) addMonitor(fe *FunctionEntry) bool {
	op := fe.Head()
	if op.Finished {
		return true
	}
	mon := fe.backend.(*handleMonitor)
	b.handles = append(b.handles, mon.event)
	b.fes = append(b.fes, fe)
	return false
}

func (b *handleBackend) await(timeoutMs int) bool {
	if len(b.handles) == 0 {
		time.Sleep(time.Duration(timeoutMs) * time.Millisecond)
		return false
	}
	result, err := windows.WaitForMultipleObjects(b.handles, false, uint32(timeoutMs))
	if err != nil {
		return false
	}
	return result >= windows.WAIT_OBJECT_0 && result < windows.WAIT_OBJECT_0+uint32(len(b.handles))
}

func (b *handleBackend) ready(fe *FunctionEntry) bool {
	mon := fe.backend.(*handleMonitor)
	result, err := windows.WaitForSingleObject(mon.event, 0)
	return err == nil && result == windows.WAIT_OBJECT_0
}

func (b *handleBackend) close() error {
	return nil
}

func allocateEvent(mon *handleMonitor) error {
	if mon.event != windows.InvalidHandle {
		return windows.ResetEvent(mon.event)
	}
	event, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		return err
	}
	mon.event = event
	return nil
}

// setTransferResult interprets the outcome of a ReadFile/WriteFile/
// GetOverlappedResult call, shared by both directions.
func setTransferResult(op *OperationEntry, n uint32, err error) {
	ext := op.Extension
	if err == nil {
		ext.length += int(n)
		op.Finished = true
		return
	}
	if err == windows.ERROR_IO_PENDING {
		return // still in flight; Finished stays false.
	}
	if err == windows.ERROR_HANDLE_EOF || err == windows.ERROR_BROKEN_PIPE {
		ext.end = true
	} else {
		op.Err = err
	}
	op.Finished = true
}

func startRead(op *OperationEntry) {
	fe := op.Function
	ext := op.Extension
	mon := fe.backend.(*handleMonitor)
	if err := allocateEvent(mon); err != nil {
		op.Err = err
		op.Finished = true
		return
	}
	mon.overlapped.HEvent = mon.event

	var n uint32
	err := windows.ReadFile(windows.Handle(fe.FD), ext.buf[ext.length:ext.size], &n, &mon.overlapped)
	setTransferResult(op, n, err)
}

func startWrite(op *OperationEntry) {
	fe := op.Function
	ext := op.Extension
	mon := fe.backend.(*handleMonitor)
	if err := allocateEvent(mon); err != nil {
		op.Err = err
		op.Finished = true
		return
	}
	mon.overlapped.HEvent = mon.event

	var n uint32
	err := windows.WriteFile(windows.Handle(fe.FD), ext.buf[ext.length:ext.size], &n, &mon.overlapped)
	setTransferResult(op, n, err)
}

func finishTransfer(op *OperationEntry) {
	fe := op.Function
	mon := fe.backend.(*handleMonitor)
	var n uint32
	err := windows.GetOverlappedResult(windows.Handle(fe.FD), &mon.overlapped, &n, false)
	setTransferResult(op, n, err)
}

func beginHandleFunction(fe *FunctionEntry) {
	fe.backend = &handleMonitor{event: windows.InvalidHandle}
}

func endHandleFunction(fe *FunctionEntry) {
	mon := fe.backend.(*handleMonitor)
	if mon.event != windows.InvalidHandle {
		_ = windows.CloseHandle(mon.event)
		mon.event = windows.InvalidHandle
	}
}

var readMethods = &Methods{
	BeginFunction:   beginHandleFunction,
	EndFunction:     endHandleFunction,
	StartOperation:  startRead,
	FinishOperation: finishTransfer,
	InvokeCallback:  invokeReadCallback,
}

var writeMethods = &Methods{
	BeginFunction:   beginHandleFunction,
	EndFunction:     endHandleFunction,
	StartOperation:  startWrite,
	FinishOperation: finishTransfer,
	InvokeCallback:  invokeWriteCallback,
}
