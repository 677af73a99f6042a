package ioloop

import "container/list"

// Methods is the vtable a readiness backend supplies for one direction
// (read or write) on one descriptor. Every hook is optional; a nil hook is
// simply skipped. Exactly two instances exist per backend build —
// readMethods and writeMethods — selected once at FunctionEntry creation
// and never again.
type Methods struct {
	// BeginFunction runs once, when a descriptor is first registered for
	// this direction. It initializes backend-private monitor state.
	BeginFunction func(fe *FunctionEntry)

	// EndFunction runs once, when the descriptor's operation queue drains
	// to empty and the FunctionEntry is retired. It releases backend-private
	// monitor state.
	EndFunction func(fe *FunctionEntry)

	// StartOperation runs when an operation becomes the head of its
	// descriptor's queue. On backends that issue the transfer eagerly
	// (Windows overlapped I/O) this kicks it off; on readiness-only
	// backends (poll, select) it is nil.
	StartOperation func(op *OperationEntry)

	// FinishOperation runs a readiness backend's half of the transfer: a
	// non-blocking read/write syscall on poll/select backends, or fetching
	// the overlapped result on Windows. It sets op.Finished, op.Err, and
	// the TransferExtension's length/end fields.
	FinishOperation func(op *OperationEntry)

	// InvokeCallback delivers the operation's result to the caller-supplied
	// callback and reports whether the operation should remain queued
	// (true) or retire (false).
	InvokeCallback func(op *OperationEntry) bool
}

// FunctionEntry is the registry's unit of bookkeeping for one (descriptor,
// direction) pair: a non-empty FIFO of pending operations plus whatever
// monitor state the active readiness backend needs to watch the
// descriptor.
type FunctionEntry struct {
	FD      Descriptor
	Methods *Methods
	Ops     *Queue[*OperationEntry]

	// backend is opaque to the registry and Engine; each backend_*.go file
	// defines its own concrete type and type-asserts this field.
	backend any

	// regElem links this FunctionEntry to its slot in the registry's own
	// queue, for Delete/Requeue.
	regElem *list.Element
}

// Head returns the FunctionEntry's head operation, or nil if its queue is
// (transiently) empty.
func (fe *FunctionEntry) Head() *OperationEntry {
	op, ok := fe.Ops.HeadValue()
	if !ok {
		return nil
	}
	return op
}

// OperationEntry is one queued read or write against a descriptor.
type OperationEntry struct {
	Function  *FunctionEntry
	Extension *TransferExtension
	Data      any
	Finished  bool
	Err       error
	Cancelled bool

	// elem links this OperationEntry to its slot in Function.Ops, for
	// Cancel and retirement.
	elem *list.Element
}
