package ioloop

import "fmt"

// Engine multiplexes asynchronous reads, writes, and alarms from a single
// goroutine. See the package doc for the concurrency contract: every
// method below must be called from the same goroutine that calls Wait.
type Engine struct {
	registry *registry
	alarms   *alarmScheduler
	backend  backend
	logger   Logger
	closed   bool

	// submitFailure, when non-nil, is consulted by submit immediately after
	// a FunctionEntry is resolved; returning an error simulates an
	// allocation failure and exercises the same unwind path a real
	// out-of-resources condition would take. Set only by tests in this
	// package.
	submitFailure func() error
}

// New constructs an Engine with the given options.
func New(opts ...Option) *Engine {
	cfg := resolveOptions(opts)
	return &Engine{
		registry: newRegistry(),
		alarms:   newAlarmScheduler(),
		backend:  newBackend(cfg.maxDescriptors),
		logger:   cfg.logger,
	}
}

// Close releases the Engine's backend resources. It does not cancel
// pending operations or alarms; callers are expected to have drained or
// abandoned them first.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	return e.backend.close()
}

func (e *Engine) log(level LogLevel, category, message string, err error) {
	if e.logger == nil || !e.logger.IsEnabled(level) {
		return
	}
	e.logger.Log(LogEntry{Level: level, Category: category, Message: message, Err: err})
}

// Read queues an asynchronous read of up to capacity bytes from fd. cb is
// invoked with whatever has been read so far each time new data (or
// previously undelivered data) is available; see ReadCallback for the
// consumption contract. Returns the submitted operation and true, or
// (nil, false) if submission failed before anything was queued.
func (e *Engine) Read(fd Descriptor, capacity int, cb ReadCallback, data any) (*OperationEntry, bool) {
	if capacity < 0 {
		return nil, false
	}
	return e.submit(fd, readMethods, newReadExtension(capacity, cb), data)
}

// Write queues an asynchronous write of buf to fd. cb is invoked exactly
// once, when the write finishes or fails. Returns the submitted operation
// and true, or (nil, false) if submission failed before anything was
// queued.
func (e *Engine) Write(fd Descriptor, buf []byte, cb WriteCallback, data any) (*OperationEntry, bool) {
	return e.submit(fd, writeMethods, newWriteExtension(buf, cb), data)
}

func (e *Engine) submit(fd Descriptor, methods *Methods, ext *TransferExtension, data any) (*OperationEntry, bool) {
	if e.closed {
		e.log(LevelWarn, "operation", "submit rejected", ErrBackendClosed)
		return nil, false
	}

	if err := validateDescriptor(fd); err != nil {
		e.log(LevelWarn, "operation", "submit rejected", err)
		return nil, false
	}

	fe, created := e.registry.get(fd, methods, true)
	op := &OperationEntry{Function: fe, Extension: ext, Data: data}

	if e.submitFailure != nil {
		if cause := e.submitFailure(); cause != nil {
			if created {
				e.registry.remove(fe)
			}
			e.log(LevelWarn, "operation", "submit failed", fmt.Errorf("%w: %v", ErrAllocationFailed, cause))
			return nil, false
		}
	}

	wasEmpty := fe.Ops.Len() == 0
	op.elem = fe.Ops.Enqueue(op)

	if wasEmpty && methods.StartOperation != nil {
		methods.StartOperation(op)
	}

	return op, true
}

// AbsoluteAlarm schedules cb to run once, the first time Wait observes the
// wall clock has reached at.
func (e *Engine) AbsoluteAlarm(at TimeVal, cb AlarmCallback, data any) bool {
	if e.closed {
		e.log(LevelWarn, "alarm", "schedule rejected", ErrBackendClosed)
		return false
	}
	e.alarms.schedule(at, cb, data)
	return true
}

// RelativeAlarm schedules cb to run once, approximately afterMs
// milliseconds from now.
func (e *Engine) RelativeAlarm(afterMs int64, cb AlarmCallback, data any) bool {
	return e.AbsoluteAlarm(timeValNow().addMillis(afterMs), cb, data)
}

// Cancel removes op from its descriptor's queue without invoking its
// callback. If op was the head (in-flight) operation, the next queued
// operation for that descriptor, if any, is started immediately.
// Cancelling an already-finished or already-cancelled operation is a
// no-op.
func (e *Engine) Cancel(op *OperationEntry) {
	if op == nil || op.Cancelled {
		return
	}
	op.Cancelled = true

	fe := op.Function
	wasHead := fe.Head() == op
	fe.Ops.Delete(op.elem)

	if !wasHead {
		return
	}

	if next := fe.Head(); next != nil {
		if fe.Methods.StartOperation != nil {
			fe.Methods.StartOperation(next)
		}
		return
	}
	e.registry.remove(fe)
}

// Wait drives the engine for up to durationMs milliseconds: it fires due
// alarms, polls the readiness backend, and dispatches at most one ready
// descriptor's head operation per iteration, looping until the budget is
// exhausted. A durationMs of 0 makes a single pass without blocking: it
// fires any due alarms and dispatches at most one already-ready descriptor.
func (e *Engine) Wait(durationMs int) {
	start := timeValNow()
	duration := int64(durationMs)
	var elapsed int64

	// A do-while shape: the body always runs at least once, even for
	// durationMs == 0, so one non-blocking drain pass always happens.
	for {
		timeout := duration - elapsed

		if due := e.alarms.due(); due != nil {
			now := timeValNow()
			msUntil := due.when.millisUntil(now)
			if msUntil <= 0 {
				e.log(LevelDebug, "alarm", "firing due alarm", nil)
				e.alarms.fire()
				elapsed = millisSince(start)
				continue
			}
			if msUntil < timeout {
				timeout = msUntil
			}
		}

		e.backend.prepare()
		fe := e.registry.findFastReady(e.backend)

		if fe == nil && e.backend.await(clampTimeout(timeout)) {
			fe = e.registry.findReady(e.backend)
		}

		if fe != nil {
			e.dispatch(fe)
		}

		elapsed = millisSince(start)
		if elapsed >= duration {
			return
		}
	}
}

// dispatch services fe's head operation: finishes the transfer if needed,
// invokes its callback, retires or continues it, and starts the next
// queued operation (or retires fe entirely), round-robining fe to the
// back of the registry if it remains live.
func (e *Engine) dispatch(fe *FunctionEntry) {
	op := fe.Head()

	if !op.Finished && fe.Methods.FinishOperation != nil {
		fe.Methods.FinishOperation(op)
	}

	cont := false
	if fe.Methods.InvokeCallback != nil {
		cont = fe.Methods.InvokeCallback(op)
	}

	if cont {
		op.Err = nil
	} else {
		fe.Ops.Delete(op.elem)
	}

	if next := fe.Head(); next != nil {
		if fe.Methods.StartOperation != nil {
			fe.Methods.StartOperation(next)
		}
		e.registry.rotateToTail(fe)
		return
	}

	e.log(LevelDebug, "registry", "descriptor queue drained", nil)
	e.registry.remove(fe)
}

func millisSince(start TimeVal) int64 {
	now := timeValNow()
	return (now.Sec-start.Sec)*1000 + (now.Usec-start.Usec)/1000
}
