package ioloop

import "sync"

var (
	defaultEngineOnce sync.Once
	defaultEngine     *Engine
)

func getDefaultEngine() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = New()
	})
	return defaultEngine
}

// Read queues an asynchronous read on the lazily-constructed default
// Engine. See Engine.Read.
func Read(fd Descriptor, capacity int, cb ReadCallback, data any) (*OperationEntry, bool) {
	return getDefaultEngine().Read(fd, capacity, cb, data)
}

// Write queues an asynchronous write on the default Engine. See
// Engine.Write.
func Write(fd Descriptor, buf []byte, cb WriteCallback, data any) (*OperationEntry, bool) {
	return getDefaultEngine().Write(fd, buf, cb, data)
}

// At schedules an absolute alarm on the default Engine. See
// Engine.AbsoluteAlarm.
func At(when TimeVal, cb AlarmCallback, data any) bool {
	return getDefaultEngine().AbsoluteAlarm(when, cb, data)
}

// After schedules a relative alarm on the default Engine. See
// Engine.RelativeAlarm.
func After(afterMs int64, cb AlarmCallback, data any) bool {
	return getDefaultEngine().RelativeAlarm(afterMs, cb, data)
}

// Wait drives the default Engine. See Engine.Wait.
func Wait(durationMs int) {
	getDefaultEngine().Wait(durationMs)
}

// Cancel cancels op on the default Engine. See Engine.Cancel.
func Cancel(op *OperationEntry) {
	getDefaultEngine().Cancel(op)
}
