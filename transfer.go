package ioloop

// direction tags which half of a TransferExtension's payload union is live.
type direction uint8

const (
	directionRead direction = iota
	directionWrite
)

// TransferExtension is the shared state behind one read or one write
// operation: an inline buffer, its capacity and current fill length, and a
// direction-specific callback. Only one of the two callback fields is ever
// populated, matching direction.
type TransferExtension struct {
	dir    direction
	size   int
	length int
	buf    []byte

	readCallback ReadCallback
	end          bool

	writeCallback WriteCallback
}

// ReadCallback is invoked with the bytes read so far whenever the engine
// has new (or still-undelivered) data for a read operation. It returns the
// number of bytes consumed from Buffer[:Length]; any unconsumed remainder
// is kept and offered again on the next delivery.
//
// If the callback returns 0 while Length equals Size (the buffer filled
// completely and the callback consumed none of it), the operation retires
// silently: no error is recorded, and the buffered bytes are simply
// dropped. Callers who need every byte delivered should consume
// fully on each call.
type ReadCallback func(ReadResult) int

// WriteCallback is invoked once a write operation finishes or fails.
type WriteCallback func(WriteResult)

// ReadResult is delivered to a ReadCallback on each invocation.
type ReadResult struct {
	Data   any
	Buffer []byte
	Size   int
	Length int
	Err    error
	End    bool
}

// WriteResult is delivered to a WriteCallback exactly once, when the write
// operation finishes (successfully or with an error).
type WriteResult struct {
	Data   any
	Buffer []byte
	Size   int
	Err    error
	Count  int
}

func newReadExtension(capacity int, cb ReadCallback) *TransferExtension {
	return &TransferExtension{
		dir:          directionRead,
		size:         capacity,
		buf:          make([]byte, capacity),
		readCallback: cb,
	}
}

func newWriteExtension(data []byte, cb WriteCallback) *TransferExtension {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &TransferExtension{
		dir:           directionWrite,
		size:          len(data),
		buf:           buf,
		writeCallback: cb,
	}
}

// invokeReadCallback is the shared InvokeCallback hook for readMethods on
// every backend. It reports whether the operation should remain queued.
func invokeReadCallback(op *OperationEntry) bool {
	ext := op.Extension
	if ext.dir != directionRead {
		panic("ioloop: invokeReadCallback called on a non-read TransferExtension")
	}
	var count int
	if ext.readCallback != nil {
		count = ext.readCallback(ReadResult{
			Data:   op.Data,
			Buffer: ext.buf,
			Size:   ext.size,
			Length: ext.length,
			Err:    op.Err,
			End:    ext.end,
		})
	} else {
		count = ext.length
	}

	if count > 0 {
		ext.length -= count
		copy(ext.buf, ext.buf[count:count+ext.length])
	}

	if op.Err != nil {
		return false
	}
	if ext.length == 0 {
		return false
	}
	if ext.length == ext.size {
		// Full buffer and nothing consumed: retire without an error.
		return false
	}
	// Data remains buffered; it is redelivered on the next dispatch without
	// a further backend read, so Finished is deliberately left set by the
	// caller.
	return true
}

// invokeWriteCallback is the shared InvokeCallback hook for writeMethods on
// every backend.
func invokeWriteCallback(op *OperationEntry) bool {
	ext := op.Extension
	if ext.dir != directionWrite {
		panic("ioloop: invokeWriteCallback called on a non-write TransferExtension")
	}
	if op.Err == nil && ext.length < ext.size {
		// Partial write: stay queued for another transfer; the callback
		// fires only once the write completes or fails.
		op.Finished = false
		return true
	}
	if ext.writeCallback != nil {
		ext.writeCallback(WriteResult{
			Data:   op.Data,
			Buffer: ext.buf,
			Size:   ext.size,
			Err:    op.Err,
			Count:  ext.length,
		})
	}
	return false
}
