//go:build !windows

package ioloop

import "golang.org/x/sys/unix"

// finishUnixRead performs the non-blocking read half of a read operation,
// shared by the poll and select backends (they differ only in how they
// learn the descriptor is readable, not in how they read it).
func finishUnixRead(op *OperationEntry) {
	fe := op.Function
	ext := op.Extension
	n, err := unix.Read(int(fe.FD), ext.buf[ext.length:ext.size])
	switch {
	case err != nil:
		op.Err = err
	case n == 0:
		ext.end = true
	default:
		ext.length += n
	}
	op.Finished = true
}

// finishUnixWrite performs the non-blocking write half of a write
// operation, shared by the poll and select backends.
func finishUnixWrite(op *OperationEntry) {
	fe := op.Function
	ext := op.Extension
	n, err := unix.Write(int(fe.FD), ext.buf[ext.length:ext.size])
	if err != nil {
		op.Err = err
	} else {
		ext.length += n
	}
	op.Finished = true
}
