package ioloop

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInvokeReadCallbackPartialConsumptionKeepsRemainder(t *testing.T) {
	ext := &TransferExtension{dir: directionRead, size: 8, length: 4, buf: []byte("abcd\x00\x00\x00\x00")}
	op := &OperationEntry{Extension: ext, Finished: true}
	ext.readCallback = func(r ReadResult) int {
		require.Equal(t, 4, r.Length)
		return 2 // consume "ab", leave "cd"
	}

	cont := invokeReadCallback(op)
	require.True(t, cont)
	require.Equal(t, 2, ext.length)
	require.Equal(t, byte('c'), ext.buf[0])
	require.Equal(t, byte('d'), ext.buf[1])
}

func TestInvokeReadCallbackRetiresWhenDrained(t *testing.T) {
	ext := &TransferExtension{dir: directionRead, size: 8, length: 4, buf: []byte("abcd\x00\x00\x00\x00")}
	op := &OperationEntry{Extension: ext}
	ext.readCallback = func(r ReadResult) int { return r.Length }

	require.False(t, invokeReadCallback(op))
	require.Equal(t, 0, ext.length)
}

func TestInvokeReadCallbackRetiresOnError(t *testing.T) {
	ext := &TransferExtension{dir: directionRead, size: 8, length: 4, buf: make([]byte, 8)}
	op := &OperationEntry{Extension: ext, Err: errors.New("boom")}
	ext.readCallback = func(r ReadResult) int { return 0 }

	require.False(t, invokeReadCallback(op))
}

func TestInvokeReadCallbackSilentlyRetiresOnFullZeroConsumption(t *testing.T) {
	ext := &TransferExtension{dir: directionRead, size: 4, length: 4, buf: []byte("abcd")}
	op := &OperationEntry{Extension: ext}
	ext.readCallback = func(r ReadResult) int { return 0 } // caller under-sized capacity

	require.False(t, invokeReadCallback(op))
	require.NoError(t, op.Err)
	require.Equal(t, 4, ext.length) // data silently dropped, not an error
}

func TestInvokeWriteCallbackContinuesUntilFull(t *testing.T) {
	ext := &TransferExtension{dir: directionWrite, size: 10, length: 4, buf: make([]byte, 10)}
	op := &OperationEntry{Extension: ext, Finished: true}
	calls := 0
	ext.writeCallback = func(r WriteResult) { calls++ }

	cont := invokeWriteCallback(op)
	require.True(t, cont)
	require.False(t, op.Finished)
	require.Equal(t, 0, calls) // callback waits for the write to complete
}

func TestInvokeWriteCallbackRetiresWhenFull(t *testing.T) {
	ext := &TransferExtension{dir: directionWrite, size: 10, length: 10, buf: make([]byte, 10)}
	op := &OperationEntry{Extension: ext}
	var called bool
	ext.writeCallback = func(r WriteResult) { called = true }

	require.False(t, invokeWriteCallback(op))
	require.True(t, called)
}

func TestInvokeWriteCallbackRetiresOnError(t *testing.T) {
	ext := &TransferExtension{dir: directionWrite, size: 10, length: 4, buf: make([]byte, 10)}
	op := &OperationEntry{Extension: ext, Err: errors.New("boom")}

	require.False(t, invokeWriteCallback(op))
}

func TestInvokeReadCallbackPanicsOnDirectionMismatch(t *testing.T) {
	ext := &TransferExtension{dir: directionWrite, size: 4, length: 4, buf: make([]byte, 4)}
	op := &OperationEntry{Extension: ext}

	require.Panics(t, func() { invokeReadCallback(op) })
}

func TestInvokeWriteCallbackPanicsOnDirectionMismatch(t *testing.T) {
	ext := &TransferExtension{dir: directionRead, size: 4, length: 4, buf: make([]byte, 4)}
	op := &OperationEntry{Extension: ext}

	require.Panics(t, func() { invokeWriteCallback(op) })
}
