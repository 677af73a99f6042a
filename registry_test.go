package ioloop

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryGetCreatesOnce(t *testing.T) {
	r := newRegistry()
	methods := &Methods{}

	fe1, created1 := r.get(Descriptor(3), methods, true)
	require.True(t, created1)
	require.NotNil(t, fe1)

	fe2, created2 := r.get(Descriptor(3), methods, true)
	require.False(t, created2)
	require.Same(t, fe1, fe2)

	require.Equal(t, 1, r.len())
}

func TestRegistryGetDistinguishesDirection(t *testing.T) {
	r := newRegistry()
	read := &Methods{}
	write := &Methods{}

	feRead, _ := r.get(Descriptor(3), read, true)
	feWrite, _ := r.get(Descriptor(3), write, true)
	require.NotSame(t, feRead, feWrite)
	require.Equal(t, 2, r.len())
}

func TestRegistryRemoveCallsEndFunction(t *testing.T) {
	r := newRegistry()
	var ended bool
	methods := &Methods{EndFunction: func(fe *FunctionEntry) { ended = true }}

	fe, _ := r.get(Descriptor(1), methods, true)
	r.remove(fe)

	require.True(t, ended)
	require.Equal(t, 0, r.len())
}

func TestRegistryRotateToTailPreservesFairness(t *testing.T) {
	r := newRegistry()
	methods := &Methods{}

	a, _ := r.get(Descriptor(1), methods, true)
	b, _ := r.get(Descriptor(2), methods, true)
	c, _ := r.get(Descriptor(3), methods, true)

	r.rotateToTail(a)

	var order []Descriptor
	r.each(func(fe *FunctionEntry) { order = append(order, fe.FD) })
	require.Equal(t, []Descriptor{b.FD, c.FD, a.FD}, order)
}

func TestRegistryFindFastReadyStopsAtFirstMatch(t *testing.T) {
	r := newRegistry()
	methods := &Methods{}

	a, _ := r.get(Descriptor(1), methods, true)
	b, _ := r.get(Descriptor(2), methods, true)
	a.Ops.Enqueue(&OperationEntry{Function: a, Finished: true})
	b.Ops.Enqueue(&OperationEntry{Function: b, Finished: true})

	var visited int
	found := r.findFastReady(fakeBackend{addMonitorFn: func(fe *FunctionEntry) bool {
		visited++
		return fe.Head().Finished
	}})
	require.Same(t, a, found)
	require.Equal(t, 1, visited)
}

type fakeBackend struct {
	addMonitorFn func(fe *FunctionEntry) bool
}

func (f fakeBackend) prepare()                          {}
func (f fakeBackend) addMonitor(fe *FunctionEntry) bool  { return f.addMonitorFn(fe) }
func (f fakeBackend) await(int) bool                     { return false }
func (f fakeBackend) ready(fe *FunctionEntry) bool       { return false }
func (f fakeBackend) close() error                       { return nil }
