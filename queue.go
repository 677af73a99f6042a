package ioloop

import "container/list"

// Comparator orders two queue elements ascending. It returns a negative
// number if a sorts before b, zero if they are equivalent, and a positive
// number if a sorts after b.
type Comparator[T any] func(a, b T) int

// Queue is a small FIFO, optionally kept in ascending order by a
// Comparator. A nil Comparator makes Queue a plain FIFO: Enqueue always
// appends to the tail. A non-nil Comparator makes Enqueue an ordered
// insert, which is how the alarm scheduler keeps its due-soonest entry at
// the head without a separate heap type.
//
// Queue is not safe for concurrent use; callers (the Engine and its
// backends) only ever touch it from the single drive-loop goroutine.
type Queue[T any] struct {
	items *list.List
	cmp   Comparator[T]
}

// NewQueue constructs an empty Queue. A nil cmp yields FIFO semantics.
func NewQueue[T any](cmp Comparator[T]) *Queue[T] {
	return &Queue[T]{items: list.New(), cmp: cmp}
}

// Len reports the number of items currently queued.
func (q *Queue[T]) Len() int {
	return q.items.Len()
}

// Enqueue inserts v, either at the tail (FIFO queue) or at its sorted
// position (ordered queue), and returns the list element backing it — the
// same token Delete and Requeue expect.
func (q *Queue[T]) Enqueue(v T) *list.Element {
	if q.cmp == nil {
		return q.items.PushBack(v)
	}
	for e := q.items.Front(); e != nil; e = e.Next() {
		if q.cmp(v, e.Value.(T)) < 0 {
			return q.items.InsertBefore(v, e)
		}
	}
	return q.items.PushBack(v)
}

// Head returns the element at the front of the queue, or nil if empty.
func (q *Queue[T]) Head() *list.Element {
	return q.items.Front()
}

// HeadValue returns the value at the front of the queue and whether the
// queue was non-empty.
func (q *Queue[T]) HeadValue() (T, bool) {
	e := q.items.Front()
	if e == nil {
		var zero T
		return zero, false
	}
	return e.Value.(T), true
}

// Delete removes e from the queue. e must have been returned by Enqueue on
// this Queue.
func (q *Queue[T]) Delete(e *list.Element) {
	q.items.Remove(e)
}

// Requeue moves e to the tail of the queue, preserving FIFO order for the
// item behind it. Used for round-robin fairness across descriptors; never
// used on an ordered (comparator-backed) queue.
func (q *Queue[T]) Requeue(e *list.Element) {
	q.items.MoveToBack(e)
}

// Process scans the queue front-to-back, calling match on each value in
// turn. It stops and returns the first element for which match returns
// true, or (nil, zero-value) if none match.
func (q *Queue[T]) Process(match func(T) bool) (*list.Element, T) {
	for e := q.items.Front(); e != nil; e = e.Next() {
		v := e.Value.(T)
		if match(v) {
			return e, v
		}
	}
	var zero T
	return nil, zero
}

// Each calls fn for every value in the queue, front-to-back.
func (q *Queue[T]) Each(fn func(T)) {
	for e := q.items.Front(); e != nil; e = e.Next() {
		fn(e.Value.(T))
	}
}
