package ioloop

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueueFIFOOrder(t *testing.T) {
	q := NewQueue[int](nil)
	q.Enqueue(1)
	q.Enqueue(2)
	q.Enqueue(3)

	require.Equal(t, 3, q.Len())
	v, ok := q.HeadValue()
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestQueueOrderedInsert(t *testing.T) {
	q := NewQueue[int](func(a, b int) int { return a - b })
	q.Enqueue(5)
	q.Enqueue(1)
	q.Enqueue(3)

	var got []int
	q.Each(func(v int) { got = append(got, v) })
	require.Equal(t, []int{1, 3, 5}, got)
}

func TestQueueDeleteAndRequeue(t *testing.T) {
	q := NewQueue[string](nil)
	a := q.Enqueue("a")
	q.Enqueue("b")
	q.Enqueue("c")

	q.Requeue(a)
	var got []string
	q.Each(func(v string) { got = append(got, v) })
	require.Equal(t, []string{"b", "c", "a"}, got)

	q.Delete(a)
	got = got[:0]
	q.Each(func(v string) { got = append(got, v) })
	require.Equal(t, []string{"b", "c"}, got)
}

func TestQueueProcessStopsOnFirstMatch(t *testing.T) {
	q := NewQueue[int](nil)
	for i := 0; i < 5; i++ {
		q.Enqueue(i)
	}

	var visited []int
	_, v := q.Process(func(x int) bool {
		visited = append(visited, x)
		return x == 2
	})
	require.Equal(t, 2, v)
	require.Equal(t, []int{0, 1, 2}, visited)
}
