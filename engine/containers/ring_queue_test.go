package containers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRingQueueEnqueueDequeueOrder(t *testing.T) {
	rq := NewRingQueue(4)
	require.True(t, rq.IsEmpty())

	require.NoError(t, rq.Enqueue(1))
	require.NoError(t, rq.Enqueue(2))
	require.NoError(t, rq.Enqueue(3))

	v, err := rq.Dequeue()
	require.NoError(t, err)
	require.Equal(t, 1, v)

	v, err = rq.Dequeue()
	require.NoError(t, err)
	require.Equal(t, 2, v)

	v, err = rq.Peek()
	require.NoError(t, err)
	require.Equal(t, 3, v)

	v, err = rq.Dequeue()
	require.NoError(t, err)
	require.Equal(t, 3, v)
	require.True(t, rq.IsEmpty())
}

func TestRingQueueDequeueEmptyReturnsError(t *testing.T) {
	rq := NewRingQueue(2)
	_, err := rq.Dequeue()
	require.Error(t, err)

	_, err = rq.Peek()
	require.Error(t, err)
}

func TestRingQueueGrowsInsteadOfRejecting(t *testing.T) {
	rq := NewRingQueue(2)
	require.NoError(t, rq.Enqueue(1))
	require.NoError(t, rq.Enqueue(2))
	require.True(t, rq.IsFull())

	require.NoError(t, rq.Enqueue(3))
	require.False(t, rq.IsFull())

	for i, want := range []int{1, 2, 3} {
		v, err := rq.Dequeue()
		require.NoErrorf(t, err, "dequeue %d", i)
		require.Equal(t, want, v)
	}
	require.True(t, rq.IsEmpty())
}

func TestRingQueueGrowsAfterWrapAroundPreservesOrder(t *testing.T) {
	rq := NewRingQueue(3)
	require.NoError(t, rq.Enqueue(1))
	require.NoError(t, rq.Enqueue(2))
	require.NoError(t, rq.Enqueue(3))

	// Consume from the front so writeIndex wraps past 0 before the next grow.
	v, err := rq.Dequeue()
	require.NoError(t, err)
	require.Equal(t, 1, v)

	require.NoError(t, rq.Enqueue(4))
	require.True(t, rq.IsFull())
	require.NoError(t, rq.Enqueue(5))
	require.False(t, rq.IsFull())

	for i, want := range []int{2, 3, 4, 5} {
		v, err := rq.Dequeue()
		require.NoErrorf(t, err, "dequeue %d", i)
		require.Equal(t, want, v)
	}
	require.True(t, rq.IsEmpty())
}

func TestNewRingQueueZeroSizeGrowsOnFirstEnqueue(t *testing.T) {
	rq := NewRingQueue(0)
	require.True(t, rq.IsFull())
	require.NoError(t, rq.Enqueue(42))

	v, err := rq.Dequeue()
	require.NoError(t, err)
	require.Equal(t, 42, v)
}
