// Package containers holds small generic data structures shared across the
// engine. RingQueue backs engine/watch's pending file-event buffer, which
// bridges fsnotify's background delivery goroutine to the single-threaded
// polling step resource reloads run on.
package containers

import "errors"

type RingQueue struct {
	data       []interface{}
	size       int
	readIndex  int
	writeIndex int
	count      int
}

// Create a new RingQueue
func NewRingQueue(size int) *RingQueue {
	return &RingQueue{
		data: make([]interface{}, size),
		size: size,
	}
}

// Enqueue adds an element to the queue, growing the backing array instead
// of rejecting the write when full. A watcher goroutine producing faster
// than the host polls must never silently drop an event.
func (rq *RingQueue) Enqueue(value interface{}) error {
	if rq.IsFull() {
		rq.grow()
	}

	rq.data[rq.writeIndex] = value
	rq.writeIndex = (rq.writeIndex + 1) % rq.size
	rq.count++
	return nil
}

func (rq *RingQueue) grow() {
	newSize := rq.size * 2
	if newSize == 0 {
		newSize = 1
	}
	newData := make([]interface{}, newSize)
	for i := 0; i < rq.count; i++ {
		newData[i] = rq.data[(rq.readIndex+i)%rq.size]
	}
	rq.data = newData
	rq.size = newSize
	rq.readIndex = 0
	rq.writeIndex = rq.count
}

// Dequeue removes and returns the front element in the queue
func (rq *RingQueue) Dequeue() (interface{}, error) {
	if rq.IsEmpty() {
		return 0, errors.New("queue is empty")
	}

	value := rq.data[rq.readIndex]
	rq.readIndex = (rq.readIndex + 1) % rq.size
	rq.count--
	return value, nil
}

// Peek returns the front element without removing it
func (rq *RingQueue) Peek() (interface{}, error) {
	if rq.IsEmpty() {
		return 0, errors.New("queue is empty")
	}
	return rq.data[rq.readIndex], nil
}

// IsEmpty checks if the queue is empty
func (rq *RingQueue) IsEmpty() bool {
	return rq.count == 0
}

// IsFull checks if the queue is full
func (rq *RingQueue) IsFull() bool {
	return rq.count == rq.size
}
