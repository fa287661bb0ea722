package screen

import (
	"sort"
	"sync"
)

// Kind is the type of a transition request.
type Kind uint8

const (
	KindPush Kind = iota
	KindPop
	KindSwap
)

// String returns the request kind name.
func (k Kind) String() string {
	switch k {
	case KindPush:
		return "push"
	case KindPop:
		return "pop"
	case KindSwap:
		return "swap"
	default:
		return "unknown"
	}
}

// Request is one queued stack mutation.
type Request struct {
	Kind   Kind
	Screen Screen // nil for pops
	Key    uint64 // call order within the batch
}

// Queue buffers transition requests until the frame loop applies them.
//
// Every request takes a key from a counter owned by the queue, so a batch
// replays in calling order no matter how pushes and pops interleave. The
// counter restarts at zero after each drain.
type Queue struct {
	mu      sync.Mutex
	pending []Request
	next    uint64
}

// NewQueue creates an empty transition queue.
func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) add(kind Kind, s Screen) {
	q.pending = append(q.pending, Request{Kind: kind, Screen: s, Key: q.next})
	q.next++
}

// Push queues s to be placed on top of the stack.
func (q *Queue) Push(s Screen) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.add(KindPush, s)
}

// Pop queues count pops, each with its own key. Popping more screens than
// the stack holds is allowed; extra pops do nothing when applied.
func (q *Queue) Pop(count int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for range count {
		q.add(KindPop, nil)
	}
}

// Swap queues a replacement of the top screen by s.
func (q *Queue) Swap(s Screen) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.add(KindSwap, s)
}

// Pending reports whether a batch is waiting to be applied.
func (q *Queue) Pending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending) > 0
}

// Len returns the number of queued requests.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain returns the whole batch in calling order and empties the queue.
func (q *Queue) Drain() []Request {
	q.mu.Lock()
	defer q.mu.Unlock()

	batch := q.pending
	q.pending = nil
	q.next = 0

	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].Key < batch[j].Key
	})
	return batch
}
