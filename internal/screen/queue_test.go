package screen

import (
	"sync"
	"testing"
)

func TestQueueCallOrder(t *testing.T) {
	var journal []string
	q := NewQueue()

	if q.Pending() {
		t.Error("new queue should not be pending")
	}

	a := newFake("a", &journal)
	b := newFake("b", &journal)
	q.Push(a)
	q.Pop(2)
	q.Swap(b)

	if !q.Pending() {
		t.Fatal("queue should be pending after requests")
	}
	if q.Len() != 4 {
		t.Errorf("Len() = %d, expected 4", q.Len())
	}

	batch := q.Drain()
	kinds := []Kind{KindPush, KindPop, KindPop, KindSwap}
	if len(batch) != len(kinds) {
		t.Fatalf("batch length = %d, expected %d", len(batch), len(kinds))
	}
	for i, req := range batch {
		if req.Kind != kinds[i] {
			t.Errorf("batch[%d].Kind = %v, expected %v", i, req.Kind, kinds[i])
		}
		if req.Key != uint64(i) {
			t.Errorf("batch[%d].Key = %d, expected %d", i, req.Key, i)
		}
	}
	if batch[0].Screen != a || batch[3].Screen != b {
		t.Error("push/swap requests should carry their screens")
	}
	if batch[1].Screen != nil {
		t.Error("pop requests should not carry a screen")
	}
}

func TestQueueDrainResetsCounter(t *testing.T) {
	var journal []string
	q := NewQueue()

	q.Push(newFake("a", &journal))
	q.Push(newFake("b", &journal))
	q.Drain()

	if q.Pending() {
		t.Error("queue should be empty after drain")
	}

	q.Pop(1)
	batch := q.Drain()
	if len(batch) != 1 || batch[0].Key != 0 {
		t.Errorf("keys should restart at zero after a drain, got %+v", batch)
	}

	if len(q.Drain()) != 0 {
		t.Error("draining an empty queue should return nothing")
	}
}

func TestQueuePopNonPositive(t *testing.T) {
	q := NewQueue()
	q.Pop(0)
	q.Pop(-2)
	if q.Pending() {
		t.Error("non-positive pop counts should queue nothing")
	}
}

func TestQueueIndependentInstances(t *testing.T) {
	var journal []string
	q1 := NewQueue()
	q2 := NewQueue()

	q1.Push(newFake("a", &journal))
	q1.Push(newFake("b", &journal))
	q2.Pop(1)

	if batch := q2.Drain(); batch[0].Key != 0 {
		t.Errorf("queues must not share a counter, got key %d", batch[0].Key)
	}
	if q1.Len() != 2 {
		t.Errorf("q1.Len() = %d, expected 2", q1.Len())
	}
}

func TestQueueConcurrentRequests(t *testing.T) {
	q := NewQueue()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				q.Pop(1)
			}
		}()
	}
	wg.Wait()

	batch := q.Drain()
	if len(batch) != 800 {
		t.Fatalf("batch length = %d, expected 800", len(batch))
	}
	for i, req := range batch {
		if req.Key != uint64(i) {
			t.Fatalf("batch[%d].Key = %d, keys must be unique and ordered", i, req.Key)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindPush.String() != "push" || KindPop.String() != "pop" || KindSwap.String() != "swap" {
		t.Error("unexpected kind names")
	}
	if Kind(99).String() != "unknown" {
		t.Error("out of range kind should be unknown")
	}
}
