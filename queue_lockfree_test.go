package substrate

import (
	"sort"
	"sync"
	"testing"
)

// ============================================================================
// BASIC FUNCTIONALITY TESTS
// ============================================================================

func TestLockFreeQueue_EnqueueDequeue(t *testing.T) {
	q := NewLockFreeQueue[int]()

	if !q.Empty() {
		t.Fatal("new queue should be empty")
	}

	if err := q.Enqueue(1); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}
	if q.Empty() {
		t.Fatal("queue should be non-empty after Enqueue")
	}

	v, ok := q.Dequeue()
	if !ok {
		t.Fatal("Dequeue() on non-empty queue returned false")
	}
	if v != 1 {
		t.Errorf("Dequeue() = %d, want 1", v)
	}
	if !q.Empty() {
		t.Error("queue should be empty after draining its only element")
	}
}

func TestLockFreeQueue_DequeueFromEmpty(t *testing.T) {
	q := NewLockFreeQueue[int]()

	if _, ok := q.Dequeue(); ok {
		t.Error("Dequeue() on empty queue should return false")
	}
}

func TestLockFreeQueue_FIFOSingleProducerSingleConsumer(t *testing.T) {
	q := NewLockFreeQueue[int]()

	const n = 10_000
	for i := 0; i < n; i++ {
		if err := q.Enqueue(i); err != nil {
			t.Fatalf("Enqueue(%d) error = %v", i, err)
		}
	}

	for i := 0; i < n; i++ {
		v, ok := q.Dequeue()
		if !ok {
			t.Fatalf("Dequeue() at index %d returned false", i)
		}
		if v != i {
			t.Fatalf("Dequeue() = %d, want %d (FIFO order violated)", v, i)
		}
	}
}

func TestLockFreeQueue_Clear(t *testing.T) {
	q := NewLockFreeQueue[int]()
	for i := 0; i < 10; i++ {
		q.Enqueue(i)
	}

	q.Clear()

	if !q.Empty() {
		t.Error("queue should be empty after Clear")
	}
	if _, ok := q.Dequeue(); ok {
		t.Error("Dequeue() after Clear should return false")
	}
}

// ============================================================================
// CONCURRENCY PROPERTY TESTS
// ============================================================================

// No loss, no dup with a single consumer draining after K producers finish.
func TestLockFreeQueue_NoLossNoDup_SingleConsumer(t *testing.T) {
	const producers = 8
	const perProducer = 5_000
	q := NewLockFreeQueue[int]()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		base := p * perProducer
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				if err := q.Enqueue(base + i); err != nil {
					t.Errorf("Enqueue error = %v", err)
				}
			}
		}(base)
	}
	wg.Wait()

	seen := make(map[int]bool, producers*perProducer)
	for {
		v, ok := q.Dequeue()
		if !ok {
			break
		}
		if seen[v] {
			t.Fatalf("value %d dequeued more than once", v)
		}
		seen[v] = true
	}

	if len(seen) != producers*perProducer {
		t.Fatalf("got %d distinct values, want %d", len(seen), producers*perProducer)
	}
}

// No loss, no dup with multiple concurrent consumers.
func TestLockFreeQueue_NoLossNoDup_MultiConsumer(t *testing.T) {
	const producers = 4
	const consumers = 4
	const perProducer = 5_000
	const total = producers * perProducer
	q := NewLockFreeQueue[int]()

	var producerWG sync.WaitGroup
	for p := 0; p < producers; p++ {
		producerWG.Add(1)
		base := p * perProducer
		go func(base int) {
			defer producerWG.Done()
			for i := 0; i < perProducer; i++ {
				q.Enqueue(base + i)
			}
		}(base)
	}
	producerWG.Wait()

	var mu sync.Mutex
	seen := make(map[int]int, total)
	var consumerWG sync.WaitGroup
	for c := 0; c < consumers; c++ {
		consumerWG.Add(1)
		go func() {
			defer consumerWG.Done()
			for {
				v, ok := q.Dequeue()
				if !ok {
					return
				}
				mu.Lock()
				seen[v]++
				mu.Unlock()
			}
		}()
	}
	consumerWG.Wait()

	if len(seen) != total {
		t.Fatalf("got %d distinct values, want %d", len(seen), total)
	}
	for v, count := range seen {
		if count != 1 {
			t.Fatalf("value %d dequeued %d times, want 1", v, count)
		}
	}
}

// FIFO per-producer: a single producer's monotonically increasing sequence
// must be observed monotonically increasing by a single consumer, even with
// other producers interleaved.
func TestLockFreeQueue_FIFOPerProducer(t *testing.T) {
	const otherProducers = 3
	const n = 5_000
	q := NewLockFreeQueue[[2]int]() // [producerID, seq]

	done := make(chan struct{})
	for p := 0; p < otherProducers; p++ {
		go func(id int) {
			for i := 0; ; i++ {
				select {
				case <-done:
					return
				default:
					q.Enqueue([2]int{id + 1, i})
				}
			}
		}(p)
	}

	go func() {
		for i := 0; i < n; i++ {
			q.Enqueue([2]int{0, i})
		}
	}()

	seenFromTarget := make([]int, 0, n)
	for len(seenFromTarget) < n {
		v, ok := q.Dequeue()
		if !ok {
			continue
		}
		if v[0] == 0 {
			seenFromTarget = append(seenFromTarget, v[1])
		}
	}
	close(done)

	if !sort.IntsAreSorted(seenFromTarget) {
		t.Fatal("producer 0's sequence was not observed monotonically increasing")
	}
}
