package substrate

import "runtime"

// worker is one of a Pool's fixed goroutines. It has no state of its own
// beyond an id used only for diagnostics; all coordination lives in the
// shared queue and the pool's atomics.
type worker struct {
	id   int
	pool *Pool
}

func newWorker(id int, pool *Pool) *worker {
	return &worker{id: id, pool: pool}
}

// run is the worker loop. While the pool is RUNNING it pulls tasks from the
// shared queue and executes them; once running flips to false it either
// drains whatever is left (Stop(true)) or exits immediately, leaving
// anything still queued to have already been abandoned by Stop(false).
func (w *worker) run() {
	if bq, ok := w.pool.queue.(*LockedQueue[task]); ok {
		w.runBlocking(bq)
	} else {
		w.runBusy()
	}

	if poolState(w.pool.state.Load()) == stateDraining {
		w.drainQueue()
	}
}

// runBusy implements the lock-free variant's worker loop: non-blocking
// dequeue, busy-yield on empty. This trades idle CPU for minimal latency,
// appropriate for the near-always-non-idle market-data/strategy workload
// this pool targets — not for low-QPS background work.
func (w *worker) runBusy() {
	for poolState(w.pool.state.Load()) == stateRunning {
		t, ok := w.pool.queue.Dequeue()
		if !ok {
			runtime.Gosched()
			continue
		}
		w.execute(t)
	}
}

// runBlocking implements the locked variant's worker loop: block in
// BlockPop until work arrives or the queue is closed by Stop.
func (w *worker) runBlocking(q *LockedQueue[task]) {
	for poolState(w.pool.state.Load()) == stateRunning {
		t, ok := q.BlockPop()
		if !ok {
			return
		}
		w.execute(t)
	}
}

// drainQueue runs every task still queued after running has flipped to
// false. Only reached when Stop(true) asked the pool to wait for
// completion.
func (w *worker) drainQueue() {
	for {
		t, ok := w.pool.queue.Dequeue()
		if !ok {
			return
		}
		w.execute(t)
	}
}

// execute runs one task. The task's own run closure already recovers from
// a panicking user callable and routes it into the Future; this recover is
// a second line of defense against a panic escaping the completion hook
// itself (an internal infrastructure failure), which must never leave the
// outstanding counter inconsistent.
func (w *worker) execute(t task) {
	defer func() {
		if r := recover(); r != nil {
			w.pool.errorSink("worker %d: task wrapper panicked: %v", w.id, r)
		}
	}()
	t.run()
}
