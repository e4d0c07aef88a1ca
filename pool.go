package substrate

import (
	"sync"
	"sync/atomic"

	"github.com/wengjianhong/qtsubstrate/internal/rungroup"
)

// poolState is the pool's single source of truth for its lifecycle.
// Transitions are one-way: running -> (draining|abandoning) -> stopped.
// Folding "is the pool stopped" and "which Stop variant" into one atomic
// avoids a window where a worker could observe running == false before it
// could observe which mode Stop committed to.
type poolState int32

const (
	stateRunning poolState = iota
	stateDraining
	stateAbandoning
	stateStopped
)

// Pool owns a fixed set of worker goroutines that pull tasks from a shared
// queue (lock-free or locked, selected via Option) and execute them,
// delivering results through the Future returned by Submit.
//
// State machine: RUNNING (initial) -> STOPPING_DRAIN|STOPPING_ABANDON ->
// STOPPED. Every transition is one-way.
type Pool struct {
	queue     Queue[task]
	errorSink ErrorSink

	state atomic.Int32 // poolState

	outstanding atomic.Int64

	completionMu   sync.Mutex
	completionCond *sync.Cond

	workers []*worker
	group   *rungroup.Group
}

// NewPool constructs a pool and starts its worker goroutines. It fails
// loudly (returns a non-nil error, starts nothing) if asked for zero or
// fewer workers.
func NewPool(opts ...Option) (*Pool, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	p := &Pool{
		queue:     cfg.QueueFactory(),
		errorSink: cfg.ErrorSink,
		workers:   make([]*worker, cfg.NumWorkers),
	}
	p.completionCond = sync.NewCond(&p.completionMu)
	p.group = rungroup.New(func(id int, r any, stack string) {
		p.errorSink("worker %d: goroutine panicked: %v\n%s", id, r, stack)
	})
	// p.state defaults to stateRunning (the zero value). Storing it
	// explicitly publishes construction before any worker's first load.
	p.state.Store(int32(stateRunning))

	for i := range p.workers {
		p.workers[i] = newWorker(i, p)
	}
	for _, w := range p.workers {
		p.group.Go(w.id, w.run)
	}

	return p, nil
}

// Submit wraps fn and its bound state into a task, enqueues it, and returns
// the Future the caller will observe its result through. The ordering
// guarantee is: the outstanding-counter increment happens-before the
// enqueue; the enqueue happens-before the dequeue that executes the task;
// the decrement happens-before the wake of any WaitAll caller.
//
// Submit is a free function, not a method, because Go methods cannot carry
// their own type parameters independent of their receiver's.
func Submit[T any](p *Pool, fn func() (T, error)) (*Future[T], error) {
	if fn == nil {
		return nil, ErrNilTask
	}
	if poolState(p.state.Load()) != stateRunning {
		return nil, ErrPoolStopped
	}

	future := newFuture[T]()
	t := newTask(p, fn, future)

	p.outstanding.Add(1)
	if err := p.queue.Enqueue(t); err != nil {
		p.outstanding.Add(-1)
		return nil, errEnqueue(err)
	}
	return future, nil
}

// WaitAll blocks until every task submitted so far has either completed or
// been abandoned. It is safe against spurious wakeup and does not stop the
// pool — new tasks may still be submitted once it returns.
func (p *Pool) WaitAll() {
	p.completionMu.Lock()
	defer p.completionMu.Unlock()
	for p.outstanding.Load() != 0 {
		p.completionCond.Wait()
	}
}

// PendingTasks returns an approximate, monotone-consistent count of tasks
// that have been submitted but not yet completed or abandoned. It includes
// both queued and currently-executing tasks.
func (p *Pool) PendingTasks() int64 {
	return p.outstanding.Load()
}

// ThreadCount returns the fixed number of worker goroutines this pool owns.
func (p *Pool) ThreadCount() int {
	return len(p.workers)
}

// IsRunning reports whether the pool is still in the RUNNING state.
func (p *Pool) IsRunning() bool {
	return poolState(p.state.Load()) == stateRunning
}

// Stop transitions the pool out of RUNNING exactly once; later calls are
// no-ops. drain=true waits for every queued task to finish before joining
// workers (already-blocked WaitAll callers return first, as soon as the
// counter reaches zero). drain=false clears the queue immediately: every
// discarded task's Future observes ErrBrokenPromise instead of ever
// running.
func (p *Pool) Stop(drain bool) {
	target := stateDraining
	if !drain {
		target = stateAbandoning
	}
	if !p.state.CompareAndSwap(int32(stateRunning), int32(target)) {
		return
	}

	if !drain {
		abandonAll(p.queue)
	}

	if bq, ok := p.queue.(blockingQueue); ok {
		bq.Close()
	}

	p.group.Wait()
	p.state.Store(int32(stateStopped))
}

// completeOne decrements the outstanding counter and, on the transition to
// zero, wakes every WaitAll waiter. Called exactly once per task, whether
// it ran or was abandoned.
func (p *Pool) completeOne() {
	if p.outstanding.Add(-1) == 0 {
		p.completionMu.Lock()
		p.completionCond.Broadcast()
		p.completionMu.Unlock()
	}
}

// blockingQueue is the subset of BlockingQueue[task] Pool needs to wake
// parked workers on Stop, without committing Pool itself to the full
// generic BlockingQueue[task] interface (Go interfaces with type-parameter
// methods can't be type-asserted to directly across instantiations).
type blockingQueue interface {
	Close()
}
