package substrate

// task is the thread-pool payload: a type-erased, zero-argument, no-return
// invokable, bundled with the one action that can happen to it instead of
// running — being abandoned when Stop(false) discards it unrun. Both
// closures share the same result holder and both decrement the pool's
// outstanding counter exactly once, via Pool.completeOne.
type task struct {
	run     func()
	abandon func()
}

// newTask wraps a user callable and its typed result holder into a task.
// fn's panics are recovered and routed into the future as an error; the
// outstanding counter is decremented in a defer so it never goes stale
// regardless of how fn returns.
func newTask[T any](p *Pool, fn func() (T, error), future *Future[T]) task {
	return task{
		run: func() {
			defer p.completeOne()
			defer func() {
				if r := recover(); r != nil {
					future.resolve(*new(T), newPanicError(r))
				}
			}()
			value, err := fn()
			future.resolve(value, err)
		},
		abandon: func() {
			future.resolve(*new(T), ErrBrokenPromise)
			p.completeOne()
		},
	}
}

// abandonAll drains every remaining task from q, abandoning each one so its
// Future observes ErrBrokenPromise instead of ever running. Used by
// Pool.Stop(false).
func abandonAll(q Queue[task]) {
	for {
		t, ok := q.Dequeue()
		if !ok {
			return
		}
		t.abandon()
	}
}
