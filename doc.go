// Package substrate is the in-process concurrency core of the quant
// trading platform: a lock-free (or locked, by choice) multi-producer
// multi-consumer FIFO queue and a fixed-size thread pool built over it.
//
// Market-data adapters and strategy callbacks are producers. They submit
// callables to a Pool and receive a Future back; a fixed set of worker
// goroutines drains the shared queue and executes callables, routing
// results or failures into the matching future.
//
// # Quick Start
//
//	pool, err := substrate.NewPool()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Stop(true)
//
//	future, err := substrate.Submit(pool, func() (int, error) {
//	    return 42, nil
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	value, err := future.Get()
//
// # Queue variants
//
// Pools can run over either queue implementation:
//
//	pool, _ := substrate.NewPool(substrate.WithLockedQueue())
//
// The lock-free variant (default) never blocks a worker; idle workers
// busy-yield. The locked variant parks workers on a condition variable and
// wakes them immediately on Stop. Both variants preserve each producer's
// own insertion order; ordering across producers is a linearization of
// their individual sequences, not a global total order.
//
// # Shutdown
//
// Stop(true) drains: already-queued tasks run to completion before workers
// join. Stop(false) abandons: the queue is cleared and every discarded
// task's future observes ErrBrokenPromise.
//
// # Thread Safety
//
// Every exported method is safe for concurrent use by any number of
// goroutines, except LockFreeQueue.Clear, which must not run while any
// other operation on the same queue is in flight.
package substrate
