package substrate

import "runtime"

// ErrorSink receives human-readable log lines for internal failures the
// pool swallows instead of propagating — panics escaping the completion
// hook itself, not user-callable panics, which travel through the Future.
// The format and arguments follow log.Printf conventions.
type ErrorSink func(format string, args ...any)

// queueFactory builds the task queue a Pool runs over.
type queueFactory func() Queue[task]

// Config holds every option NewPool accepts.
type Config struct {
	NumWorkers   int
	QueueFactory queueFactory
	ErrorSink    ErrorSink
}

// Option configures a Pool at construction time.
type Option func(*Config)

// DefaultConfig returns the configuration NewPool starts from: one worker
// per logical CPU, backed by the lock-free queue, logging swallowed
// failures via the standard library logger.
func DefaultConfig() Config {
	return Config{
		NumWorkers:   runtime.NumCPU(),
		QueueFactory: func() Queue[task] { return NewLockFreeQueue[task]() },
		ErrorSink:    defaultErrorSink,
	}
}

// WithNumWorkers sets the fixed number of worker goroutines. Zero or
// negative values are rejected by NewPool, not silently clamped, because a
// pool with no workers can enqueue tasks that will never run.
func WithNumWorkers(n int) Option {
	return func(c *Config) { c.NumWorkers = n }
}

// WithLockFreeQueue backs the pool with the Michael-Scott lock-free queue
// (the default). Workers busy-yield when it is empty.
func WithLockFreeQueue() Option {
	return func(c *Config) {
		c.QueueFactory = func() Queue[task] { return NewLockFreeQueue[task]() }
	}
}

// WithLockedQueue backs the pool with the mutex-and-condvar queue. Workers
// park in BlockPop when it is empty and are woken immediately on Stop.
func WithLockedQueue() Option {
	return func(c *Config) {
		c.QueueFactory = func() Queue[task] { return NewLockedQueue[task]() }
	}
}

// WithErrorSink overrides where swallowed internal failures are logged.
func WithErrorSink(sink ErrorSink) Option {
	return func(c *Config) {
		if sink != nil {
			c.ErrorSink = sink
		}
	}
}

func (c *Config) validate() error {
	if c.NumWorkers <= 0 {
		return ErrZeroWorkers
	}
	return nil
}
