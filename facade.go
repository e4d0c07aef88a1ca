package substrate

import "sync"

var (
	defaultOnce sync.Once
	defaultPool *Pool
	defaultMu   sync.Mutex
)

// Default returns a process-wide Pool, built with DefaultConfig on first
// use. The surrounding event bus and its producers are expected to share
// this single instance rather than each constructing their own, the same
// way momentics-hioload-ws's pool.DefaultManager hands every caller the
// same buffer-pool manager.
func Default() *Pool {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultOnce.Do(func() {
		p, err := NewPool()
		if err != nil {
			// DefaultConfig() always validates; a failure here means the
			// runtime reports zero logical CPUs, which cannot happen.
			panic(err)
		}
		defaultPool = p
	})
	return defaultPool
}

// ResetDefault stops the current process-wide pool, if one was built, and
// clears it so the next call to Default builds a fresh one. Intended for
// test teardown and explicit shutdown at program exit — never called
// implicitly.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultPool != nil {
		defaultPool.Stop(true)
	}
	defaultPool = nil
	defaultOnce = sync.Once{}
}
