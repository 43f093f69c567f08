package concurrency

import "sync"

// LockManager hands out one mutex per key so callers can serialize work
// per user without a global lock. Locks are never evicted; the key space
// is bounded by the user population.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// Lock acquires the mutex for key, creating it on first use, and returns
// the matching unlock.
func (lm *LockManager) Lock(key string) func() {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	mu := lock.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
