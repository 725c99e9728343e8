package concurrency

import (
	"sync"
)

// LockManager hands out one mutex per key, typically a user id. It serializes
// in-process work per user ahead of the database row lock.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Lock acquires the key's mutex and returns its release func
func (lm *LockManager) Lock(key string) func() {
	mu := lm.GetLock(key)
	mu.Lock()
	return mu.Unlock
}

// TryLock acquires the key's mutex only if it is free
func (lm *LockManager) TryLock(key string) (func(), bool) {
	mu := lm.GetLock(key)
	if !mu.TryLock() {
		return nil, false
	}
	return mu.Unlock, true
}
