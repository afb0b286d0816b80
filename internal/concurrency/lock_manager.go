package concurrency

import (
	"sync"
)

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

// LockManager hands out one mutex per key. An entry lives only while some
// caller holds or waits for it, so the table is bounded by in-flight work
// rather than by the number of keys ever seen.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{locks: make(map[string]*keyedLock)}
}

// WithLock runs fn while holding the lock for key
func (lm *LockManager) WithLock(key string, fn func() error) error {
	l := lm.acquire(key)
	l.mu.Lock()
	defer lm.release(key, l)
	return fn()
}

// Len reports how many keys currently have a live entry
func (lm *LockManager) Len() int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return len(lm.locks)
}

func (lm *LockManager) acquire(key string) *keyedLock {
	lm.mu.Lock()
	defer lm.mu.Unlock()

	l, ok := lm.locks[key]
	if !ok {
		l = &keyedLock{}
		lm.locks[key] = l
	}
	l.refs++
	return l
}

func (lm *LockManager) release(key string, l *keyedLock) {
	l.mu.Unlock()

	lm.mu.Lock()
	defer lm.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(lm.locks, key)
	}
}
