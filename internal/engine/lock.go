package engine

import (
	"sync"
	"sync/atomic"
)

// runLock provides non-blocking lock semantics using atomic operations.
// Only one invocation may run against a document at a time; a second call
// for the same document fails fast instead of queueing.
type runLock struct {
	state atomic.Int32 // 0 = unlocked, 1 = locked
}

// TryAcquire attempts to acquire the lock without blocking.
// Returns true if the lock was successfully acquired, false otherwise.
func (l *runLock) TryAcquire() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Release releases the lock.
// Must only be called by the goroutine that successfully acquired the lock.
func (l *runLock) Release() {
	l.state.Store(0)
}

// lockRegistry hands out one lock per document ID
type lockRegistry struct {
	locks sync.Map // docID -> *runLock
}

func (r *lockRegistry) lockFor(docID string) *runLock {
	actual, _ := r.locks.LoadOrStore(docID, &runLock{})
	return actual.(*runLock)
}
