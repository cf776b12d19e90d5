package upload

import "sync"

// idLocks serializes operations on the same record id within this process.
type idLocks struct {
	mu    sync.Mutex
	locks map[uint]*idLock
}

type idLock struct {
	mu   sync.Mutex
	refs int
}

func newIDLocks() *idLocks {
	return &idLocks{locks: make(map[uint]*idLock)}
}

// lock blocks until id is free and returns the matching unlock func.
func (l *idLocks) lock(id uint) func() {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &idLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
