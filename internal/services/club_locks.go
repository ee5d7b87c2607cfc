package services

import "sync"

// clubLocks hands out one mutex per club so read-check-write sequences on the
// same roster run one at a time. Locks are never freed; the set is bounded by
// the number of clubs this process touches.
type clubLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newClubLocks() *clubLocks {
	return &clubLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the club's mutex and returns its unlock func.
func (l *clubLocks) lock(clubID string) func() {
	l.mu.Lock()
	m, ok := l.locks[clubID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[clubID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
