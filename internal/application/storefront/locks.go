package storefront

import "sync"

// visitorLocks serializes the mutations of one visitor while letting different
// visitors proceed in parallel. Entries are dropped once nobody holds or waits
// on them, so the map stays proportional to concurrent visitors.
type visitorLocks struct {
	mu    sync.Mutex
	locks map[string]*visitorLock
}

type visitorLock struct {
	mu   sync.Mutex
	refs int
}

func newVisitorLocks() *visitorLocks {
	return &visitorLocks{locks: make(map[string]*visitorLock)}
}

// lock acquires the visitor's lock and returns its release func
func (l *visitorLocks) lock(visitorID string) func() {
	l.mu.Lock()
	vl, ok := l.locks[visitorID]
	if !ok {
		vl = &visitorLock{}
		l.locks[visitorID] = vl
	}
	vl.refs++
	l.mu.Unlock()

	vl.mu.Lock()
	return func() {
		vl.mu.Unlock()

		l.mu.Lock()
		vl.refs--
		if vl.refs == 0 {
			delete(l.locks, visitorID)
		}
		l.mu.Unlock()
	}
}

func (l *visitorLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
