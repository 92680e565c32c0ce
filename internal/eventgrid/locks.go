package eventgrid

import "sync"

// CellLocks serialises commits to the same cell. Share one instance across
// grids so concurrent submits for a flight cell run one after another.
type CellLocks struct {
	mu    sync.Mutex
	locks map[string]*cellLock
}

type cellLock struct {
	mu   sync.Mutex
	refs int
}

func NewCellLocks() *CellLocks {
	return &CellLocks{locks: make(map[string]*cellLock)}
}

// Lock blocks until key is free and returns the unlock func.
func (l *CellLocks) Lock(key string) func() {
	l.mu.Lock()
	cl, ok := l.locks[key]
	if !ok {
		cl = &cellLock{}
		l.locks[key] = cl
	}
	cl.refs++
	l.mu.Unlock()

	cl.mu.Lock()
	return func() {
		cl.mu.Unlock()

		l.mu.Lock()
		cl.refs--
		if cl.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

func (l *CellLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
