package services

import (
	"slices"
	"sync"
)

type accountLock struct {
	mu   sync.Mutex
	refs int
}

// AccountLocks hands out one mutex per account id. Entries exist only while
// some caller holds or waits for them. Every service that mutates accounts
// must share the same AccountLocks.
type AccountLocks struct {
	mu    sync.Mutex
	locks map[int64]*accountLock
}

func NewAccountLocks() *AccountLocks {
	return &AccountLocks{locks: make(map[int64]*accountLock)}
}

// Lock acquires every distinct id in ascending order and returns the matching
// unlock. Ascending acquisition keeps overlapping transfers deadlock free.
func (l *AccountLocks) Lock(ids ...int64) func() {
	ordered := slices.Clone(ids)
	slices.Sort(ordered)
	ordered = slices.Compact(ordered)

	held := make([]*accountLock, 0, len(ordered))
	for _, id := range ordered {
		entry := l.acquire(id)
		entry.mu.Lock()
		held = append(held, entry)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()
			l.release(ordered[i])
		}
	}
}

func (l *AccountLocks) acquire(id int64) *accountLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.locks[id]
	if !ok {
		entry = &accountLock{}
		l.locks[id] = entry
	}
	entry.refs++

	return entry
}

func (l *AccountLocks) release(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := l.locks[id]
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, id)
	}
}

func (l *AccountLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.locks)
}
