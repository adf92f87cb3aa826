package usecase

import (
	"sort"
	"sync"
)

// accountLocks serializes balance-mutating operations per account. Locks are
// created on first use and held for the lifetime of the process.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *accountLocks) get(id string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}

// acquire locks the given account IDs in lexical order, so two transfers in
// opposite directions cannot deadlock. Returns a release function that
// unlocks in reverse order. Duplicate IDs must not be passed.
func (l *accountLocks) acquire(ids ...string) func() {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	held := make([]*sync.Mutex, 0, len(sorted))
	for _, id := range sorted {
		m := l.get(id)
		m.Lock()
		held = append(held, m)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
