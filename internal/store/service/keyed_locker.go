// Package service provides in-process coordination for store operations.
package service

import (
	"slices"
	"sync"
)

// KeyedLocker hands out one mutex per key. Entries are reference counted and removed once
// no goroutine holds or waits for them.
type KeyedLocker struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedLocker creates an empty KeyedLocker.
func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{locks: make(map[string]*keyedLock)}
}

// Lock acquires every key and returns a function releasing them. Keys are taken in sorted
// order so callers locking overlapping sets cannot deadlock. Duplicate keys are ignored.
func (k *KeyedLocker) Lock(keys ...string) (unlock func()) {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	acquired := make([]*keyedLock, 0, len(sorted))
	for _, key := range sorted {
		l := k.acquire(key)
		l.mu.Lock()
		acquired = append(acquired, l)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(sorted) - 1; i >= 0; i-- {
				acquired[i].mu.Unlock()
				k.release(sorted[i])
			}
		})
	}
}

func (k *KeyedLocker) acquire(key string) *keyedLock {
	k.mu.Lock()
	defer k.mu.Unlock()

	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	return l
}

func (k *KeyedLocker) release(key string) {
	k.mu.Lock()
	defer k.mu.Unlock()

	l := k.locks[key]
	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
}

// Len returns the number of keys currently held or awaited.
func (k *KeyedLocker) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
