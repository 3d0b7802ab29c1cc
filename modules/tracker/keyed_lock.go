package tracker

import "sync"

// keyedLock provides per-key mutual exclusion. The tracker holds a visitor's
// lock for the duration of "decide continuity + append" so concurrent beacons
// for the same visitor cannot race each other into duplicate sessions.
// Entries are reference-counted and removed once the last holder releases,
// keeping the map bounded by the number of in-flight visitors.
type keyedLock struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLock() *keyedLock {
	return &keyedLock{locks: make(map[string]*lockEntry)}
}

// Lock acquires the lock for key and returns the matching release function.
func (kl *keyedLock) Lock(key string) (unlock func()) {
	kl.mu.Lock()
	entry, ok := kl.locks[key]
	if !ok {
		entry = &lockEntry{}
		kl.locks[key] = entry
	}
	entry.refs++
	kl.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		kl.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(kl.locks, key)
		}
		kl.mu.Unlock()
	}
}
