package web

import "sync"

// busyGuard lets one submission per key be in flight at a time.
type busyGuard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func newBusyGuard() *busyGuard {
	return &busyGuard{inFlight: make(map[string]struct{})}
}

// acquire marks key busy. ok is false when it already was; otherwise the
// caller must call release.
func (b *busyGuard) acquire(key string) (release func(), ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, busy := b.inFlight[key]; busy {
		return nil, false
	}
	b.inFlight[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.inFlight, key)
			b.mu.Unlock()
		})
	}, true
}
