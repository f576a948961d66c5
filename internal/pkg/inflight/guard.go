package inflight

import "sync"

// Guard tracks outstanding asynchronous actions so a second submission of the
// same action against the same target is rejected while the first is pending.
type Guard struct {
	mu      sync.Mutex
	pending map[string]struct{}
}

func NewGuard() *Guard {
	return &Guard{pending: make(map[string]struct{})}
}

// TryAcquire reserves the action/key pair. It returns false when the pair is
// already held. Callers must Release on every exit path.
func (g *Guard) TryAcquire(action, key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := action + ":" + key
	if _, held := g.pending[id]; held {
		return false
	}
	g.pending[id] = struct{}{}
	return true
}

func (g *Guard) Release(action, key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.pending, action+":"+key)
}
