package gateway

import (
	"sync"
	"time"
)

// guildWaitTimeout bounds how long readiness waits for guilds that never
// stream in, e.g. ones that are unavailable during an outage.
const guildWaitTimeout = 10 * time.Second

// readiness is released once every guild announced in READY has arrived
// through GUILD_CREATE. Only then does the state cache hold their channels.
type readiness struct {
	mu      sync.Mutex
	pending map[string]struct{}
	once    sync.Once
	done    chan struct{}
}

func newReadiness() *readiness {
	return &readiness{done: make(chan struct{})}
}

func (r *readiness) expect(guildIDs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending = make(map[string]struct{}, len(guildIDs))
	for _, id := range guildIDs {
		r.pending[id] = struct{}{}
	}
	if len(r.pending) == 0 {
		r.release()
	}
}

func (r *readiness) arrived(guildID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pending == nil {
		return
	}
	delete(r.pending, guildID)
	if len(r.pending) == 0 {
		r.release()
	}
}

func (r *readiness) release() {
	r.once.Do(func() { close(r.done) })
}

func (r *readiness) Done() <-chan struct{} {
	return r.done
}
