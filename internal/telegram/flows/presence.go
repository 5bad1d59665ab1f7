package flows

import (
	"sync"
	"time"
)

// Presence drops events queued before the process started and remembers
// who sent them, so their next live event can be greeted once.
type Presence struct {
	startedAt time.Time

	mu     sync.Mutex
	marked map[int64]struct{}
}

// NewPresence truncates startedAt to seconds since platform timestamps
// carry no sub-second part.
func NewPresence(startedAt time.Time) *Presence {
	return &Presence{
		startedAt: startedAt.Truncate(time.Second),
		marked:    make(map[int64]struct{}),
	}
}

// Stale reports whether sentAt predates process start. A zero time is never
// stale.
func (p *Presence) Stale(sentAt time.Time) bool {
	return !sentAt.IsZero() && sentAt.Before(p.startedAt)
}

func (p *Presence) Mark(userID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.marked[userID] = struct{}{}
}

// Consume reports whether userID was marked and clears the mark.
func (p *Presence) Consume(userID int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.marked[userID]; !ok {
		return false
	}
	delete(p.marked, userID)
	return true
}
