package session

import (
	"context"
	"sync"
)

const defaultSubscriberBuffer = 8

// Subscribe returns a channel that receives a snapshot after every state
// transition. Delivery is non-blocking: a subscriber whose buffer is full
// misses intermediate snapshots rather than stalling transitions, which
// is safe because every snapshot carries the complete state. The channel
// is closed when ctx is canceled or the manager is closed.
func (m *Manager) Subscribe(ctx context.Context) <-chan Snapshot {
	sub := newSubscriber(m.bufSize)

	m.subMu.Lock()
	if m.closed {
		m.subMu.Unlock()
		sub.close()
		return sub.ch
	}
	m.subs[sub] = struct{}{}
	m.subMu.Unlock()

	// Auto-cleanup on context cancellation. Unsubscribing after Close is
	// harmless: the map delete and the channel close are both idempotent.
	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			m.unsubscribe(sub)
		}()
	}

	return sub.ch
}

// Close closes all subscriber channels and stops further publishes. The
// lifecycle operations themselves remain usable; only the reactive feed
// shuts down. Close is idempotent.
func (m *Manager) Close() {
	m.subMu.Lock()
	if m.closed {
		m.subMu.Unlock()
		return
	}
	m.closed = true
	for sub := range m.subs {
		sub.close()
	}
	clear(m.subs)
	m.subMu.Unlock()
}

// publish fans the current snapshot out to all subscribers. Callers must
// not hold mu. Holding subMu across the snapshot read serializes
// publishes, so subscribers observe transitions in a single global order.
func (m *Manager) publish() {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	if m.closed || len(m.subs) == 0 {
		return
	}

	snap := m.Snapshot()
	for sub := range m.subs {
		sub.send(snap)
	}
}

func (m *Manager) unsubscribe(sub *subscriber) {
	m.subMu.Lock()
	delete(m.subs, sub)
	m.subMu.Unlock()
	sub.close()
}

type subscriber struct {
	ch     chan Snapshot
	closed bool
	mu     sync.Mutex
}

func newSubscriber(bufferSize int) *subscriber {
	return &subscriber{
		// Minimum buffer of 1 keeps sends non-blocking even for
		// misconfigured sizes
		ch: make(chan Snapshot, max(bufferSize, 1)),
	}
}

func (s *subscriber) send(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	select {
	case s.ch <- snap:
	default:
		// full buffer: drop, the next snapshot supersedes this one anyway
	}
}

func (s *subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}
