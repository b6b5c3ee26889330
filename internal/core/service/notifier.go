package service

import "sync"

// Notifier is a minimal fire-and-forget broadcast primitive. Subscribers get
// a buffered channel that coalesces signals: a slow subscriber sees at most
// one pending notification, which is enough because receivers re-fetch
// authoritative state rather than consume payloads.
type Notifier struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[chan struct{}]struct{})}
}

// Subscribe registers a new listener channel.
func (n *Notifier) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.subs[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener. Safe to call with an unknown channel.
func (n *Notifier) Unsubscribe(ch chan struct{}) {
	n.mu.Lock()
	delete(n.subs, ch)
	n.mu.Unlock()
}

// Broadcast signals every subscriber without blocking. A subscriber with a
// pending signal is skipped; its next receive already covers this event.
func (n *Notifier) Broadcast() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
