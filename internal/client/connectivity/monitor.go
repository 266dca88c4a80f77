// Package connectivity tracks whether the server is reachable and fans
// transition events out to subscribers.
package connectivity

import "sync"

type subscriber struct {
	fn func(online bool)
	id int
}

// Monitor exposes the current online/offline status and notifies
// subscribers about transitions. The actual detection signal is external:
// something calls SetOnline when reachability changes.
type Monitor struct {
	subs   []subscriber
	nextID int
	online bool
	mu     sync.Mutex
}

// NewMonitor creates a monitor with the given initial status.
func NewMonitor(online bool) *Monitor {
	return &Monitor{online: online}
}

// IsOnline returns the current status.
func (m *Monitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.online
}

// SetOnline records a status report from the detection source. On a real
// transition every subscriber is invoked synchronously, in subscription
// order; repeated reports of the same status are dropped.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online

	// Копируем список чтобы не держать lock во время нотификаций
	subs := make([]subscriber, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	for _, sub := range subs {
		sub.fn(online)
	}
}

// Subscribe registers a transition listener and returns its unsubscribe
// function.
func (m *Monitor) Subscribe(fn func(online bool)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	m.subs = append(m.subs, subscriber{fn: fn, id: id})

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		for i := range m.subs {
			if m.subs[i].id == id {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				return
			}
		}
	}
}
