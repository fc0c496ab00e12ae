package phaxio

import (
	"slices"
	"sync"
	"sync/atomic"
)

// subscription represents a registered callback listener.
type subscription struct {
	id       uint64
	callback func(CallbackPayload)
	active   atomic.Bool
}

// subscriptionManager handles callback listeners with safe lifecycle management.
// It ensures listeners are never invoked after unsubscription completes.
type subscriptionManager struct {
	mu     sync.RWMutex
	subs   []*subscription // registration order
	nextID atomic.Uint64
}

// newSubscriptionManager creates a new subscription manager.
func newSubscriptionManager() *subscriptionManager {
	return &subscriptionManager{}
}

// subscribe registers a listener and returns its unsubscribe function.
func (m *subscriptionManager) subscribe(callback func(CallbackPayload)) func() {
	sub := &subscription{
		id:       m.nextID.Add(1),
		callback: callback,
	}
	sub.active.Store(true)

	m.mu.Lock()
	m.subs = append(m.subs, sub)
	m.mu.Unlock()

	return func() {
		m.unsubscribe(sub.id)
	}
}

// unsubscribe removes a listener. Safe to call multiple times.
func (m *subscriptionManager) unsubscribe(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.subs = slices.DeleteFunc(m.subs, func(s *subscription) bool {
		if s.id == id {
			s.active.Store(false) // Mark inactive before removing
			return true
		}
		return false
	})
}

// notify calls all registered listeners in registration order.
// Listeners are invoked after releasing the read lock, so they may
// subscribe or unsubscribe without deadlocking.
func (m *subscriptionManager) notify(payload CallbackPayload) {
	m.mu.RLock()
	if len(m.subs) == 0 {
		m.mu.RUnlock()
		return
	}
	subs := slices.Clone(m.subs)
	m.mu.RUnlock()

	for _, sub := range subs {
		if sub.active.Load() {
			sub.callback(payload)
		}
	}
}

// count returns the number of registered listeners.
func (m *subscriptionManager) count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subs)
}
