// Package notification provides the notification manager for broadcasting
// state changes to subscribers.
package notification

import (
	"sync"

	"github.com/google/uuid"
)

// DefaultBufferSize is the number of pending notifications kept per subscriber.
const DefaultBufferSize = 16

// Notification wraps a payload with its broadcast sequence number.
type Notification[T any] struct {
	SequenceNo uint64
	Payload    T
}

// subscription represents a subscriber's subscription.
type subscription[T any] struct {
	id string
	ch chan Notification[T]
}

// Manager manages notification subscriptions and broadcasting.
type Manager[T any] struct {
	mu            sync.RWMutex
	subscriptions map[string]*subscription[T]
	bufferSize    int
	closed        bool

	sequenceNo   uint64
	sequenceNoMu sync.Mutex
}

// NewManager creates a new notification manager.
// A non-positive bufferSize selects DefaultBufferSize.
func NewManager[T any](bufferSize int) *Manager[T] {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Manager[T]{
		subscriptions: make(map[string]*subscription[T]),
		bufferSize:    bufferSize,
	}
}

// Subscribe adds a new subscription and returns the subscription ID and its channel.
// Subscribing to a closed manager returns an already closed channel.
func (m *Manager[T]) Subscribe() (string, <-chan Notification[T]) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	ch := make(chan Notification[T], m.bufferSize)
	if m.closed {
		close(ch)
		return id, ch
	}

	m.subscriptions[id] = &subscription[T]{
		id: id,
		ch: ch,
	}
	return id, ch
}

// Unsubscribe removes a subscription and closes its channel.
func (m *Manager[T]) Unsubscribe(subscriptionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, ok := m.subscriptions[subscriptionID]
	if !ok {
		return
	}
	delete(m.subscriptions, subscriptionID)
	close(sub.ch)
}

// nextSequenceNo returns the next sequence number and increments the counter.
func (m *Manager[T]) nextSequenceNo() uint64 {
	m.sequenceNoMu.Lock()
	defer m.sequenceNoMu.Unlock()
	m.sequenceNo++
	return m.sequenceNo
}

// Broadcast sends a payload to all subscribers without blocking.
// A subscriber whose buffer is full loses its oldest pending notification,
// so the newest one is always queued. Returns the number of subscribers reached.
func (m *Manager[T]) Broadcast(payload T) (delivered int) {
	n := Notification[T]{
		SequenceNo: m.nextSequenceNo(),
		Payload:    payload,
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscriptions {
		select {
		case sub.ch <- n:
			delivered++
			continue
		default:
		}

		// Subscriber is behind, shed its oldest notification.
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- n:
			delivered++
		default:
		}
	}
	return delivered
}

// SubscriberCount returns the number of active subscribers.
func (m *Manager[T]) SubscriberCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscriptions)
}

// Close closes the manager and all subscription channels.
func (m *Manager[T]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true
	for id, sub := range m.subscriptions {
		close(sub.ch)
		delete(m.subscriptions, id)
	}
}
