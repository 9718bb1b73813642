// Package session provides player session tracking and room presence
// management for the game server.
package session

import (
	"fmt"
	"sync"
)

// Mailbox queues outbound narrative events for one session, bridging the
// engine to whatever transport is draining the session.
type Mailbox struct {
	uid    string
	events chan string
	mu     sync.Mutex
	closed bool
}

// NewMailbox creates a Mailbox for the given session UID.
//
// Precondition: uid must be non-empty.
// Postcondition: Returns a Mailbox with an open events channel.
func NewMailbox(uid string, bufferSize int) *Mailbox {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &Mailbox{
		uid:    uid,
		events: make(chan string, bufferSize),
	}
}

// UID returns the session's unique identifier.
func (m *Mailbox) UID() string {
	return m.uid
}

// Push enqueues an event line for the transport to deliver.
//
// Postcondition: The line is queued, or an error if the mailbox is closed
// or full. A full buffer drops the event rather than blocking a handler.
func (m *Mailbox) Push(line string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return fmt.Errorf("mailbox %s is closed", m.uid)
	}
	select {
	case m.events <- line:
		return nil
	default:
		return fmt.Errorf("mailbox %s event buffer full", m.uid)
	}
}

// Events returns the read-only events channel the transport drains.
func (m *Mailbox) Events() <-chan string {
	return m.events
}

// Close marks the mailbox closed and closes the events channel.
//
// Postcondition: Further Push calls return an error.
func (m *Mailbox) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.events)
	}
	return nil
}

// IsClosed reports whether the mailbox has been closed.
func (m *Mailbox) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
