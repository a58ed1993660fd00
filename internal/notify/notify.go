// Package notify carries advisory, user-facing notifications from the core to
// whichever presentation layer is listening. The core never renders them.
package notify

import "sync"

// Severity classifies how a notification should be presented.
type Severity int

const (
	SeverityDefault Severity = iota
	SeverityDestructive
)

func (s Severity) String() string {
	switch s {
	case SeverityDestructive:
		return "destructive"
	default:
		return "default"
	}
}

// Notification is a (title, description, severity) triple for a toast.
type Notification struct {
	Title       string
	Description string
	Severity    Severity
}

// Sink receives notifications. Implementations must not block.
type Sink interface {
	Notify(Notification)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Notification)

// Notify calls f(n).
func (f SinkFunc) Notify(n Notification) { f(n) }

// Discard drops every notification.
var Discard Sink = SinkFunc(func(Notification) {})

// DefaultBuffer is the stream capacity used when NewStream gets a non-positive size.
const DefaultBuffer = 16

// Stream is a buffered output stream of notifications. When the buffer is full the
// oldest pending notification is dropped so the newest one is always delivered.
type Stream struct {
	mu      sync.Mutex
	ch      chan Notification
	closed  bool
	dropped int
}

// NewStream creates a stream holding up to size undelivered notifications.
func NewStream(size int) *Stream {
	if size <= 0 {
		size = DefaultBuffer
	}
	return &Stream{ch: make(chan Notification, size)}
}

// Notify enqueues n without blocking. Notifications after Close are ignored.
func (s *Stream) Notify(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	for {
		select {
		case s.ch <- n:
			return
		default:
		}
		select {
		case <-s.ch:
			s.dropped++
		default:
		}
	}
}

// C returns the receive side of the stream. It is closed by Close.
func (s *Stream) C() <-chan Notification {
	return s.ch
}

// Dropped returns how many notifications were discarded because nobody was reading.
func (s *Stream) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Close closes the stream. It is safe to call more than once.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
