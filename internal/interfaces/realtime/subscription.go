package realtime

import (
	"sync"
	"sync/atomic"
)

// Subscription is one reader of a session's frames. A slow reader loses its
// oldest queued frame, never the newest, and never sees frames out of order.
type Subscription struct {
	hub       *Hub
	sessionID string
	ch        chan Frame

	mu      sync.Mutex
	last    uint64
	closed  bool
	dropped atomic.Uint64
}

func (s *Subscription) C() <-chan Frame {
	return s.ch
}

func (s *Subscription) SessionID() string {
	return s.sessionID
}

// Dropped counts frames discarded for this reader.
func (s *Subscription) Dropped() uint64 {
	return s.dropped.Load()
}

func (s *Subscription) Close() {
	s.hub.remove(s)
	s.closeChannel()
}

func (s *Subscription) closeChannel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}

func (s *Subscription) offer(frame Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || frame.Seq <= s.last {
		if !s.closed {
			s.dropped.Add(1)
		}
		return
	}
	s.last = frame.Seq

	select {
	case s.ch <- frame:
		return
	default:
	}

	select {
	case <-s.ch:
		s.dropped.Add(1)
	default:
	}
	select {
	case s.ch <- frame:
	default:
		s.dropped.Add(1)
	}
}
