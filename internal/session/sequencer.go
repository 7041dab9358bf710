package session

import (
	"context"
	"sync"
)

// sequencer hands out increasing tokens for one poller's fetches. Issuing a
// token cancels the fetch holding the previous one, and a result is applied
// only while no newer result has been applied.
type sequencer struct {
	mu      sync.Mutex
	issued  uint64
	applied uint64
	cancel  context.CancelFunc
}

func (s *sequencer) next(ctx context.Context) (context.Context, uint64) {
	fetchCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.issued++
	s.cancel = cancel
	return fetchCtx, s.issued
}

// release frees the context of token once its fetch is finished.
func (s *sequencer) release(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == s.issued && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// apply runs fn if token is newer than the last applied token.
func (s *sequencer) apply(token uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token <= s.applied {
		return false
	}
	s.applied = token
	fn()
	return true
}

// follow runs fn for work chained off token, as long as nothing newer has
// been applied since.
func (s *sequencer) follow(token uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token < s.applied {
		return false
	}
	s.applied = token
	fn()
	return true
}
