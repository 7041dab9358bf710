package session

import (
	"context"
	"sync"

	"painters-telegraph/internal/api"
)

type MessageSnapshot struct {
	Message *api.PlayerMessage
	Err     error
}

// Phase is Idle until a message has been applied.
func (s MessageSnapshot) Phase() api.Phase {
	if s.Message == nil {
		return api.PhaseIdle
	}
	return s.Message.Phase
}

// MessagePoller keeps the player's latest turn instruction. Rejected and
// ambiguous messages leave the previous one in place.
type MessagePoller struct {
	backend Backend
	seq     sequencer

	mu   sync.Mutex
	snap MessageSnapshot
}

func NewMessagePoller(backend Backend) *MessagePoller {
	return &MessagePoller{backend: backend}
}

func (p *MessagePoller) Refresh(ctx context.Context, player api.Player) error {
	fetchCtx, token := p.seq.next(ctx)
	defer p.seq.release(token)

	msg, err := p.backend.GetPlayerMessage(fetchCtx, player)
	if fetchCtx.Err() != nil {
		return fetchCtx.Err()
	}
	p.seq.apply(token, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.snap.Err = err
		if err == nil {
			p.snap.Message = msg
		}
	})
	return err
}

func (p *MessagePoller) Snapshot() MessageSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap := p.snap
	if snap.Message != nil {
		copied := *snap.Message
		snap.Message = &copied
	}
	return snap
}
