package session

import (
	"context"
	"strings"
	"sync"

	"painters-telegraph/internal/api"
)

type GameStatus int

const (
	StatusUnknown GameStatus = iota
	StatusInProgress
	StatusEnded
)

func (s GameStatus) String() string {
	switch s {
	case StatusInProgress:
		return "in-progress"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

type StateSnapshot struct {
	GameName string
	Status   GameStatus
	GameID   string
	State    *api.GameState
	Ended    *api.EndedGame
	Err      error
	EndedErr error
}

func (s StateSnapshot) RoundLabel() string {
	if s.Status != StatusInProgress {
		return ""
	}
	return s.State.RoundLabel()
}

// StatePoller tracks the shared state of the target game and fetches the
// archive once the game has ended.
type StatePoller struct {
	backend Backend
	endedID func(resolved string) string
	seq     sequencer

	mu   sync.Mutex
	snap StateSnapshot
}

// NewStatePoller builds a poller. endedID maps the resolved game id to the id
// used for the archive lookup; nil uses the resolved id.
func NewStatePoller(backend Backend, endedID func(resolved string) string) *StatePoller {
	if endedID == nil {
		endedID = func(resolved string) string { return resolved }
	}
	return &StatePoller{backend: backend, endedID: endedID}
}

// Reset points the poller at a new game and forgets the previous one.
func (p *StatePoller) Reset(gameName string) {
	_, token := p.seq.next(context.Background())
	p.seq.release(token)
	p.seq.apply(token, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.snap = StateSnapshot{GameName: strings.TrimSpace(gameName)}
	})
}

func (p *StatePoller) Refresh(ctx context.Context, gameName string) error {
	gameName = strings.TrimSpace(gameName)
	if gameName == "" {
		p.Reset("")
		return nil
	}
	fetchCtx, token := p.seq.next(ctx)
	defer p.seq.release(token)

	state, err := p.backend.GetGameState(fetchCtx, gameName)
	if fetchCtx.Err() != nil {
		return fetchCtx.Err()
	}

	var endedID string
	applied := p.seq.apply(token, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.snap.GameName != gameName {
			p.snap = StateSnapshot{GameName: gameName}
		}
		p.snap.Err = err
		if err != nil {
			return
		}
		if state.GameID != "" {
			p.snap.GameID = state.GameID
		}
		p.snap.State = state
		if state.Ended() {
			p.snap.Status = StatusEnded
			endedID = p.endedID(p.snap.GameID)
			return
		}
		p.snap.Status = StatusInProgress
		p.snap.Ended = nil
		p.snap.EndedErr = nil
	})
	if !applied || err != nil || !state.Ended() {
		return err
	}
	return p.fetchEnded(fetchCtx, token, endedID)
}

// fetchEnded runs the archive lookup chained off the state fetch holding token.
func (p *StatePoller) fetchEnded(ctx context.Context, token uint64, gameID string) error {
	if gameID == "" {
		p.seq.follow(token, func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.snap.EndedErr = api.ErrNoGameID
		})
		return api.ErrNoGameID
	}
	ended, err := p.backend.GetEndedGame(ctx, gameID)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	p.seq.follow(token, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.snap.EndedErr = err
		if err == nil {
			p.snap.Ended = ended
		}
	})
	return err
}

// FetchEnded looks up the archive of the current game on demand.
func (p *StatePoller) FetchEnded(ctx context.Context) error {
	p.mu.Lock()
	gameName := p.snap.GameName
	gameID := p.endedID(p.snap.GameID)
	p.mu.Unlock()
	if gameID == "" {
		return api.ErrNoGameID
	}
	ended, err := p.backend.GetEndedGame(ctx, gameID)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.snap.GameName == gameName {
		p.snap.Ended = ended
		p.snap.EndedErr = nil
	}
	return nil
}

func (p *StatePoller) Snapshot() StateSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap := p.snap
	if snap.State != nil {
		copied := *snap.State
		copied.Gifs = append([]string(nil), snap.State.Gifs...)
		snap.State = &copied
	}
	if snap.Ended != nil {
		copied := *snap.Ended
		copied.Gifs = append([]string(nil), snap.Ended.Gifs...)
		snap.Ended = &copied
	}
	return snap
}
