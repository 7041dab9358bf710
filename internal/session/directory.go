package session

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

type Directory struct {
	OpenGames  []string
	EndedGames []string
	Err        error
}

// DirectoryPoller keeps the latest open and ended game listings. A failed
// listing keeps its previous value.
type DirectoryPoller struct {
	backend Backend
	seq     sequencer

	mu   sync.Mutex
	snap Directory
}

func NewDirectoryPoller(backend Backend) *DirectoryPoller {
	return &DirectoryPoller{backend: backend}
}

func (p *DirectoryPoller) Refresh(ctx context.Context) error {
	fetchCtx, token := p.seq.next(ctx)
	defer p.seq.release(token)

	var (
		open, ended       []string
		openErr, endedErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		open, openErr = p.backend.ListOpenGames(fetchCtx)
		return openErr
	})
	g.Go(func() error {
		ended, endedErr = p.backend.ListEndedGames(fetchCtx)
		return endedErr
	})
	err := g.Wait()
	if fetchCtx.Err() != nil {
		return fetchCtx.Err()
	}

	p.seq.apply(token, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if openErr == nil {
			p.snap.OpenGames = open
		}
		if endedErr == nil {
			p.snap.EndedGames = ended
		}
		p.snap.Err = err
	})
	return err
}

func (p *DirectoryPoller) Snapshot() Directory {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap := p.snap
	snap.OpenGames = append([]string(nil), p.snap.OpenGames...)
	snap.EndedGames = append([]string(nil), p.snap.EndedGames...)
	return snap
}
