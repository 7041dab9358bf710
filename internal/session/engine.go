package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"painters-telegraph/internal/api"
	"painters-telegraph/internal/config"

	"golang.org/x/sync/errgroup"
)

type Config struct {
	Backend  Backend
	Identity Identity
	// Signal defaults to a new signal owned by the engine.
	Signal *Signal
	// Journal may be nil.
	Journal Recorder
	// EndedGameID maps the resolved game id to the archive id; nil uses the
	// resolved id.
	EndedGameID        func(resolved string) string
	DefaultTotalRounds int
	Verbose            bool
}

// Engine owns the pollers of one player session and re-synchronizes them on
// every refresh generation.
type Engine struct {
	backend  Backend
	identity Identity
	signal   *Signal
	journal  Recorder
	rounds   int
	verbose  bool

	directory *DirectoryPoller
	messages  *MessagePoller
	state     *StatePoller
	pipeline  *DrawingPipeline

	changes *Signal

	mu       sync.Mutex
	gameName string
	synced   uint64
}

func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Backend == nil {
		return nil, errors.New("backend cannot be nil")
	}
	if cfg.Identity == nil {
		return nil, errors.New("identity cannot be nil")
	}
	signal := cfg.Signal
	if signal == nil {
		signal = NewSignal()
	}
	rounds := cfg.DefaultTotalRounds
	if rounds <= 0 {
		rounds = config.DefaultTotalRounds
	}
	return &Engine{
		backend:   cfg.Backend,
		identity:  cfg.Identity,
		signal:    signal,
		journal:   cfg.Journal,
		rounds:    rounds,
		verbose:   cfg.Verbose,
		directory: NewDirectoryPoller(cfg.Backend),
		messages:  NewMessagePoller(cfg.Backend),
		state:     NewStatePoller(cfg.Backend, cfg.EndedGameID),
		pipeline:  NewDrawingPipeline(cfg.Backend),
		changes:   NewSignal(),
	}, nil
}

func (e *Engine) logf(format string, args ...any) {
	if e.verbose {
		log.Printf(format, args...)
	}
}

func (e *Engine) Signal() *Signal {
	return e.signal
}

// Run syncs once and then on every published refresh until ctx is done.
// Cycles run one at a time. Refreshes published while a cycle is in flight
// wait in the mailbox, which keeps only the newest, so a burst costs one
// follow-up cycle.
func (e *Engine) Run(ctx context.Context) error {
	updates, unsubscribe := e.signal.Subscribe()
	defer unsubscribe()

	e.runCycle(ctx, Refresh{Generation: e.signal.Generation(), Reason: ReasonStart})
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case refresh, ok := <-updates:
			if !ok {
				return nil
			}
			if refresh.Generation <= e.syncedGeneration() {
				continue
			}
			e.runCycle(ctx, refresh)
		}
	}
}

func (e *Engine) runCycle(ctx context.Context, refresh Refresh) {
	e.logf("refresh generation=%d reason=%s", refresh.Generation, refresh.Reason)
	if err := e.syncGeneration(ctx, refresh.Generation); err != nil && ctx.Err() == nil {
		e.logf("refresh incomplete generation=%d error=%v", refresh.Generation, err)
	}
}

func (e *Engine) syncedGeneration() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.synced
}

// Sync runs one refresh cycle for the current generation and waits for it.
func (e *Engine) Sync(ctx context.Context) error {
	return e.syncGeneration(ctx, e.signal.Generation())
}

// syncGeneration resolves the player first, then runs the directory, message
// and state pollers concurrently. Poller errors are kept in the view; the
// first one is returned.
func (e *Engine) syncGeneration(ctx context.Context, generation uint64) error {
	player := e.identity.Resolve(ctx)
	gameName := e.GameName()

	var g errgroup.Group
	g.Go(func() error {
		return e.directory.Refresh(ctx)
	})
	g.Go(func() error {
		return e.messages.Refresh(ctx, player)
	})
	g.Go(func() error {
		return e.state.Refresh(ctx, gameName)
	})
	err := g.Wait()

	e.mu.Lock()
	if generation > e.synced {
		e.synced = generation
	}
	e.mu.Unlock()
	e.changes.Publish(ReasonViewChanged)
	return err
}

// Refresh asks every poller to re-synchronize.
func (e *Engine) Refresh() uint64 {
	return e.signal.Publish(ReasonManual)
}

func (e *Engine) GameName() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gameName
}

// SetGameName changes the target game and publishes a refresh when it
// differs from the current one.
func (e *Engine) SetGameName(name string) bool {
	if !e.setGameName(name) {
		return false
	}
	e.signal.Publish(ReasonTargetGame)
	return true
}

func (e *Engine) setGameName(name string) bool {
	name = strings.TrimSpace(name)
	e.mu.Lock()
	if name == e.gameName {
		e.mu.Unlock()
		return false
	}
	e.gameName = name
	e.mu.Unlock()
	e.state.Reset(name)
	return true
}

// SetDisplayName changes the local player name and publishes a refresh when
// it differs from the current one.
func (e *Engine) SetDisplayName(name string) bool {
	if !e.identity.SetDisplayName(name) {
		return false
	}
	e.signal.Publish(ReasonDisplayName)
	return true
}

// Watch returns a channel that receives a value every time the view may have
// changed, and a func to stop watching.
func (e *Engine) Watch() (<-chan Refresh, func()) {
	return e.changes.Subscribe()
}

func (e *Engine) View() View {
	e.mu.Lock()
	gameName := e.gameName
	generation := e.synced
	e.mu.Unlock()
	return buildView(
		generation,
		e.identity.Current(),
		gameName,
		e.directory.Snapshot(),
		e.messages.Snapshot(),
		e.state.Snapshot(),
	)
}

// FetchEndedGame looks up the archive of the target game on demand.
func (e *Engine) FetchEndedGame(ctx context.Context) error {
	err := e.state.FetchEnded(ctx)
	if err == nil {
		e.changes.Publish(ReasonViewChanged)
	}
	return err
}

// action builds the request identity for gameName, defaulting to the target
// game.
func (e *Engine) action(gameName string) api.GameAction {
	gameName = strings.TrimSpace(gameName)
	if gameName == "" {
		gameName = e.GameName()
	}
	return api.GameAction{GameName: gameName, Player: e.identity.Current()}
}
