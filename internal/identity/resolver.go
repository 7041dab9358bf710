package identity

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"painters-telegraph/internal/api"
)

// UserLookup exchanges a credential for the player it belongs to.
type UserLookup interface {
	ResolveUser(ctx context.Context, credential string) (api.Player, error)
}

type Config struct {
	Users UserLookup
	Store CredentialStore
}

// Resolver produces the current player on every refresh cycle. It only reads
// the credential; capturing and clearing it is the store owner's job.
type Resolver struct {
	users UserLookup
	store CredentialStore

	mu          sync.Mutex
	displayName string
	current     api.Player
}

func NewResolver(cfg *Config) (*Resolver, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Users == nil {
		return nil, errors.New("user lookup cannot be nil")
	}
	if cfg.Store == nil {
		return nil, errors.New("credential store cannot be nil")
	}
	return &Resolver{
		users:   cfg.Users,
		store:   cfg.Store,
		current: api.Anonymous(),
	}, nil
}

// Resolve reads the credential and exchanges it for a player. Any failure
// leaves the player unauthenticated; there is no retry.
func (r *Resolver) Resolve(ctx context.Context) api.Player {
	player := r.resolve(ctx)
	r.mu.Lock()
	r.current = player
	r.mu.Unlock()
	return player
}

func (r *Resolver) resolve(ctx context.Context) api.Player {
	credential, err := r.store.Get(ctx)
	if err != nil {
		log.Printf("credential read failed error=%v", err)
		return r.unauthenticated()
	}
	if strings.TrimSpace(credential) == "" {
		return r.unauthenticated()
	}
	player, err := r.users.ResolveUser(ctx, credential)
	if err != nil {
		log.Printf("identity resolve failed error=%v", err)
		return r.unauthenticated()
	}
	if player.DisplayName == "" {
		player.DisplayName = r.localName()
	}
	return player
}

func (r *Resolver) unauthenticated() api.Player {
	player := api.Anonymous()
	if name := r.localName(); name != "" {
		player.DisplayName = name
	}
	return player
}

func (r *Resolver) localName() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.displayName
}

// SetDisplayName sets the name used while no credential resolves. It reports
// whether the name changed.
func (r *Resolver) SetDisplayName(name string) bool {
	name = strings.TrimSpace(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if name == r.displayName {
		return false
	}
	r.displayName = name
	if !r.current.Authenticated() {
		r.current.DisplayName = name
		if name == "" {
			r.current.DisplayName = api.AnonymousName
		}
	}
	return true
}

// Current returns the player from the last Resolve.
func (r *Resolver) Current() api.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
