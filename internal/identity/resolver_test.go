package identity

import (
	"context"
	"errors"
	"testing"

	"painters-telegraph/internal/api"
)

type fakeLookup struct {
	players map[string]api.Player
	calls   int
}

func (f *fakeLookup) ResolveUser(_ context.Context, credential string) (api.Player, error) {
	f.calls++
	player, ok := f.players[credential]
	if !ok {
		return api.Anonymous(), &api.RejectedError{Op: "resolveUser", StatusCode: 404}
	}
	return player, nil
}

type brokenStore struct{ MemoryStore }

func (*brokenStore) Get(context.Context) (string, error) {
	return "", errors.New("disk on fire")
}

func newTestResolver(t *testing.T, store CredentialStore) (*Resolver, *fakeLookup) {
	t.Helper()
	lookup := &fakeLookup{players: map[string]api.Player{
		"42": {ID: "42", DisplayName: "ada"},
	}}
	resolver, err := NewResolver(&Config{Users: lookup, Store: store})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	return resolver, lookup
}

func TestResolveWithoutCredential(t *testing.T) {
	resolver, lookup := newTestResolver(t, NewMemoryStore())
	player := resolver.Resolve(context.Background())
	if player != api.Anonymous() {
		t.Fatalf("expected anonymous player, got %#v", player)
	}
	if lookup.calls != 0 {
		t.Fatalf("expected no lookup without credential")
	}
}

func TestResolveWithCredential(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Set(context.Background(), "42")
	resolver, _ := newTestResolver(t, store)
	resolver.SetDisplayName("local")

	player := resolver.Resolve(context.Background())
	if player != (api.Player{ID: "42", DisplayName: "ada"}) {
		t.Fatalf("unexpected player %#v", player)
	}
	if resolver.Current() != player {
		t.Fatalf("expected current player to be cached")
	}
}

func TestResolveFailureFallsBack(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Set(context.Background(), "unknown")
	resolver, lookup := newTestResolver(t, store)
	resolver.SetDisplayName("Ada")

	player := resolver.Resolve(context.Background())
	if player.Authenticated() || player.DisplayName != "Ada" {
		t.Fatalf("expected unauthenticated local player, got %#v", player)
	}
	if lookup.calls != 1 {
		t.Fatalf("expected exactly one lookup, got %d", lookup.calls)
	}
	if got, _ := store.Get(context.Background()); got != "unknown" {
		t.Fatalf("resolver must not rewrite the credential, got %q", got)
	}
}

func TestResolveStoreError(t *testing.T) {
	resolver, lookup := newTestResolver(t, &brokenStore{})
	if player := resolver.Resolve(context.Background()); player.Authenticated() {
		t.Fatalf("expected unauthenticated player")
	}
	if lookup.calls != 0 {
		t.Fatalf("expected no lookup after store error")
	}
}

func TestSetDisplayName(t *testing.T) {
	resolver, _ := newTestResolver(t, NewMemoryStore())
	if !resolver.SetDisplayName(" Ada ") {
		t.Fatalf("expected first name change to report true")
	}
	if resolver.SetDisplayName("Ada") {
		t.Fatalf("expected unchanged name to report false")
	}
	if got := resolver.Current().DisplayName; got != "Ada" {
		t.Fatalf("expected current name Ada, got %q", got)
	}
	resolver.SetDisplayName("")
	if got := resolver.Current().DisplayName; got != api.AnonymousName {
		t.Fatalf("expected anonymous name, got %q", got)
	}
}

func TestNewResolverValidatesConfig(t *testing.T) {
	if _, err := NewResolver(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
	if _, err := NewResolver(&Config{Store: NewMemoryStore()}); err == nil {
		t.Fatalf("expected error without lookup")
	}
	if _, err := NewResolver(&Config{Users: &fakeLookup{}}); err == nil {
		t.Fatalf("expected error without store")
	}
}
