// Package identity resolves the current player from a persisted credential.
package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"painters-telegraph/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"gorm.io/gorm"
)

// CredentialStore persists the user_id credential handed out by the auth host.
// Get returns "" when no credential is stored.
type CredentialStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, credential string) error
	Clear(ctx context.Context) error
}

type MemoryStore struct {
	mu         sync.Mutex
	credential string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential, nil
}

func (s *MemoryStore) Set(_ context.Context, credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = strings.TrimSpace(credential)
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = ""
	return nil
}

// Backends carries the connections a store may need. Nil members are only an
// error for the backend that requires them.
type Backends struct {
	FS    afero.Fs
	DB    *gorm.DB
	Redis *redis.Client
}

// NewStore builds the credential store selected by cfg.CredentialStore.
func NewStore(cfg config.Config, backends Backends) (CredentialStore, error) {
	switch cfg.CredentialStore {
	case "", config.CredentialStoreMemory:
		return NewMemoryStore(), nil
	case config.CredentialStoreFile:
		fs := backends.FS
		if fs == nil {
			fs = afero.NewOsFs()
		}
		return NewFileStore(fs, cfg.CredentialFile)
	case config.CredentialStorePostgres:
		if backends.DB == nil {
			return nil, fmt.Errorf("credential store %q needs DATABASE_URL", cfg.CredentialStore)
		}
		return NewPostgresStore(backends.DB, cfg.Profile), nil
	case config.CredentialStoreRedis:
		return NewRedisStore(&RedisConfig{Client: backends.Redis, Profile: cfg.Profile})
	default:
		return nil, fmt.Errorf("unknown credential store %q", cfg.CredentialStore)
	}
}
