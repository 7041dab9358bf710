package main

import (
	"context"
	"log"

	"painters-telegraph/internal/api"
	"painters-telegraph/internal/config"
	"painters-telegraph/internal/db"
	"painters-telegraph/internal/identity"
	"painters-telegraph/internal/session"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"gorm.io/gorm"
)

// app holds one wired player session.
type app struct {
	cfg      config.Config
	conn     *gorm.DB
	redis    *redis.Client
	journal  *db.Journal
	store    identity.CredentialStore
	client   *api.Client
	resolver *identity.Resolver
	engine   *session.Engine
}

func newApp(cfg config.Config) (*app, error) {
	a := &app{cfg: cfg}

	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(conn); err != nil {
			return nil, err
		}
		a.conn = conn
		a.journal = db.NewJournal(conn)
	}
	if cfg.CredentialStore == config.CredentialStoreRedis {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}

	store, err := identity.NewStore(cfg, identity.Backends{
		FS:    afero.NewOsFs(),
		DB:    a.conn,
		Redis: a.redis,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.store = store

	client, err := api.New(&api.Config{
		ServerURL: cfg.ServerURL,
		AuthURL:   cfg.AuthURL,
		Timeout:   cfg.RequestTimeout,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.client = client

	resolver, err := identity.NewResolver(&identity.Config{Users: client, Store: store})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.resolver = resolver

	engineCfg := &session.Config{
		Backend:            client,
		Identity:           resolver,
		EndedGameID:        cfg.EndedGameID,
		DefaultTotalRounds: cfg.DefaultTotalRounds,
		Verbose:            cfg.Verbose,
	}
	if a.journal.Enabled() {
		engineCfg.Journal = a.journal
	}
	engine, err := session.New(engineCfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.engine = engine
	if cfg.Verbose {
		log.Printf("telegraph session server=%s store=%s journal=%t", cfg.ServerURL, cfg.CredentialStore, a.journal.Enabled())
	}
	return a, nil
}

// sync runs one refresh cycle for gameName. Poller failures stay in the view
// and are not returned.
func (a *app) sync(ctx context.Context, gameName string) session.View {
	if gameName != "" {
		a.engine.SetGameName(gameName)
	}
	if err := a.engine.Sync(ctx); err != nil && a.cfg.Verbose {
		log.Printf("sync incomplete error=%v", err)
	}
	return a.engine.View()
}

func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.conn != nil {
		if sqlDB, err := a.conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
