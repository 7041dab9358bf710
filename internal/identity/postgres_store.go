package identity

import (
	"context"
	"errors"
	"strings"
	"sync"

	"painters-telegraph/internal/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStore keeps one credential per profile in the sessions table. With
// a nil connection it falls back to process memory.
type PostgresStore struct {
	db      *gorm.DB
	profile string

	mu       sync.Mutex
	fallback map[string]db.Session
}

func NewPostgresStore(conn *gorm.DB, profile string) *PostgresStore {
	if strings.TrimSpace(profile) == "" {
		profile = "default"
	}
	return &PostgresStore{
		db:       conn,
		profile:  profile,
		fallback: make(map[string]db.Session),
	}
}

func (s *PostgresStore) Get(ctx context.Context) (string, error) {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.fallback[s.profile].Credential, nil
	}
	var record db.Session
	err := s.db.WithContext(ctx).Where("profile = ?", s.profile).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return record.Credential, nil
}

func (s *PostgresStore) Set(ctx context.Context, credential string) error {
	record := db.Session{
		Profile:    s.profile,
		Credential: strings.TrimSpace(credential),
	}
	if s.db == nil {
		s.mu.Lock()
		s.fallback[s.profile] = record
		s.mu.Unlock()
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile"}},
		DoUpdates: clause.AssignmentColumns([]string{"credential", "updated_at"}),
	}).Create(&record).Error
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	if s.db == nil {
		s.mu.Lock()
		delete(s.fallback, s.profile)
		s.mu.Unlock()
		return nil
	}
	return s.db.WithContext(ctx).Where("profile = ?", s.profile).Delete(&db.Session{}).Error
}
