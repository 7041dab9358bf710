package db

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"

	// OutcomePartial marks a drawing that uploaded but was not submitted.
	OutcomePartial = "partial"
)

type EventPayload struct {
	GameID      string `json:"game_id,omitempty"`
	TotalRounds int    `json:"total_rounds,omitempty"`
	Prompt      string `json:"prompt,omitempty"`
	DrawingURL  string `json:"drawing_url,omitempty"`
	FileName    string `json:"file_name,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Entry is one action to append to the journal.
type Entry struct {
	RequestID  string
	Type       string
	GameName   string
	PlayerName string
	Outcome    string
	Payload    EventPayload
}

// Journal appends client actions to the events table. A Journal without a
// connection records nothing.
type Journal struct {
	db  *gorm.DB
	now func() time.Time
}

func NewJournal(conn *gorm.DB) *Journal {
	return &Journal{db: conn, now: time.Now}
}

func (j *Journal) Enabled() bool {
	return j != nil && j.db != nil
}

// Record appends entry. Re-recording a request id that is already stored is
// not an error.
func (j *Journal) Record(ctx context.Context, entry Entry) error {
	if !j.Enabled() {
		return nil
	}
	if strings.TrimSpace(entry.Type) == "" {
		return errors.New("event type is required")
	}
	if entry.RequestID == "" {
		entry.RequestID = uuid.New().String()
	}
	if entry.Outcome == "" {
		entry.Outcome = OutcomeOK
	}
	data, err := json.Marshal(entry.Payload)
	if err != nil {
		return err
	}
	event := Event{
		RequestID:  entry.RequestID,
		Type:       entry.Type,
		GameName:   entry.GameName,
		PlayerName: entry.PlayerName,
		Outcome:    entry.Outcome,
		Payload:    datatypes.JSON(data),
		CreatedAt:  j.now().UTC(),
	}
	if err := j.db.WithContext(ctx).Create(&event).Error; err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return err
	}
	return nil
}

// Recent returns the newest events first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Event, error) {
	if !j.Enabled() {
		return nil, nil
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	var events []Event
	err := j.db.WithContext(ctx).
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
