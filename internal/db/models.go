package db

import (
	"time"

	"gorm.io/datatypes"
)

// Session holds the identity credential saved for one client profile.
type Session struct {
	Profile     string    `gorm:"primaryKey;size:64"`
	Credential  string    `gorm:"size:256;not null"`
	DisplayName string    `gorm:"size:64"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// Event is one journal entry for an action the client performed.
type Event struct {
	ID         uint           `gorm:"primaryKey"`
	RequestID  string         `gorm:"size:64;uniqueIndex;not null"`
	Type       string         `gorm:"size:64;not null;index"`
	GameName   string         `gorm:"size:64;index"`
	PlayerName string         `gorm:"size:64"`
	Outcome    string         `gorm:"size:32;not null"`
	Payload    datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time      `gorm:"not null;index"`
}
