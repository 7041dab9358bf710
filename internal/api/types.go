package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AnonymousName is the display name of a player without a resolved credential.
const AnonymousName = "not logged in"

type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// Anonymous returns the unauthenticated player sentinel.
func Anonymous() Player {
	return Player{DisplayName: AnonymousName}
}

func (p Player) Authenticated() bool {
	return p.ID != ""
}

// Count is an integer that the game server sends either as a JSON number or
// as a numeric string.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return err
		}
		raw = strings.TrimSpace(unquoted)
		if raw == "" {
			*c = 0
			return nil
		}
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("count %q is not an integer", raw)
	}
	*c = Count(value)
	return nil
}

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingPrompt
	PhaseAwaitingDrawing
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingPrompt:
		return "awaiting-prompt"
	case PhaseAwaitingDrawing:
		return "awaiting-drawing"
	default:
		return "idle"
	}
}

type Affordance string

const (
	AffordanceSubmitPrompt  Affordance = "submit-prompt"
	AffordanceUploadDrawing Affordance = "upload-drawing"
)

// Affordances lists the actions a player may take in the phase.
func (p Phase) Affordances() []Affordance {
	switch p {
	case PhaseAwaitingPrompt:
		return []Affordance{AffordanceSubmitPrompt}
	case PhaseAwaitingDrawing:
		return []Affordance{AffordanceUploadDrawing}
	default:
		return nil
	}
}

// PlayerMessage is the personalised turn instruction for one player.
type PlayerMessage struct {
	Message     string  `json:"message"`
	Prompt      *string `json:"prompt,omitempty"`
	StartPrompt *bool   `json:"startPrompt,omitempty"`
	Image       *string `json:"image,omitempty" validate:"omitempty,imageref"`
	Phase       Phase   `json:"-"`
}

func (m *PlayerMessage) HasPrompt() bool {
	return m.Prompt != nil
}

func (m *PlayerMessage) HasImage() bool {
	return m.Image != nil
}

func (m *PlayerMessage) WantsStartPrompt() bool {
	return m.StartPrompt != nil && *m.StartPrompt
}

// classify maps field presence to a phase. Combinations that mix the
// start-prompt flag with a prompt or an image are rejected.
func (m *PlayerMessage) classify() (Phase, error) {
	start := m.WantsStartPrompt()
	switch {
	case start && (m.HasPrompt() || m.HasImage()):
		// An image with startPrompt is rejected too, although a caption
		// prompt could be read from it.
		return PhaseIdle, ErrAmbiguousMessage
	case m.HasPrompt():
		return PhaseAwaitingDrawing, nil
	case m.HasImage():
		return PhaseAwaitingPrompt, nil
	case start:
		return PhaseAwaitingPrompt, nil
	default:
		return PhaseIdle, nil
	}
}

// normalize drops empty optional strings so presence checks only see real values.
func (m *PlayerMessage) normalize() {
	if m.Prompt != nil && strings.TrimSpace(*m.Prompt) == "" {
		m.Prompt = nil
	}
	if m.Image != nil && strings.TrimSpace(*m.Image) == "" {
		m.Image = nil
	}
}

// GameState is the shared snapshot returned by getGameState.
type GameState struct {
	GameID       string
	TotalRounds  int
	CurrentRound int
	Started      bool
	Gifs         []string
}

// Ended reports whether the server marked the game complete. The server
// signals completion by zeroing totalRounds, so a zero-round game also
// reads as ended.
func (s *GameState) Ended() bool {
	return s.TotalRounds == 0
}

// RoundLabel renders the 1-indexed round for display, or "" when the game
// has not started or has no rounds.
func (s *GameState) RoundLabel() string {
	if s == nil || !s.Started || s.TotalRounds == 0 {
		return ""
	}
	return "Round " + strconv.Itoa(s.CurrentRound+1) + " / " + strconv.Itoa(s.TotalRounds)
}

// EndedGame is the archived snapshot of a finished game.
type EndedGame struct {
	GameID       string
	GameName     string
	TotalRounds  int
	CurrentRound int
	Started      bool
	Gifs         []string
}

type gameSnapshotWire struct {
	Status       string   `json:"status,omitempty"`
	Message      string   `json:"message,omitempty"`
	Error        string   `json:"error,omitempty"`
	GameID       string   `json:"gameId"`
	GameName     string   `json:"gameName,omitempty"`
	TotalRounds  *Count   `json:"totalRounds" validate:"omitempty,gte=0"`
	CurrentRound *Count   `json:"currentRound" validate:"omitempty,gte=0"`
	GameStarted  bool     `json:"gameStarted"`
	Gifs         []string `json:"gifs,omitempty" validate:"omitempty,dive,imageref"`
}

func (w *gameSnapshotWire) rejected() bool {
	return isErrorStatus(w.Status)
}

func (w *gameSnapshotWire) reason() string {
	if w.Message != "" {
		return w.Message
	}
	return w.Error
}

type gameListWire struct {
	Games []string `json:"games" validate:"dive,required"`
}

type uploadWire struct {
	ImageURL string `json:"imageUrl" validate:"required,imageref"`
}

type ackWire struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func isErrorStatus(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), "ERROR")
}

func derefCount(c *Count) int {
	if c == nil {
		return 0
	}
	return int(*c)
}

func decodeStrict(data []byte, dest any) error {
	if err := json.Unmarshal(data, dest); err != nil {
		return err
	}
	return validate.Struct(dest)
}
