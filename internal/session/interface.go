package session

//go:generate mockgen -package=mocks -destination=mocks/mock_backend.go painters-telegraph/internal/session Backend,Identity,Recorder

import (
	"context"

	"painters-telegraph/internal/api"
	"painters-telegraph/internal/db"
)

// Backend is the game server protocol the engine drives. *api.Client
// implements it.
type Backend interface {
	ListOpenGames(ctx context.Context) ([]string, error)
	ListEndedGames(ctx context.Context) ([]string, error)
	GetPlayerMessage(ctx context.Context, player api.Player) (*api.PlayerMessage, error)
	GetGameState(ctx context.Context, gameName string) (*api.GameState, error)
	GetEndedGame(ctx context.Context, gameID string) (*api.EndedGame, error)
	CreateGame(ctx context.Context, input api.CreateGameInput) error
	JoinGame(ctx context.Context, action api.GameAction) error
	StartGame(ctx context.Context, action api.GameAction) error
	EndRound(ctx context.Context, action api.GameAction) error
	EndGame(ctx context.Context, action api.GameAction) error
	SubmitPrompt(ctx context.Context, input api.SubmitPromptInput) error
	UploadDrawing(ctx context.Context, input api.UploadDrawingInput) (string, error)
	SubmitDrawing(ctx context.Context, input api.SubmitDrawingInput) error
}

// Identity resolves the acting player. *identity.Resolver implements it.
type Identity interface {
	Resolve(ctx context.Context) api.Player
	Current() api.Player
	SetDisplayName(name string) bool
}

// Recorder journals the actions the engine performs. *db.Journal implements it.
type Recorder interface {
	Record(ctx context.Context, entry db.Entry) error
}

var _ Backend = (*api.Client)(nil)
