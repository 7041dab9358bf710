package session

import (
	"context"
	"errors"
	"log"

	"painters-telegraph/internal/api"
	"painters-telegraph/internal/db"
)

const (
	EventCreateGame    = "create_game"
	EventJoinGame      = "join_game"
	EventStartGame     = "start_game"
	EventEndRound      = "end_round"
	EventEndGame       = "end_game"
	EventSubmitPrompt  = "submit_prompt"
	EventSubmitDrawing = "submit_drawing"
)

// CreateGame creates gameName with rounds rounds (the configured default
// when rounds is not positive) and makes it the target game.
func (e *Engine) CreateGame(ctx context.Context, gameName string, rounds int) error {
	if rounds <= 0 {
		rounds = e.rounds
	}
	action := e.action(gameName)
	err := e.backend.CreateGame(ctx, api.CreateGameInput{GameAction: action, TotalRounds: rounds})
	e.record(ctx, EventCreateGame, action, db.EventPayload{TotalRounds: rounds}, err)
	if err != nil {
		return err
	}
	e.setGameName(action.GameName)
	e.signal.Publish(ReasonLifecycle)
	return nil
}

// JoinGame joins gameName and makes it the target game.
func (e *Engine) JoinGame(ctx context.Context, gameName string) error {
	action := e.action(gameName)
	err := e.backend.JoinGame(ctx, action)
	e.record(ctx, EventJoinGame, action, db.EventPayload{}, err)
	if err != nil {
		return err
	}
	e.setGameName(action.GameName)
	e.signal.Publish(ReasonLifecycle)
	return nil
}

func (e *Engine) StartGame(ctx context.Context, gameName string) error {
	return e.mutate(ctx, EventStartGame, e.action(gameName), e.backend.StartGame)
}

func (e *Engine) EndRound(ctx context.Context, gameName string) error {
	return e.mutate(ctx, EventEndRound, e.action(gameName), e.backend.EndRound)
}

func (e *Engine) EndGame(ctx context.Context, gameName string) error {
	return e.mutate(ctx, EventEndGame, e.action(gameName), e.backend.EndGame)
}

func (e *Engine) mutate(ctx context.Context, eventType string, action api.GameAction, call func(context.Context, api.GameAction) error) error {
	err := call(ctx, action)
	e.record(ctx, eventType, action, db.EventPayload{}, err)
	if err != nil {
		return err
	}
	e.signal.Publish(ReasonLifecycle)
	return nil
}

// SubmitPrompt sends the player's prompt or caption for the target game.
func (e *Engine) SubmitPrompt(ctx context.Context, prompt string) error {
	action := e.action("")
	err := e.backend.SubmitPrompt(ctx, api.SubmitPromptInput{GameAction: action, Prompt: prompt})
	e.record(ctx, EventSubmitPrompt, action, db.EventPayload{Prompt: prompt}, err)
	if err != nil {
		return err
	}
	e.signal.Publish(ReasonLifecycle)
	return nil
}

// SubmitDrawing uploads drawing and submits it for the target game. It
// returns the uploaded URL, also when only the submit step failed.
func (e *Engine) SubmitDrawing(ctx context.Context, drawing *Drawing) (string, error) {
	action := e.action("")
	url, err := e.pipeline.Submit(ctx, action, drawing)
	if errors.Is(err, api.ErrNoFileSelected) {
		return "", err
	}
	payload := db.EventPayload{DrawingURL: url}
	if drawing != nil {
		payload.FileName = drawing.Name
	}
	e.record(ctx, EventSubmitDrawing, action, payload, err)
	if err != nil {
		return url, err
	}
	e.signal.Publish(ReasonDrawing)
	return url, nil
}

func (e *Engine) record(ctx context.Context, eventType string, action api.GameAction, payload db.EventPayload, actionErr error) {
	if e.journal == nil {
		return
	}
	outcome := db.OutcomeOK
	var partial *PartialSubmissionError
	switch {
	case actionErr == nil:
	case errors.As(actionErr, &partial):
		outcome = db.OutcomePartial
	case api.IsRejected(actionErr):
		outcome = db.OutcomeRejected
	default:
		outcome = db.OutcomeFailed
	}
	if actionErr != nil {
		var verr *api.ValidationError
		if errors.As(actionErr, &verr) {
			return
		}
		payload.Error = actionErr.Error()
	}
	if err := e.journal.Record(ctx, db.Entry{
		Type:       eventType,
		GameName:   action.GameName,
		PlayerName: action.Player.DisplayName,
		Outcome:    outcome,
		Payload:    payload,
	}); err != nil {
		log.Printf("journal write failed type=%s error=%v", eventType, err)
	}
}
