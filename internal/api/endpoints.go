package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// GameAction identifies a player acting on a named game.
type GameAction struct {
	GameName string `validate:"trimmed,max=64"`
	Player   Player
}

type CreateGameInput struct {
	GameAction
	TotalRounds int `validate:"gte=1,lte=20"`
}

type SubmitPromptInput struct {
	GameAction
	Prompt string `validate:"trimmed,max=280"`
}

type SubmitDrawingInput struct {
	GameAction
	DrawingURL string `validate:"required,imageref"`
}

type UploadDrawingInput struct {
	Player   Player
	FileName string
	Content  io.Reader
}

type playerRequest struct {
	PlayerName   string `json:"playerName"`
	PlayerSecret string `json:"playerSecret"`
}

type gameStateRequest struct {
	GameName string `json:"gameName"`
}

type endedGameRequest struct {
	GameID string `json:"gameId"`
}

type lifecycleRequest struct {
	GameName     string `json:"gameName"`
	PlayerName   string `json:"playerName"`
	PlayerSecret string `json:"playerSecret"`
}

type createGameRequest struct {
	PlayerName   string `json:"playerName"`
	PlayerSecret string `json:"playerSecret"`
	GameName     string `json:"gameName"`
	TotalRounds  string `json:"totalRounds"`
}

type submitPromptRequest struct {
	GameName     string `json:"gameName"`
	PlayerName   string `json:"playerName"`
	PlayerSecret string `json:"playerSecret"`
	Prompt       string `json:"prompt"`
}

type submitDrawingRequest struct {
	GameName     string `json:"gameName"`
	PlayerName   string `json:"playerName"`
	PlayerSecret string `json:"playerSecret"`
	Drawing      string `json:"drawing"`
}

func newLifecycleRequest(action GameAction) lifecycleRequest {
	return lifecycleRequest{
		GameName:     strings.TrimSpace(action.GameName),
		PlayerName:   action.Player.DisplayName,
		PlayerSecret: action.Player.ID,
	}
}

func (c *Client) ListOpenGames(ctx context.Context) ([]string, error) {
	return c.listGames(ctx, "listGames", "listGames")
}

func (c *Client) ListEndedGames(ctx context.Context) ([]string, error) {
	return c.listGames(ctx, "listEndedGames", "listEndedGames")
}

func (c *Client) listGames(ctx context.Context, op, path string) ([]string, error) {
	data, err := c.get(ctx, op, c.server, path)
	if err != nil {
		return nil, err
	}
	var list gameListWire
	if err := decodeStrict(data, &list); err != nil {
		return nil, &MalformedResponseError{Op: op, Err: err}
	}
	if list.Games == nil {
		return []string{}, nil
	}
	return list.Games, nil
}

// GetPlayerMessage fetches the player's turn instruction and classifies its phase.
func (c *Client) GetPlayerMessage(ctx context.Context, player Player) (*PlayerMessage, error) {
	const op = "getPlayerMessage"
	data, err := c.postJSON(ctx, op, "getPlayerMessage", playerRequest{
		PlayerName:   player.DisplayName,
		PlayerSecret: player.ID,
	})
	if err != nil {
		return nil, err
	}
	var status ackWire
	if err := json.Unmarshal(data, &status); err == nil && isErrorStatus(status.Status) {
		return nil, &RejectedError{Op: op, Message: firstNonEmpty(status.Message, status.Error)}
	}
	var msg PlayerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, &MalformedResponseError{Op: op, Err: err}
	}
	msg.normalize()
	if err := validate.Struct(&msg); err != nil {
		return nil, &MalformedResponseError{Op: op, Err: err}
	}
	phase, err := msg.classify()
	if err != nil {
		return nil, &MalformedResponseError{Op: op, Err: err}
	}
	msg.Phase = phase
	if msg.Image != nil {
		resolved := c.ResolveImage(*msg.Image)
		msg.Image = &resolved
	}
	return &msg, nil
}

// GetGameState fetches the shared snapshot of a game. A status "ERROR"
// payload is returned as a RejectedError.
func (c *Client) GetGameState(ctx context.Context, gameName string) (*GameState, error) {
	const op = "getGameState"
	data, err := c.postJSON(ctx, op, "getGameState", gameStateRequest{GameName: gameName})
	if err != nil {
		return nil, err
	}
	var wire gameSnapshotWire
	if err := decodeStrict(data, &wire); err != nil {
		return nil, &MalformedResponseError{Op: op, Err: err}
	}
	if wire.rejected() {
		return nil, &RejectedError{Op: op, Message: wire.reason()}
	}
	if wire.TotalRounds == nil {
		return nil, &MalformedResponseError{Op: op, Err: errors.New("totalRounds is missing")}
	}
	return &GameState{
		GameID:       wire.GameID,
		TotalRounds:  derefCount(wire.TotalRounds),
		CurrentRound: derefCount(wire.CurrentRound),
		Started:      wire.GameStarted,
		Gifs:         c.resolveImages(wire.Gifs),
	}, nil
}

func (c *Client) GetEndedGame(ctx context.Context, gameID string) (*EndedGame, error) {
	const op = "getEndedGame"
	if strings.TrimSpace(gameID) == "" {
		return nil, ErrNoGameID
	}
	data, err := c.postJSON(ctx, op, "getEndedGame", endedGameRequest{GameID: gameID})
	if err != nil {
		return nil, err
	}
	var wire gameSnapshotWire
	if err := decodeStrict(data, &wire); err != nil {
		return nil, &MalformedResponseError{Op: op, Err: err}
	}
	if wire.rejected() {
		return nil, &RejectedError{Op: op, Message: wire.reason()}
	}
	id := wire.GameID
	if id == "" {
		id = gameID
	}
	return &EndedGame{
		GameID:       id,
		GameName:     wire.GameName,
		TotalRounds:  derefCount(wire.TotalRounds),
		CurrentRound: derefCount(wire.CurrentRound),
		Started:      wire.GameStarted,
		Gifs:         c.resolveImages(wire.Gifs),
	}, nil
}

func (c *Client) CreateGame(ctx context.Context, input CreateGameInput) error {
	const op = "createGame"
	if err := validateInput(input); err != nil {
		return err
	}
	data, err := c.postJSON(ctx, op, "createGame", createGameRequest{
		PlayerName:   input.Player.DisplayName,
		PlayerSecret: input.Player.ID,
		GameName:     strings.TrimSpace(input.GameName),
		TotalRounds:  strconv.Itoa(input.TotalRounds),
	})
	if err != nil {
		return err
	}
	return checkAck(op, data)
}

func (c *Client) JoinGame(ctx context.Context, action GameAction) error {
	return c.lifecycle(ctx, "joinGame", action)
}

func (c *Client) StartGame(ctx context.Context, action GameAction) error {
	return c.lifecycle(ctx, "startGame", action)
}

func (c *Client) EndRound(ctx context.Context, action GameAction) error {
	return c.lifecycle(ctx, "endRound", action)
}

func (c *Client) EndGame(ctx context.Context, action GameAction) error {
	return c.lifecycle(ctx, "endGame", action)
}

func (c *Client) lifecycle(ctx context.Context, op string, action GameAction) error {
	if err := validateInput(action); err != nil {
		return err
	}
	data, err := c.postJSON(ctx, op, op, newLifecycleRequest(action))
	if err != nil {
		return err
	}
	return checkAck(op, data)
}

func (c *Client) SubmitPrompt(ctx context.Context, input SubmitPromptInput) error {
	const op = "submitPrompt"
	if err := validateInput(input); err != nil {
		return err
	}
	req := newLifecycleRequest(input.GameAction)
	data, err := c.postJSON(ctx, op, "submitPrompt", submitPromptRequest{
		GameName:     req.GameName,
		PlayerName:   req.PlayerName,
		PlayerSecret: req.PlayerSecret,
		Prompt:       strings.TrimSpace(input.Prompt),
	})
	if err != nil {
		return err
	}
	return checkAck(op, data)
}

func (c *Client) SubmitDrawing(ctx context.Context, input SubmitDrawingInput) error {
	const op = "submitDrawing"
	if err := validateInput(input); err != nil {
		return err
	}
	req := newLifecycleRequest(input.GameAction)
	data, err := c.postJSON(ctx, op, "submitDrawing", submitDrawingRequest{
		GameName:     req.GameName,
		PlayerName:   req.PlayerName,
		PlayerSecret: req.PlayerSecret,
		Drawing:      input.DrawingURL,
	})
	if err != nil {
		return err
	}
	return checkAck(op, data)
}

// UploadDrawing sends the drawing as multipart form data and returns the
// hosted image URL.
func (c *Client) UploadDrawing(ctx context.Context, input UploadDrawingInput) (string, error) {
	const op = "uploadDrawing"
	if input.Content == nil {
		return "", ErrNoFileSelected
	}
	fileName := strings.TrimSpace(input.FileName)
	if fileName == "" {
		fileName = "drawing.png"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("playerName", input.Player.DisplayName); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := writer.WriteField("playerSecret", input.Player.ID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if _, err := io.Copy(part, input.Content); err != nil {
		return "", fmt.Errorf("%s: read drawing: %w", op, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	data, err := c.send(ctx, op, http.MethodPost, c.endpoint(c.server, "uploadDrawing"), writer.FormDataContentType(), &body)
	if err != nil {
		return "", err
	}
	if err := checkAck(op, data); err != nil {
		return "", err
	}
	var wire uploadWire
	if err := decodeStrict(data, &wire); err != nil {
		return "", &MalformedResponseError{Op: op, Err: err}
	}
	return c.ResolveImage(wire.ImageURL), nil
}

// ResolveUser exchanges a user_id credential for the player's identity. The
// auth host answers with a [userId, displayName] tuple.
func (c *Client) ResolveUser(ctx context.Context, credential string) (Player, error) {
	const op = "resolveUser"
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return Anonymous(), ErrNotLoggedIn
	}
	data, err := c.get(ctx, op, c.auth, "api/user/"+url.PathEscape(credential))
	if err != nil {
		return Anonymous(), err
	}
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return Anonymous(), &MalformedResponseError{Op: op, Err: err}
	}
	if len(tuple) < 2 {
		return Anonymous(), &MalformedResponseError{Op: op, Err: fmt.Errorf("expected [id, name], got %d items", len(tuple))}
	}
	id, err := scalarString(tuple[0])
	if err != nil {
		return Anonymous(), &MalformedResponseError{Op: op, Err: err}
	}
	name, err := scalarString(tuple[1])
	if err != nil {
		return Anonymous(), &MalformedResponseError{Op: op, Err: err}
	}
	if id == "" {
		return Anonymous(), &MalformedResponseError{Op: op, Err: errors.New("empty user id")}
	}
	return Player{ID: id, DisplayName: name}, nil
}

func (c *Client) resolveImages(refs []string) []string {
	if len(refs) == 0 {
		return nil
	}
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, c.ResolveImage(ref))
	}
	return out
}

// scalarString accepts a JSON string or number.
func scalarString(raw json.RawMessage) (string, error) {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text), nil
	}
	var number json.Number
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&number); err != nil {
		return "", fmt.Errorf("expected string or number, got %s", string(raw))
	}
	return number.String(), nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
