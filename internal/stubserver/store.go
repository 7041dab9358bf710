package stubserver

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	errGameExists     = errors.New("game already exists")
	errGameNotFound   = errors.New("game not found")
	errGameStarted    = errors.New("game already started")
	errGameNotStarted = errors.New("game not started")
	errNotInGame      = errors.New("player not in game")
	errNoPlayers      = errors.New("game has no players")
	errAlreadyPlayed  = errors.New("already submitted this round")
	errWrongTurn      = errors.New("not expected this round")
)

type Store struct {
	mu     sync.Mutex
	games  map[string]*stubGame
	ended  map[string]*stubGame
	images map[string][]byte
}

func NewStore() *Store {
	return &Store{
		games:  make(map[string]*stubGame),
		ended:  make(map[string]*stubGame),
		images: make(map[string][]byte),
	}
}

func (s *Store) CreateGame(name string, totalRounds int) (*stubGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[name]; ok {
		return nil, errGameExists
	}
	if totalRounds <= 0 {
		totalRounds = 1
	}
	game := &stubGame{
		ID:          strings.ReplaceAll(uuid.New().String(), "-", ""),
		Name:        name,
		TotalRounds: totalRounds,
	}
	s.games[name] = game
	return game, nil
}

func (s *Store) JoinGame(name string, player stubPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[name]
	if !ok {
		return errGameNotFound
	}
	if playerIndex(game, player.Secret) >= 0 {
		return nil
	}
	if game.Started {
		return errGameStarted
	}
	game.Players = append(game.Players, player)
	return nil
}

func (s *Store) StartGame(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[name]
	if !ok {
		return errGameNotFound
	}
	if game.Started {
		return errGameStarted
	}
	if len(game.Players) == 0 {
		return errNoPlayers
	}
	game.Started = true
	game.CurrentRound = 0
	game.Rounds = [][]roundEntry{make([]roundEntry, len(game.Players))}
	return nil
}

// EndRound advances the round, ending the game after the last one.
func (s *Store) EndRound(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[name]
	if !ok {
		return false, errGameNotFound
	}
	if !game.Started {
		return false, errGameNotStarted
	}
	if game.CurrentRound+1 >= game.TotalRounds {
		s.endLocked(game)
		return true, nil
	}
	game.CurrentRound++
	game.Rounds = append(game.Rounds, make([]roundEntry, len(game.Players)))
	return false, nil
}

func (s *Store) EndGame(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[name]
	if !ok {
		return errGameNotFound
	}
	s.endLocked(game)
	return nil
}

func (s *Store) endLocked(game *stubGame) {
	game.Ended = true
	gifs := make([]string, 0)
	for _, round := range game.Rounds {
		for _, entry := range round {
			if entry.Drawing != "" {
				gifs = append(gifs, entry.Drawing)
			}
		}
	}
	game.Gifs = gifs
	s.ended[game.ID] = game
}

func (s *Store) SubmitPrompt(name, secret, prompt string) error {
	return s.submit(name, secret, func(round int, entry *roundEntry) error {
		if round%2 == 1 {
			return errWrongTurn
		}
		entry.Prompt = prompt
		return nil
	})
}

func (s *Store) SubmitDrawing(name, secret, drawing string) error {
	return s.submit(name, secret, func(round int, entry *roundEntry) error {
		if round%2 == 0 {
			return errWrongTurn
		}
		entry.Drawing = drawing
		return nil
	})
}

func (s *Store) submit(name, secret string, apply func(round int, entry *roundEntry) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[name]
	if !ok || game.Ended {
		return errGameNotFound
	}
	if !game.Started {
		return errGameNotStarted
	}
	index := playerIndex(game, secret)
	if index < 0 {
		return errNotInGame
	}
	entry := &game.Rounds[game.CurrentRound][index]
	if entry.Prompt != "" || entry.Drawing != "" {
		return errAlreadyPlayed
	}
	return apply(game.CurrentRound, entry)
}

// PlayerMessage builds the turn instruction for the player's most recent game.
// Even rounds ask for text, odd rounds ask for a drawing of the neighbour's
// prompt; text rounds after the first caption the neighbour's drawing.
func (s *Store) PlayerMessage(secret string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	var game *stubGame
	index := -1
	for _, candidate := range s.sortedGamesLocked() {
		if candidate.Ended {
			continue
		}
		if i := playerIndex(candidate, secret); i >= 0 {
			game, index = candidate, i
		}
	}
	if game == nil {
		return map[string]any{"message": "Join a game to start playing"}
	}
	if !game.Started {
		return map[string]any{"message": "Waiting for " + game.Name + " to start"}
	}
	round := game.CurrentRound
	if entry := game.Rounds[round][index]; entry.Prompt != "" || entry.Drawing != "" {
		return map[string]any{"message": "Waiting for the other players"}
	}
	neighbour := (index + len(game.Players) - 1) % len(game.Players)
	if round == 0 {
		return map[string]any{"message": "Write a prompt", "startPrompt": true}
	}
	previous := game.Rounds[round-1][neighbour]
	if round%2 == 1 {
		return map[string]any{"message": "Draw this prompt", "prompt": previous.Prompt}
	}
	return map[string]any{"message": "Describe this drawing", "image": previous.Drawing}
}

func (s *Store) GameState(name string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[name]
	if !ok {
		return nil, errGameNotFound
	}
	if game.Ended {
		return map[string]any{
			"gameId":       game.ID,
			"totalRounds":  "0",
			"currentRound": "0",
			"gameStarted":  true,
		}, nil
	}
	return map[string]any{
		"gameId":       game.ID,
		"totalRounds":  game.TotalRounds,
		"currentRound": game.CurrentRound,
		"gameStarted":  game.Started,
	}, nil
}

func (s *Store) EndedGame(id string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.ended[id]
	if !ok {
		return nil, errGameNotFound
	}
	return map[string]any{
		"gameId":       game.ID,
		"gameName":     game.Name,
		"totalRounds":  game.TotalRounds,
		"currentRound": game.CurrentRound,
		"gameStarted":  game.Started,
		"gifs":         append([]string(nil), game.Gifs...),
	}, nil
}

func (s *Store) ListGames(ended bool) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.games))
	for _, game := range s.sortedGamesLocked() {
		if game.Ended == ended {
			names = append(names, game.Name)
		}
	}
	return names
}

func (s *Store) SaveImage(data []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New().String()
	s.images[id] = data
	return id
}

func (s *Store) Image(id string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.images[id]
	return data, ok
}

func (s *Store) sortedGamesLocked() []*stubGame {
	list := make([]*stubGame, 0, len(s.games))
	for _, game := range s.games {
		list = append(list, game)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

func playerIndex(game *stubGame, secret string) int {
	for i, player := range game.Players {
		if player.Secret == secret {
			return i
		}
	}
	return -1
}
