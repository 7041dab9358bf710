// Package stubserver is an in-memory stand-in for the game server. It speaks
// the same HTTP/JSON protocol with just enough game behaviour to drive the
// client in tests and local development.
package stubserver

import (
	"io"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/julienschmidt/httprouter"
)

const maxUploadBytes = 4 << 20

type Server struct {
	store *Store
	// users maps user_id credentials to display names for /api/user.
	users     map[string]string
	loginUser string

	countsMu sync.Mutex
	counts   map[string]int
}

type Option func(*Server)

// WithUser registers a credential that /api/user/{id} resolves.
func WithUser(id, name string) Option {
	return func(s *Server) {
		s.users[id] = name
	}
}

// WithLoginUser sets the credential handed out by /api/github_login.
func WithLoginUser(id string) Option {
	return func(s *Server) {
		s.loginUser = id
	}
}

func New(opts ...Option) *Server {
	s := &Server{
		store:  NewStore(),
		users:  make(map[string]string),
		counts: make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) Store() *Store {
	return s.store
}

// Requests reports how many requests hit path.
func (s *Server) Requests(path string) int {
	s.countsMu.Lock()
	defer s.countsMu.Unlock()
	return s.counts[path]
}

// TotalRequests reports how many requests the server has seen.
func (s *Server) TotalRequests() int {
	s.countsMu.Lock()
	defer s.countsMu.Unlock()
	total := 0
	for _, count := range s.counts {
		total += count
	}
	return total
}

func (s *Server) Handler() http.Handler {
	mux := httprouter.New()
	mux.POST("/getPlayerMessage", s.handlePlayerMessage)
	mux.POST("/getGameState", s.handleGameState)
	mux.POST("/getEndedGame", s.handleEndedGame)
	mux.GET("/listGames", s.handleListGames)
	mux.GET("/listEndedGames", s.handleListEndedGames)
	mux.POST("/createGame", s.handleCreateGame)
	mux.POST("/joinGame", s.handleJoinGame)
	mux.POST("/startGame", s.handleStartGame)
	mux.POST("/endRound", s.handleEndRound)
	mux.POST("/endGame", s.handleEndGame)
	mux.POST("/submitPrompt", s.handleSubmitPrompt)
	mux.POST("/submitDrawing", s.handleSubmitDrawing)
	mux.POST("/uploadDrawing", s.handleUploadDrawing)
	mux.GET("/drawings/:id", s.handleDrawing)
	mux.GET("/api/user/:id", s.handleUser)
	mux.GET("/api/github_login", s.handleLogin)
	return s.count(mux)
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if strings.HasPrefix(path, "/drawings/") {
			path = "/drawings"
		} else if strings.HasPrefix(path, "/api/user/") {
			path = "/api/user"
		}
		s.countsMu.Lock()
		s.counts[path]++
		s.countsMu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handlePlayerMessage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req playerRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeStatusError(w, "invalid request")
		return
	}
	writeJSON(w, http.StatusOK, s.store.PlayerMessage(req.PlayerSecret))
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req gameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeStatusError(w, "invalid request")
		return
	}
	state, err := s.store.GameState(strings.TrimSpace(req.GameName))
	if err != nil {
		writeStatusError(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleEndedGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req endedGameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeStatusError(w, "invalid request")
		return
	}
	game, err := s.store.EndedGame(req.GameID)
	if err != nil {
		writeStatusError(w, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]any{"games": s.store.ListGames(false)})
}

func (s *Server) handleListEndedGames(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]any{"games": s.store.ListGames(true)})
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createGameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeStatusError(w, "invalid request")
		return
	}
	name := strings.TrimSpace(req.GameName)
	if name == "" {
		writeStatusError(w, "gameName is required")
		return
	}
	game, err := s.store.CreateGame(name, int(req.TotalRounds))
	if err != nil {
		writeStatusError(w, err.Error())
		return
	}
	log.Printf("stub game created game_id=%s name=%s rounds=%d", game.ID, game.Name, game.TotalRounds)
	writeAck(w, "Game created")
}

func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req gameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeStatusError(w, "invalid request")
		return
	}
	if strings.TrimSpace(req.PlayerSecret) == "" {
		writeStatusError(w, "playerSecret is required")
		return
	}
	err := s.store.JoinGame(strings.TrimSpace(req.GameName), stubPlayer{Secret: req.PlayerSecret, Name: req.PlayerName})
	if err != nil {
		writeStatusError(w, err.Error())
		return
	}
	log.Printf("stub player joined game=%s player=%s", req.GameName, req.PlayerName)
	writeAck(w, "Joined game")
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req gameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeStatusError(w, "invalid request")
		return
	}
	if err := s.store.StartGame(strings.TrimSpace(req.GameName)); err != nil {
		writeStatusError(w, err.Error())
		return
	}
	writeAck(w, "Game started")
}

func (s *Server) handleEndRound(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req gameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeStatusError(w, "invalid request")
		return
	}
	ended, err := s.store.EndRound(strings.TrimSpace(req.GameName))
	if err != nil {
		writeStatusError(w, err.Error())
		return
	}
	if ended {
		writeAck(w, "Game ended")
		return
	}
	writeAck(w, "Round ended")
}

func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req gameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeStatusError(w, "invalid request")
		return
	}
	if err := s.store.EndGame(strings.TrimSpace(req.GameName)); err != nil {
		writeStatusError(w, err.Error())
		return
	}
	writeAck(w, "Game ended")
}

func (s *Server) handleSubmitPrompt(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req promptRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeStatusError(w, "invalid request")
		return
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		writeStatusError(w, "prompt is required")
		return
	}
	if err := s.store.SubmitPrompt(strings.TrimSpace(req.GameName), req.PlayerSecret, prompt); err != nil {
		writeStatusError(w, err.Error())
		return
	}
	writeAck(w, "Prompt submitted")
}

func (s *Server) handleSubmitDrawing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req drawingRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeStatusError(w, "invalid request")
		return
	}
	if strings.TrimSpace(req.Drawing) == "" {
		writeStatusError(w, "drawing is required")
		return
	}
	if err := s.store.SubmitDrawing(strings.TrimSpace(req.GameName), req.PlayerSecret, req.Drawing); err != nil {
		writeStatusError(w, err.Error())
		return
	}
	writeAck(w, "Drawing submitted")
}

func (s *Server) handleUploadDrawing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeStatusError(w, "invalid upload")
		return
	}
	if strings.TrimSpace(r.FormValue("playerSecret")) == "" {
		writeStatusError(w, "playerSecret is required")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeStatusError(w, "file is required")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		writeStatusError(w, "file is empty")
		return
	}
	id := s.store.SaveImage(data)
	log.Printf("stub drawing uploaded player=%s bytes=%d", r.FormValue("playerName"), len(data))
	writeJSON(w, http.StatusOK, map[string]string{
		"imageUrl": "http://" + r.Host + "/drawings/" + id,
	})
}

func (s *Server) handleDrawing(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	data, ok := s.store.Image(p.ByName("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(data))
	_, _ = w.Write(data)
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	id := p.ByName("id")
	name, ok := s.users[id]
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, []string{id, name})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if s.loginUser == "" {
		http.Error(w, "login disabled", http.StatusNotFound)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "user_id",
		Value:    s.loginUser,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}
