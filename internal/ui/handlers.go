package ui

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"painters-telegraph/internal/api"
	"painters-telegraph/internal/session"
	"painters-telegraph/internal/web"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/skip2/go-qrcode"
)

const (
	maxDrawingBytes = 4 << 20
	qrSize          = 320
)

func (s *Server) handleHome(c *gin.Context) {
	if game, ok := c.GetQuery("game"); ok {
		s.engine.SetGameName(game)
	}
	page := pageFromView(s.engine.View())
	page.LoginURL = s.loginURL
	page.Flash = strings.TrimSpace(c.Query("notice"))
	templ.Handler(web.Player(page)).ServeHTTP(c.Writer, c.Request)
}

func pageFromView(view session.View) web.PlayerPage {
	page := web.PlayerPage{
		PlayerName: view.PlayerName,
		LoggedIn:   view.LoggedIn,
		GameName:   view.GameName,
		OpenGames:  view.OpenGames,
		EndedGames: view.EndedGames,
		Message:    view.Message,
		Prompt:     view.Prompt,
		Image:      view.Image,
		Phase:      view.Phase,
		CanPrompt:  view.Can(api.AffordanceSubmitPrompt),
		CanDraw:    view.Can(api.AffordanceUploadDrawing),
		Status:     view.Status,
		RoundLabel: view.RoundLabel,
	}
	if page.PlayerName == "" {
		page.PlayerName = api.AnonymousName
	}
	if view.Ended != nil {
		page.Ended = &web.EndedSummary{
			GameID:   view.Ended.GameID,
			GameName: view.Ended.GameName,
			Gifs:     view.Ended.Gifs,
		}
	}
	for _, component := range []string{"directory", "message", "state", "ended"} {
		if msg, ok := view.Errors[component]; ok {
			page.Errors = append(page.Errors, msg)
		}
	}
	return page
}

func (s *Server) handleWebsocket(c *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	s.hub.Add(conn)
	log.Printf("ws connected remote=%s clients=%d", c.Request.RemoteAddr, s.hub.Len())
	s.hub.Send(conn, s.engine.View())
	go s.readWS(conn)
}

func (s *Server) readWS(conn *websocket.Conn) {
	defer s.hub.Remove(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("ws disconnected error=%v", err)
			return
		}
	}
}

func (s *Server) handleLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, s.loginURL)
}

func (s *Server) handleLogout(c *gin.Context) {
	if err := s.store.Clear(c.Request.Context()); err != nil {
		log.Printf("credential clear failed error=%v", err)
		c.Redirect(http.StatusFound, "/?notice="+url.QueryEscape("Logout failed."))
		return
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     credentialCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})
	s.engine.Refresh()
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) handleInvite(c *gin.Context) {
	game := strings.TrimSpace(c.Query("game"))
	if game == "" {
		game = s.engine.GameName()
	}
	if game == "" {
		c.String(http.StatusBadRequest, "missing game name")
		return
	}
	png, err := qrcode.Encode(s.baseURL(c)+"/?game="+url.QueryEscape(game), qrcode.Medium, qrSize)
	if err != nil {
		c.String(http.StatusInternalServerError, "qr generation failed")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (s *Server) baseURL(c *gin.Context) string {
	if s.publicURL != "" {
		return s.publicURL
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host
}

func (s *Server) handleRefresh(c *gin.Context) {
	generation := s.engine.Refresh()
	c.JSON(http.StatusOK, gin.H{"generation": generation})
}

func (s *Server) handleSetGame(c *gin.Context) {
	var req gameRequest
	if !bindJSON(c, &req, gameMessages, "invalid game") {
		return
	}
	changed := s.engine.SetGameName(req.GameName)
	c.JSON(http.StatusOK, gin.H{"gameName": s.engine.GameName(), "changed": changed})
}

func (s *Server) handleSetName(c *gin.Context) {
	var req nameRequest
	if !bindJSON(c, &req, nameMessages, "invalid name") {
		return
	}
	changed := s.engine.SetDisplayName(req.DisplayName)
	c.JSON(http.StatusOK, gin.H{"changed": changed})
}

func (s *Server) handleLifecycle(c *gin.Context) {
	var req createRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req, gameMessages, "invalid game") {
		return
	}
	ctx := c.Request.Context()
	var err error
	switch c.Param("action") {
	case "create":
		err = s.engine.CreateGame(ctx, req.GameName, req.TotalRounds)
	case "join":
		err = s.engine.JoinGame(ctx, req.GameName)
	case "start":
		err = s.engine.StartGame(ctx, req.GameName)
	case "end-round":
		err = s.engine.EndRound(ctx, req.GameName)
	case "end-game":
		err = s.engine.EndGame(ctx, req.GameName)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown action"})
		return
	}
	if err != nil {
		writeActionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "gameName": s.engine.GameName()})
}

func (s *Server) handlePrompt(c *gin.Context) {
	var req promptRequest
	if !bindJSON(c, &req, promptMessages, "invalid prompt") {
		return
	}
	if err := s.engine.SubmitPrompt(c.Request.Context(), req.Prompt); err != nil {
		writeActionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleDrawing(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxDrawingBytes)
	var drawing *session.Drawing
	header, err := c.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid upload"})
		return
	default:
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid upload"})
			return
		}
		defer file.Close()
		drawing = &session.Drawing{Name: header.Filename, Content: io.Reader(file)}
	}
	imageURL, err := s.engine.SubmitDrawing(c.Request.Context(), drawing)
	if err != nil {
		writeActionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "imageUrl": imageURL})
}

func (s *Server) handleEndedGame(c *gin.Context) {
	if err := s.engine.FetchEndedGame(c.Request.Context()); err != nil {
		writeActionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "endedGame": s.engine.View().Ended})
}

// writeActionError maps engine errors to HTTP statuses for the browser.
func writeActionError(c *gin.Context, err error) {
	var (
		verr    *api.ValidationError
		partial *session.PartialSubmissionError
	)
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
	case errors.Is(err, api.ErrNoFileSelected), errors.Is(err, api.ErrNoGameID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &partial):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "imageUrl": partial.URL})
	case api.IsRejected(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case api.IsRetryable(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		log.Printf("ui action failed error=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("request failed: %v", err)})
	}
}
