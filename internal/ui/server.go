// Package ui serves a small local browser front end for one player session.
package ui

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"painters-telegraph/internal/identity"
	"painters-telegraph/internal/session"

	"github.com/gin-gonic/gin"
)

const credentialCookie = "user_id"

type Config struct {
	Engine   *session.Engine
	Store    identity.CredentialStore
	LoginURL string
	// PublicURL is the address encoded into invite QR codes. Empty uses the
	// request host.
	PublicURL string
}

type Server struct {
	engine    *session.Engine
	store     identity.CredentialStore
	loginURL  string
	publicURL string
	hub       *viewHub
}

func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Engine == nil {
		return nil, errors.New("engine cannot be nil")
	}
	if cfg.Store == nil {
		return nil, errors.New("credential store cannot be nil")
	}
	if strings.TrimSpace(cfg.LoginURL) == "" {
		return nil, errors.New("login url is required")
	}
	registerValidators()
	return &Server{
		engine:    cfg.Engine,
		store:     cfg.Store,
		loginURL:  cfg.LoginURL,
		publicURL: strings.TrimSuffix(strings.TrimSpace(cfg.PublicURL), "/"),
		hub:       newViewHub(),
	}, nil
}

func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.captureCredential)

	router.GET("/", s.handleHome)
	router.GET("/ws", s.handleWebsocket)
	router.GET("/login", s.handleLogin)
	router.GET("/logout", s.handleLogout)
	router.GET("/invite.png", s.handleInvite)

	api := router.Group("/api")
	api.POST("/refresh", s.handleRefresh)
	api.POST("/game", s.handleSetGame)
	api.POST("/name", s.handleSetName)
	api.POST("/games/:action", s.handleLifecycle)
	api.POST("/prompt", s.handlePrompt)
	api.POST("/drawing", s.handleDrawing)
	api.POST("/ended-game", s.handleEndedGame)
	return router
}

// Forward pushes the view to connected browsers whenever it changes, until
// ctx is done.
func (s *Server) Forward(ctx context.Context) {
	changes, stop := s.engine.Watch()
	defer stop()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			s.hub.Broadcast(s.engine.View())
		}
	}
}

// captureCredential stores a user_id cookie presented by the browser, which
// is how the auth host hands the credential back after login.
func (s *Server) captureCredential(c *gin.Context) {
	cookie, err := c.Cookie(credentialCookie)
	if err != nil || strings.TrimSpace(cookie) == "" {
		c.Next()
		return
	}
	ctx := c.Request.Context()
	current, err := s.store.Get(ctx)
	if err != nil {
		log.Printf("credential read failed error=%v", err)
		c.Next()
		return
	}
	if current != strings.TrimSpace(cookie) {
		if err := s.store.Set(ctx, cookie); err != nil {
			log.Printf("credential capture failed error=%v", err)
		} else {
			log.Printf("credential captured remote=%s", c.ClientIP())
			s.engine.Refresh()
		}
	}
	c.Next()
}
