package ui

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type gameRequest struct {
	GameName string `json:"gameName" binding:"omitempty,max=64"`
}

type createRequest struct {
	GameName    string `json:"gameName" binding:"omitempty,max=64"`
	TotalRounds int    `json:"totalRounds" binding:"omitempty,gte=1,lte=20"`
}

type nameRequest struct {
	DisplayName string `json:"displayName" binding:"max=64"`
}

type promptRequest struct {
	Prompt string `json:"prompt" binding:"required,trimmed,max=280"`
}

var gameMessages = bindMessages{
	"GameName": {
		"max": "game name is too long",
	},
	"TotalRounds": {
		"gte": "a game needs at least one round",
		"lte": "too many rounds",
	},
}

var nameMessages = bindMessages{
	"DisplayName": {
		"max": "display name is too long",
	},
}

var promptMessages = bindMessages{
	"Prompt": {
		"required": "prompt is required",
		"trimmed":  "prompt is required",
		"max":      "prompt is too long",
	},
}

var validatorOnce sync.Once

func registerValidators() {
	validatorOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = engine.RegisterValidation("trimmed", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
}

type bindMessages map[string]map[string]string

func bindJSON(c *gin.Context, req any, messages bindMessages, fallback string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": resolveBindError(err, messages, fallback)})
		return false
	}
	return true
}

func resolveBindError(err error, messages bindMessages, fallback string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, verr := range verrs {
			if fieldMsgs, ok := messages[verr.Field()]; ok {
				if msg, ok := fieldMsgs[verr.Tag()]; ok {
					return msg
				}
			}
		}
	}
	if fallback != "" {
		return fallback
	}
	return "invalid request"
}
