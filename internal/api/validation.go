package api

import (
	"errors"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	maxGameNameLength = 64
	maxPromptLength   = 280
	maxTotalRounds    = 20
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("imageref", func(fl validator.FieldLevel) bool {
		return isImageRef(fl.Field().String())
	})
	_ = v.RegisterValidation("trimmed", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// isImageRef accepts absolute http(s) and data URLs and server-relative paths.
func isImageRef(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return true
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch parsed.Scheme {
	case "http", "https":
		return parsed.Host != ""
	case "data":
		return true
	default:
		return false
	}
}

type fieldMessages map[string]map[string]string

var inputMessages = fieldMessages{
	"GameName": {
		"required": "game name is required",
		"trimmed":  "game name is required",
		"max":      "game name is too long",
	},
	"Prompt": {
		"required": "prompt is required",
		"trimmed":  "prompt is required",
		"max":      "prompt is too long",
	},
	"TotalRounds": {
		"gte": "a game needs at least one round",
		"lte": "too many rounds",
	},
	"DrawingURL": {
		"required": "drawing url is required",
		"imageref": "drawing url is invalid",
	},
	"GameID": {
		"required": "game id is required",
	},
}

// validateInput checks caller input and maps failures to a ValidationError.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, verr := range verrs {
			if msgs, ok := inputMessages[verr.Field()]; ok {
				if msg, ok := msgs[verr.Tag()]; ok {
					return &ValidationError{Field: verr.Field(), Message: msg}
				}
			}
			return &ValidationError{Field: verr.Field(), Message: strings.ToLower(verr.Field()) + " is invalid"}
		}
	}
	return &ValidationError{Message: "invalid request"}
}
