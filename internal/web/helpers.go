package web

import (
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
)

// writer collects the first write error so components can stream HTML
// without checking every call.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

func gameLink(name string) string {
	return "/?game=" + url.QueryEscape(name)
}

func inviteLink(name string) string {
	return "/invite.png?game=" + url.QueryEscape(name)
}

// safeImage only lets http(s) and data URLs into src attributes.
func safeImage(ref string) string {
	lower := strings.ToLower(strings.TrimSpace(ref))
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "data:image/") {
		return ref
	}
	return ""
}
