// Package web renders the browser widget: the page shell and the message
// list fragment that is re-sent on every history change.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/acadassist/widget/internal/model/chat"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("widget").ParseFS(templateFS, "templates/*.tmpl"))

// Page describes the widget page.
type Page struct {
	Title      string
	Subtitle   string
	SocketPath string
	Turns      []chat.Turn
	Input      string
}

// DefaultPage returns the page for an empty session.
func DefaultPage(socketPath string) Page {
	return Page{
		Title:      "AcadAssist",
		Subtitle:   "Language Agnostic Chatbot",
		SocketPath: socketPath,
	}
}

// RenderPage writes the full widget page.
func RenderPage(w io.Writer, page Page) error {
	return templates.ExecuteTemplate(w, "page.html.tmpl", page)
}

// RenderMessages writes the message list fragment for turns.
func RenderMessages(w io.Writer, turns []chat.Turn) error {
	return templates.ExecuteTemplate(w, "messages.html.tmpl", turns)
}

// MessagesHTML renders the message list fragment to a string.
func MessagesHTML(turns []chat.Turn) (string, error) {
	var buf bytes.Buffer
	if err := RenderMessages(&buf, turns); err != nil {
		return "", err
	}
	return buf.String(), nil
}
