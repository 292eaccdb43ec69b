// Package templates renders the emails sent by the application.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var templateFS embed.FS

// DigestTemplate is the name of the monthly digest templates.
const DigestTemplate = "monthly_digest"

var funcs = map[string]any{
	"rank": func(i int) int { return i + 1 },
}

// message holds the two bodies of one email.
type message struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// Renderer executes the embedded email templates. Every email has an .html and a .txt body.
type Renderer struct {
	messages map[string]message
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{messages: make(map[string]message)}
	for _, name := range []string{DigestTemplate} {
		html, err := htmltemplate.New(name+".html").Funcs(funcs).ParseFS(templateFS, name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse HTML template %s: %w", name, err)
		}
		text, err := texttemplate.New(name+".txt").Funcs(funcs).ParseFS(templateFS, name+".txt")
		if err != nil {
			return nil, fmt.Errorf("failed to parse text template %s: %w", name, err)
		}
		r.messages[name] = message{html: html, text: text}
	}
	return r, nil
}

// Render executes both bodies of the named email.
func (r *Renderer) Render(name string, data any) (html string, text string, err error) {
	msg, ok := r.messages[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}

	var htmlBuf, textBuf bytes.Buffer
	if err := msg.html.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to render HTML template %s: %w", name, err)
	}
	if err := msg.text.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to render text template %s: %w", name, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// RenderDigest renders the monthly digest.
func (r *Renderer) RenderDigest(data any) (string, string, error) {
	return r.Render(DigestTemplate, data)
}
