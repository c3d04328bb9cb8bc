// Package contract renders lease contract documents.
package contract

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"rental-service/internal/model"
)

//go:embed templates/*.html
var templates embed.FS

// Document is everything a contract shows
type Document struct {
	Lease model.Lease
	Today time.Time
}

// Renderer turns a Document into bytes of ContentType
type Renderer interface {
	Render(doc Document) ([]byte, error)
	ContentType() string
}

type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the embedded lease contract template
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("lease_contract.html").
		Funcs(template.FuncMap{
			"date":     func(t time.Time) string { return t.Format("2006-01-02") },
			"money":    func(v float64) string { return fmt.Sprintf("%.2f", v) },
			"fullName": fullName,
		}).
		ParseFS(templates, "templates/lease_contract.html")
	if err != nil {
		return nil, fmt.Errorf("parse contract template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

func (r *HTMLRenderer) Render(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("render contract: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *HTMLRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func fullName(u *model.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
