package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/geocoder89/monoapp/internal/shared"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageCSP allows the inline stylesheet and the refresh form, nothing else.
const pageCSP = "default-src 'none'; style-src 'unsafe-inline'; form-action 'self'; base-uri 'none'; frame-ancestors 'none'"

var aboutStack = []string{
	"Go + Gin (Frontend)",
	"Go + Gin (Backend)",
	"html/template (Server-side rendering)",
	"Go modules (Monorepo Management)",
}

type pageData struct {
	Title       string
	AutoReload  bool
	State       State
	Unavailable string
	Stack       []string
}

type renderer struct {
	pages map[string]*template.Template
}

func newRenderer(loc *time.Location) (*renderer, error) {
	if loc == nil {
		loc = time.Local
	}

	funcs := template.FuncMap{
		"localTime": func(ts string) string {
			t, err := time.Parse(time.RFC3339, ts)
			if err != nil {
				return ts
			}
			return shared.FormatDateTime(t, loc)
		},
	}

	r := &renderer{pages: make(map[string]*template.Template)}

	for _, name := range []string{"home", "about"} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}

	return r, nil
}

func (r *renderer) render(name string, data pageData) ([]byte, error) {
	t, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
