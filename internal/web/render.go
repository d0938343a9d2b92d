// Package web renders the directory's HTML pages from embedded templates.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"ms-directory/internal/models"
)

//go:embed templates
var templateFS embed.FS

// PageData is what every page template receives.
type PageData struct {
	Title   string
	Flashes []string
	Errors  []string
	// Data holds the page-specific payload.
	Data interface{}
	// Form holds the values to redisplay on form pages.
	Form   interface{}
	Action string
	States []string
	Genres []string
}

// SearchPage is the payload of the search result pages. Base is the listing
// path result links hang off.
type SearchPage struct {
	Term string
	Base string
	*models.SearchResult
}

type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"has": func(list []string, v string) bool {
		for _, item := range list {
			if item == v {
				return true
			}
		}
		return false
	},
	"join": strings.Join,
}

// NewRenderer parses every page together with the shared layout and partials.
func NewRenderer() (*Renderer, error) {
	entries, err := fs.ReadDir(templateFS, "templates/pages")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(entries))}
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/pages/"+e.Name(),
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Has reports whether a page template exists.
func (r *Renderer) Has(page string) bool {
	_, ok := r.pages[page]
	return ok
}

// Render executes the page into a buffer before writing, so a template error
// never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data PageData) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	if data.States == nil {
		data.States = models.States
	}
	if data.Genres == nil {
		data.Genres = models.Genres
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
