// Package web renders the service's HTML pages from embedded templates.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sort"
)

//go:embed templates
var templateFS embed.FS

// Page names accepted by Render.
const (
	PageHeaders = "localdev/debug.html"
	PageCurrent = "dashboard/current.html"
)

var pages = []string{PageHeaders, PageCurrent}

// Nav controls the site navigation bar.
type Nav struct {
	Hidden bool
}

// HeaderDump is the data for PageHeaders.
type HeaderDump struct {
	Nav        Nav
	Method     string
	Path       string
	RemoteAddr string
	Headers    []Header
}

// Header is one request header with all of its values.
type Header struct {
	Name   string
	Values []string
}

// CurrentPage is the data for PageCurrent.
type CurrentPage struct {
	Nav         Nav
	HideNav     bool
	IsAnonymous bool
	Responses   int
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded layout and every page.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, p := range pages {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+p)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", p, err)
		}
		r.pages[p] = t
	}
	return r, nil
}

// Render executes page into a buffer first so a template error never
// leaves a half-written 200 response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// SortedHeaders flattens h into a slice ordered by header name.
func SortedHeaders(h http.Header) []Header {
	out := make([]Header, 0, len(h))
	for name, values := range h {
		out = append(out, Header{Name: name, Values: values})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
