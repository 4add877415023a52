// Package view renders the site's pages from embedded html/template files.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var files embed.FS

// Page names accepted by Render.
const (
	PageLogin   = "login"
	PageBooking = "booking"
	PageAdmin   = "admin"
	PageConfirm = "confirm"
)

var pages = []string{PageLogin, PageBooking, PageAdmin, PageConfirm}

// Renderer implements echo.Renderer.  Every page is parsed together with the
// shared base.html partials so pages cannot clobber each other's blocks.
type Renderer struct {
	tmpl map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

func New() (*Renderer, error) {
	r := &Renderer{tmpl: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New(name+".html").ParseFS(files, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.tmpl[name] = t
	}
	return r, nil
}

// Render executes the named page into w.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.tmpl[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, name+".html", data)
}
