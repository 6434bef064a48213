// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the editor pages.
// Each page is parsed together with the shared base layout and receives the
// current user's theme so the layout can style itself.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"ericwriter/internal/middleware"
	"ericwriter/internal/models"
	"ericwriter/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData holds all data passed to page templates.
type PageData struct {
	Title     string                 // Page title for <title> tag
	Session   *session.Data          // Current user session (nil if anonymous)
	CSRFToken string                 // CSRF token for forms and fetch headers
	Theme     models.Theme           // Active theme; DefaultTheme when anonymous
	Custom    *models.CustomSettings // Set only when Theme is custom
	Data      map[string]any         // Page-specific data
}

// Renderer handles template parsing and execution for pages.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses every page template from the embedded filesystem, each paired
// with base.html.
func New() (*Renderer, error) {
	funcMap := template.FuncMap{
		// themeLabel turns "beach_vacation" into "Beach Vacation".
		"themeLabel": func(t models.Theme) string {
			words := strings.Split(string(t), "_")
			for i, w := range words {
				if w != "" {
					words[i] = strings.ToUpper(w[:1]) + w[1:]
				}
			}
			return strings.Join(words, " ")
		},
		"customStyle": customStyle,
	}

	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	r := &Renderer{templates: make(map[string]*template.Template)}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" || !strings.HasSuffix(name, ".html") {
			continue
		}

		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(
			templateFS, "templates/base.html", "templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[strings.TrimSuffix(name, ".html")] = tmpl
	}

	return r, nil
}

// Page renders the named page inside the base layout. The CSRF token and
// session are taken from the request context when not already set.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		slog.Error("template not found", "template", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}
	if data.Theme == "" {
		data.Theme = models.DefaultTheme
	}

	// Render into a buffer so a template failure never leaves a half page.
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		slog.Error("template execution failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// customStyle builds the CSS custom properties for a custom theme. Values
// are validated #rrggbb colours and a bounded integer, so the result is
// safe to mark as CSS.
func customStyle(cs *models.CustomSettings) template.CSS {
	if cs == nil || cs.Validate() != nil {
		return ""
	}
	return template.CSS(fmt.Sprintf(
		"--font-size:%dpx;--bg-primary:%s;--bg-secondary:%s;--text-primary:%s;--text-secondary:%s;--accent:%s",
		cs.FontSize, cs.BgPrimary, cs.BgSecondary, cs.TextPrimary, cs.TextSecondary, cs.AccentColor,
	))
}
