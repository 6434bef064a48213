// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"ericwriter/internal/middleware"
	"ericwriter/internal/render"
)

// Pages serves the HTML shell pages that do not belong to a feature group.
type Pages struct {
	renderer *render.Renderer
	users    UserStore
}

// NewPages creates a new Pages handler group.
func NewPages(renderer *render.Renderer, users UserStore) *Pages {
	return &Pages{renderer: renderer, users: users}
}

// Index renders the editor for signed-in users and a welcome page otherwise.
// A theme lookup failure falls back to the default theme.
func (h *Pages) Index(w http.ResponseWriter, r *http.Request) {
	data := &render.PageData{Title: "Home"}

	if uid, ok := middleware.UserIDFromCtx(r.Context()); ok {
		user, err := h.users.FindByID(r.Context(), uid)
		if err != nil {
			slog.Warn("theme lookup failed", "error", err, "user_id", uid)
		}
		if user != nil {
			data.Theme = user.Theme
			data.Custom = user.ActiveCustomSettings()
		}
	}

	h.renderer.Page(w, r, "index", data)
}
