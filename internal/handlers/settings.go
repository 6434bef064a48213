// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"ericwriter/internal/models"
	"ericwriter/internal/render"
)

// Settings groups the theme preference handlers.
type Settings struct {
	renderer *render.Renderer
	users    UserStore
}

// NewSettings creates a new Settings handler group.
func NewSettings(renderer *render.Renderer, users UserStore) *Settings {
	return &Settings{renderer: renderer, users: users}
}

// currentThemeResponse is the body of GET /api/current_theme.
type currentThemeResponse struct {
	Theme          models.Theme           `json:"theme"`
	CustomSettings *models.CustomSettings `json:"custom_settings"`
}

// Page renders the settings form with the stored theme and custom values.
func (h *Settings) Page(w http.ResponseWriter, r *http.Request) {
	user, ok := h.loadUser(w, r)
	if !ok {
		return
	}

	h.renderer.Page(w, r, "settings", &render.PageData{
		Title:  "Settings",
		Theme:  user.Theme,
		Custom: user.ActiveCustomSettings(),
		Data: map[string]any{
			"Themes":         models.AvailableThemes,
			"CustomSettings": user.Custom,
		},
	})
}

// Submit stores a preset theme, or a custom bundle which also selects the
// custom theme. A known theme takes precedence; an unknown one falls
// through to the custom bundle when present. Accepts JSON or a form post.
func (h *Settings) Submit(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUserID(w, r)
	if !ok {
		return
	}

	in, err := readSettings(w, r)
	if err != nil {
		writeFailure(w, "Invalid request")
		return
	}

	if in.Theme != nil {
		if theme, err := models.ParseTheme(*in.Theme); err == nil {
			if err := h.users.UpdateTheme(r.Context(), uid, theme); err != nil {
				writeInternal(w, r, "update theme failed", err)
				return
			}
			writeJSON(w, http.StatusOK, successResponse{Success: true})
			return
		}
	}

	if in.CustomSettings != nil {
		cs, err := in.CustomSettings.Resolve()
		if err != nil {
			writeFailure(w, "Invalid custom settings")
			return
		}
		if err := h.users.UpdateCustomTheme(r.Context(), uid, cs); err != nil {
			writeInternal(w, r, "update custom theme failed", err)
			return
		}
		writeJSON(w, http.StatusOK, successResponse{Success: true})
		return
	}

	writeFailure(w, "Invalid request")
}

// customFormFields are the settings form inputs making up a custom bundle.
var customFormFields = []string{"font_size", "bg_primary", "bg_secondary", "text_primary", "text_secondary", "accent_color"}

// readSettings decodes a JSON or form body. The settings form always posts
// the custom inputs, so theme=custom alongside them means the bundle.
func readSettings(w http.ResponseWriter, r *http.Request) (settingsInput, error) {
	var in settingsInput
	if !isFormPost(r) {
		return in, decodeJSON(w, r, &in)
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return in, fmt.Errorf("%w: %v", errBadRequest, err)
	}

	hasCustom := false
	for _, f := range customFormFields {
		if _, ok := r.PostForm[f]; ok {
			hasCustom = true
			break
		}
	}

	if theme := r.PostForm.Get("theme"); theme != "" && (theme != string(models.ThemeCustom) || !hasCustom) {
		in.Theme = &theme
	}
	if !hasCustom {
		return in, nil
	}

	cs := &models.CustomSettingsInput{}
	if v, ok := r.PostForm["font_size"]; ok {
		size, err := strconv.Atoi(v[0])
		if err != nil {
			return in, fmt.Errorf("%w: font_size: %v", errBadRequest, err)
		}
		cs.FontSize = &size
	}
	colors := []struct {
		field string
		dst   **string
	}{
		{"bg_primary", &cs.BgPrimary},
		{"bg_secondary", &cs.BgSecondary},
		{"text_primary", &cs.TextPrimary},
		{"text_secondary", &cs.TextSecondary},
		{"accent_color", &cs.AccentColor},
	}
	for _, c := range colors {
		if v, ok := r.PostForm[c.field]; ok {
			val := v[0]
			*c.dst = &val
		}
	}
	in.CustomSettings = cs
	return in, nil
}

// CurrentTheme returns the active theme; custom_settings is null unless
// the custom theme is selected.
func (h *Settings) CurrentTheme(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUserID(w, r)
	if !ok {
		return
	}

	user, err := h.users.FindByID(r.Context(), uid)
	if err != nil {
		writeInternal(w, r, "load user failed", err)
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, currentThemeResponse{
		Theme:          user.Theme,
		CustomSettings: user.ActiveCustomSettings(),
	})
}

// loadUser fetches the signed-in user for page handlers. A session whose
// account no longer exists is sent back to the login form.
func (h *Settings) loadUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	uid, ok := currentUserID(w, r)
	if !ok {
		return nil, false
	}
	user, err := h.users.FindByID(r.Context(), uid)
	if err != nil {
		writeInternal(w, r, "load user failed", err)
		return nil, false
	}
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return nil, false
	}
	return user, true
}
