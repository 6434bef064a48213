// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"ericwriter/internal/middleware"
	"ericwriter/internal/models"
	"ericwriter/internal/render"
	"ericwriter/internal/session"
)

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	renderer *render.Renderer
	sessions *session.Store
	users    UserStore
	metrics  AuthRecorder
}

// NewAuth creates a new Auth handler group. metrics may be nil.
func NewAuth(renderer *render.Renderer, sessions *session.Store, users UserStore, metrics AuthRecorder) *Auth {
	if metrics == nil {
		metrics = noopRecorder{}
	}
	return &Auth{
		renderer: renderer,
		sessions: sessions,
		users:    users,
		metrics:  metrics,
	}
}

type noopRecorder struct{}

func (noopRecorder) RecordAuth(string, string) {}

// LoginPage renders the login form, or sends signed-in users home.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	a.renderer.Page(w, r, "login", &render.PageData{Title: "Log in"})
}

// RegisterPage renders the registration form.
func (a *Auth) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	a.renderer.Page(w, r, "register", &render.PageData{Title: "Register"})
}

// Register creates an account. Every expected failure, including a taken
// username, is a 200 response with success=false.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	in, ok := a.readCredentials(w, r)
	if !ok {
		return
	}

	if msg := validateRegistration(in); msg != "" {
		a.metrics.RecordAuth("register", "invalid")
		writeFailure(w, msg)
		return
	}

	user, err := a.users.Create(r.Context(), in.Username, in.Password)
	if errors.Is(err, models.ErrConflict) {
		a.metrics.RecordAuth("register", "conflict")
		writeFailure(w, "Username already exists")
		return
	}
	if err != nil {
		writeInternal(w, r, "register failed", err)
		return
	}

	slog.Info("account registered", "user_id", user.ID, "username", user.Username)
	a.metrics.RecordAuth("register", "success")
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// Login verifies credentials and starts a fresh session. An unknown user
// and a wrong password produce the same response.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	in, ok := a.readCredentials(w, r)
	if !ok {
		return
	}

	var user *models.User
	if in.Username != "" {
		var err error
		user, err = a.users.FindByUsername(r.Context(), in.Username)
		if err != nil {
			writeInternal(w, r, "login lookup failed", err)
			return
		}
	}

	if !a.users.Verify(user, in.Password) {
		a.metrics.RecordAuth("login", "failure")
		writeFailure(w, "Invalid credentials")
		return
	}

	// Rotate: never reuse a session ID or CSRF token issued before
	// authentication.
	if err := middleware.RotateCSRFToken(w, r); err != nil {
		writeInternal(w, r, "csrf rotate failed", err)
		return
	}
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Warn("destroy previous session failed", "error", err)
	}

	_, err := a.sessions.Create(r.Context(), w, &session.Data{
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		writeInternal(w, r, "session create failed", err)
		return
	}

	a.metrics.RecordAuth("login", "success")
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// Logout destroys the session and clears the cookie.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
	}
	a.metrics.RecordAuth("logout", "success")
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// readCredentials decodes a JSON or form body. A body that cannot be read
// is reported as a structured failure, like any other account error.
func (a *Auth) readCredentials(w http.ResponseWriter, r *http.Request) (credentialsInput, bool) {
	var in credentialsInput
	if isFormPost(r) {
		in.Username = r.PostFormValue("username")
		in.Password = r.PostFormValue("password")
	} else if err := decodeJSON(w, r, &in); err != nil {
		writeFailure(w, "Invalid request")
		return in, false
	}
	in.normalize()
	return in, true
}
