// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"

	"ericwriter/internal/models"
)

// credentialsInput is the body of POST /register and POST /login.
type credentialsInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// normalize trims surrounding whitespace from the username only; passwords
// are taken verbatim.
func (in *credentialsInput) normalize() {
	in.Username = strings.TrimSpace(in.Username)
}

// validateRegistration checks a new account's credentials and returns the
// first problem found, or "".
func validateRegistration(in credentialsInput) string {
	if in.Username == "" || in.Password == "" {
		return "Username and password are required"
	}
	if utf8.RuneCountInString(in.Username) > models.MaxUsernameLen {
		return "Username is too long (max 80 characters)"
	}
	if len(in.Password) > models.MaxPasswordLen {
		return "Password is too long (max 72 bytes)"
	}
	return ""
}

// documentCreateInput is the body of POST /api/documents. Any owner field a
// client sends is ignored; the owner is always the caller.
type documentCreateInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// documentUpdateInput is the body of PUT /api/documents/{id}. Absent
// fields are left unchanged.
type documentUpdateInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// validateTitle returns a message when title is present but too long.
func validateTitle(title *string) string {
	if title != nil && utf8.RuneCountInString(*title) > models.MaxTitleLen {
		return "Title is too long (max 200 characters)"
	}
	return ""
}

// settingsInput is the body of POST /settings: either a preset theme or a
// custom settings bundle.
type settingsInput struct {
	Theme          *string                     `json:"theme"`
	CustomSettings *models.CustomSettingsInput `json:"custom_settings"`
}
