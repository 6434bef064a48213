// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import "time"

// Field limits mirrored from the users table definition.
const (
	MaxUsernameLen = 80

	// MaxPasswordLen is the longest secret bcrypt accepts, in bytes.
	MaxPasswordLen = 72
)

// User represents an account with its credential and theme preference fields.
type User struct {
	ID           int64          `json:"id"`
	Username     string         `json:"username"`
	PasswordHash string         `json:"-"` // Never serialize the hash
	Theme        Theme          `json:"theme"`
	Custom       CustomSettings `json:"custom_settings"`
	CreatedAt    time.Time      `json:"created_at"`
}

// ActiveCustomSettings returns the custom theme fields when they are the
// authoritative rendering parameters, or nil when a named preset is active.
func (u *User) ActiveCustomSettings() *CustomSettings {
	if u.Theme != ThemeCustom {
		return nil
	}
	cs := u.Custom
	return &cs
}
