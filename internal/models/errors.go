// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "errors"

// Sentinel errors shared by the store and handler layers. Match with errors.Is.
var (
	// ErrValidation marks a missing or malformed field or an unknown enum value.
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks a uniqueness violation such as a taken username.
	ErrConflict = errors.New("already exists")

	// ErrUnauthenticated marks a request without a valid session or bad credentials.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden marks an authenticated request against someone else's resource.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound marks a lookup of a row that does not exist.
	ErrNotFound = errors.New("not found")
)
