// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

const (
	// DefaultDocumentTitle is used when a document is created without a title.
	DefaultDocumentTitle = "Untitled"

	MaxTitleLen = 200
)

// Document is a piece of text owned by exactly one user. OwnerID is set at
// creation and never changes.
type Document struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	OwnerID   int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsOwnedBy reports whether userID owns the document.
func (d *Document) IsOwnedBy(userID int64) bool {
	return d.OwnerID == userID
}

// DocumentSummary is the reduced form returned by document listings.
type DocumentSummary struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}
