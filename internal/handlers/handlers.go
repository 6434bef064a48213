// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP handlers for accounts, documents and
// theme settings. Handlers own authorization; the stores beneath them only
// guard data integrity.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"ericwriter/internal/middleware"
	"ericwriter/internal/models"
)

// maxBodyBytes caps request bodies; documents are the largest payload.
const maxBodyBytes = 5 << 20

// UserStore is the account persistence used by the handlers.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, username, password string) (*models.User, error)
	Verify(user *models.User, password string) bool
	UpdateTheme(ctx context.Context, userID int64, theme models.Theme) error
	UpdateCustomTheme(ctx context.Context, userID int64, cs models.CustomSettings) error
}

// DocumentStore is the document persistence used by the handlers.
type DocumentStore interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]models.DocumentSummary, error)
	Create(ctx context.Context, ownerID int64, title *string, content string) (*models.Document, error)
	FindByID(ctx context.Context, id int64) (*models.Document, error)
	Update(ctx context.Context, id int64, title, content *string) error
	Delete(ctx context.Context, id int64) error
}

// AuthRecorder counts account events. *middleware.Metrics satisfies it.
type AuthRecorder interface {
	RecordAuth(event, outcome string)
}

// errBadRequest marks bodies that could not be decoded.
var errBadRequest = errors.New("malformed request body")

// successResponse is the success marker returned by mutating endpoints.
type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	ID      int64  `json:"id,omitempty"`
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// writeError writes {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeFailure writes a structured failure with HTTP 200, the convention
// for account and settings outcomes.
func writeFailure(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, successResponse{Success: false, Message: msg})
}

// writeInternal logs err with the request ID and answers 500.
func writeInternal(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.Error(msg, "error", err, "request_id", middleware.RequestIDFromCtx(r.Context()))
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}

// decodeJSON reads a bounded JSON body into dst. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data", errBadRequest)
	}
	return nil
}

// isFormPost reports whether the body is an HTML form submission.
func isFormPost(r *http.Request) bool {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return ct == "application/x-www-form-urlencoded" || ct == "multipart/form-data"
}

// currentUserID returns the authenticated user's ID. Routes using it sit
// behind RequireAuth, so a missing identity is answered with 401.
func currentUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	}
	return id, ok
}
