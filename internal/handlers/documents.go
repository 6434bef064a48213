// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ericwriter/internal/models"
)

// Documents groups the document API handlers. Every single-document
// operation checks ownership on its own before reading or mutating.
type Documents struct {
	docs DocumentStore
}

// NewDocuments creates a new Documents handler group.
func NewDocuments(docs DocumentStore) *Documents {
	return &Documents{docs: docs}
}

// documentResponse is the body of GET /api/documents/{id}.
type documentResponse struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// List returns the caller's documents.
func (h *Documents) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUserID(w, r)
	if !ok {
		return
	}

	docs, err := h.docs.ListByOwner(r.Context(), uid)
	if err != nil {
		writeInternal(w, r, "list documents failed", err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// Create stores a new document owned by the caller.
func (h *Documents) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var in documentCreateInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Content == nil {
		writeError(w, http.StatusBadRequest, "Content is required")
		return
	}
	if msg := validateTitle(in.Title); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	doc, err := h.docs.Create(r.Context(), uid, in.Title, *in.Content)
	if err != nil {
		writeInternal(w, r, "create document failed", err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, ID: doc.ID})
}

// Get returns one of the caller's documents.
func (h *Documents) Get(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, documentResponse{ID: doc.ID, Title: doc.Title, Content: doc.Content})
}

// Update applies a partial update to one of the caller's documents.
func (h *Documents) Update(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	var in documentUpdateInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateTitle(in.Title); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	err := h.docs.Update(r.Context(), doc.ID, in.Title, in.Content)
	if errors.Is(err, models.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	if err != nil {
		writeInternal(w, r, "update document failed", err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// Delete permanently removes one of the caller's documents.
func (h *Documents) Delete(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.loadOwned(w, r)
	if !ok {
		return
	}

	err := h.docs.Delete(r.Context(), doc.ID)
	if errors.Is(err, models.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	if err != nil {
		writeInternal(w, r, "delete document failed", err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// loadOwned resolves {id} and enforces ownership. It writes 404 for a
// missing or malformed id and 403 when the caller is not the owner.
func (h *Documents) loadOwned(w http.ResponseWriter, r *http.Request) (*models.Document, bool) {
	uid, ok := currentUserID(w, r)
	if !ok {
		return nil, false
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, "Not Found")
		return nil, false
	}

	doc, err := h.docs.FindByID(r.Context(), id)
	if errors.Is(err, models.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Not Found")
		return nil, false
	}
	if err != nil {
		writeInternal(w, r, "load document failed", err)
		return nil, false
	}

	if !doc.IsOwnedBy(uid) {
		writeError(w, http.StatusForbidden, "Unauthorized")
		return nil, false
	}
	return doc, true
}
