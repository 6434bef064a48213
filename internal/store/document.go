// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"unicode/utf8"

	"ericwriter/internal/models"
)

// DocumentStore handles all document-related database operations.
type DocumentStore struct {
	db *sql.DB
}

// NewDocumentStore creates a new DocumentStore with the given database connection.
func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// documentColumns lists the columns selected in document queries.
const documentColumns = `id, title, content, user_id, created_at, updated_at`

// scanDocument scans a document row from the result set.
func scanDocument(scanner interface{ Scan(...any) error }) (*models.Document, error) {
	var d models.Document
	err := scanner.Scan(&d.ID, &d.Title, &d.Content, &d.OwnerID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByOwner returns summaries of every document owned by the user in
// insertion order. The result is never nil.
func (s *DocumentStore) ListByOwner(ctx context.Context, ownerID int64) ([]models.DocumentSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content, updated_at
		FROM documents
		WHERE user_id = $1
		ORDER BY id ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	items := []models.DocumentSummary{}
	for rows.Next() {
		var d models.DocumentSummary
		if err := rows.Scan(&d.ID, &d.Title, &d.Content, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// Create inserts a new document owned by ownerID. A nil title becomes
// models.DefaultDocumentTitle.
func (s *DocumentStore) Create(ctx context.Context, ownerID int64, title *string, content string) (*models.Document, error) {
	t := models.DefaultDocumentTitle
	if title != nil {
		t = *title
	}
	if err := validateTitle(t); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO documents (title, content, user_id)
		VALUES ($1, $2, $3)
		RETURNING `+documentColumns,
		t, content, ownerID,
	)
	d, err := scanDocument(row)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return d, nil
}

// FindByID retrieves a document by ID. Returns models.ErrNotFound if absent.
func (s *DocumentStore) FindByID(ctx context.Context, id int64) (*models.Document, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
	d, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find document by id: %w", err)
	}
	return d, nil
}

// Update changes the fields that are non-nil and refreshes updated_at.
// Concurrent updates are last-write-wins; updated_at never moves backwards.
func (s *DocumentStore) Update(ctx context.Context, id int64, title, content *string) error {
	if title != nil {
		if err := validateTitle(*title); err != nil {
			return fmt.Errorf("update document: %w", err)
		}
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE documents SET
			title = COALESCE($1, title),
			content = COALESCE($2, content),
			updated_at = GREATEST(NOW(), updated_at)
		WHERE id = $3
	`, nullString(title), nullString(content), id)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return requireRow(result, "update document")
}

// Delete permanently removes a document. Returns models.ErrNotFound if it
// was already gone.
func (s *DocumentStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return requireRow(result, "delete document")
}

func validateTitle(title string) error {
	if utf8.RuneCountInString(title) > models.MaxTitleLen {
		return fmt.Errorf("title longer than %d characters: %w", models.MaxTitleLen, models.ErrValidation)
	}
	return nil
}

// nullString maps a nil pointer to SQL NULL so COALESCE keeps the old value.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
