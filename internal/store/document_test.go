package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ericwriter/internal/models"
)

const (
	listDocuments  = `(?s)SELECT id, title, content, updated_at\s+FROM documents\s+WHERE user_id = \$1\s+ORDER BY id ASC`
	insertDocument = `(?s)INSERT INTO documents \(title, content, user_id\).+RETURNING`
	selectDocument = `SELECT .+ FROM documents WHERE id = \$1`
	updateDocument = `(?s)UPDATE documents SET.+COALESCE\(\$1, title\).+COALESCE\(\$2, content\).+GREATEST\(NOW\(\), updated_at\).+WHERE id = \$3`
	deleteDocument = `DELETE FROM documents WHERE id = \$1`
)

func strPtr(s string) *string { return &s }

func TestDocumentStoreListByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewDocumentStore(db)

	mock.ExpectQuery(listDocuments).WithArgs(int64(1)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "title", "content", "updated_at"}).
			AddRow(int64(1), "Untitled", "hello", fixedTime).
			AddRow(int64(4), "Notes", "", fixedTime),
	)

	docs, err := s.ListByOwner(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, int64(1), docs[0].ID)
	assert.Equal(t, "hello", docs[0].Content)
	assert.Equal(t, "Notes", docs[1].Title)
}

// TestDocumentStoreListByOwnerEmpty verifies an empty listing encodes as []
// rather than null.
func TestDocumentStoreListByOwnerEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewDocumentStore(db)

	mock.ExpectQuery(listDocuments).WithArgs(int64(2)).WillReturnRows(
		sqlmock.NewRows([]string{"id", "title", "content", "updated_at"}),
	)

	docs, err := s.ListByOwner(context.Background(), 2)
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestDocumentStoreListByOwnerError(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewDocumentStore(db)

	mock.ExpectQuery(listDocuments).WithArgs(int64(1)).WillReturnError(errors.New("boom"))

	_, err := s.ListByOwner(context.Background(), 1)
	assert.Error(t, err)
}

func TestDocumentStoreCreateDefaultTitle(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewDocumentStore(db)

	mock.ExpectQuery(insertDocument).
		WithArgs(models.DefaultDocumentTitle, "Hello", int64(1)).
		WillReturnRows(sqlmock.NewRows(documentRowColumns).
			AddRow(int64(1), models.DefaultDocumentTitle, "Hello", int64(1), fixedTime, fixedTime))

	d, err := s.Create(context.Background(), 1, nil, "Hello")
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.ID)
	assert.Equal(t, "Untitled", d.Title)
	assert.Equal(t, int64(1), d.OwnerID)
}

func TestDocumentStoreCreateWithTitle(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewDocumentStore(db)

	mock.ExpectQuery(insertDocument).
		WithArgs("Plan", "", int64(3)).
		WillReturnRows(sqlmock.NewRows(documentRowColumns).
			AddRow(int64(7), "Plan", "", int64(3), fixedTime, fixedTime))

	d, err := s.Create(context.Background(), 3, strPtr("Plan"), "")
	require.NoError(t, err)
	assert.Equal(t, "Plan", d.Title)
}

func TestDocumentStoreCreateTitleTooLong(t *testing.T) {
	db, _ := newMockDB(t)
	s := NewDocumentStore(db)

	_, err := s.Create(context.Background(), 1, strPtr(strings.Repeat("x", models.MaxTitleLen+1)), "body")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestDocumentStoreFindByID(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewDocumentStore(db)

	mock.ExpectQuery(selectDocument).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(documentRowColumns).
			AddRow(int64(5), "T", "C", int64(2), fixedTime, fixedTime))

	d, err := s.FindByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), d.OwnerID)
	assert.True(t, d.IsOwnedBy(2))
}

func TestDocumentStoreFindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewDocumentStore(db)

	mock.ExpectQuery(selectDocument).WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(documentRowColumns))

	d, err := s.FindByID(context.Background(), 99)
	assert.Nil(t, d)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

// TestDocumentStoreUpdatePartial verifies absent fields are sent as NULL so
// the stored values survive.
func TestDocumentStoreUpdatePartial(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewDocumentStore(db)

	mock.ExpectExec(updateDocument).
		WithArgs(sql.NullString{}, sql.NullString{String: "new body", Valid: true}, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Update(context.Background(), 5, nil, strPtr("new body")))
}

func TestDocumentStoreUpdateBoth(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewDocumentStore(db)

	mock.ExpectExec(updateDocument).
		WithArgs(sql.NullString{String: "T2", Valid: true}, sql.NullString{String: "", Valid: true}, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Update(context.Background(), 5, strPtr("T2"), strPtr("")))
}

func TestDocumentStoreUpdateNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewDocumentStore(db)

	mock.ExpectExec(updateDocument).
		WithArgs(sql.NullString{}, sql.NullString{}, int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Update(context.Background(), 8, nil, nil)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDocumentStoreDelete(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewDocumentStore(db)

	mock.ExpectExec(deleteDocument).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(deleteDocument).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Delete(context.Background(), 5))
	err := s.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
