// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides shared sqlmock helpers for the store tests. Queries
// are matched by regular expression against the SQL the stores issue.
package store

import (
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
)

// fixedTime is a stable timestamp for mocked rows.
var fixedTime = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// newMockDB opens a sqlmock connection and verifies all expectations were
// met when the test finishes.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sqlmock expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

var userRowColumns = []string{
	"id", "username", "password_hash", "theme",
	"custom_font_size", "custom_bg_primary", "custom_bg_secondary",
	"custom_text_primary", "custom_text_secondary", "custom_accent_color",
	"created_at",
}

// userRow returns a single default-valued user row.
func userRow(id int64, username, hash string) *sqlmock.Rows {
	return sqlmock.NewRows(userRowColumns).AddRow(
		id, username, hash, "minimalist",
		16, "#ffffff", "#ffffff", "#000000", "#000000", "#000000",
		fixedTime,
	)
}

var documentRowColumns = []string{"id", "title", "content", "user_id", "created_at", "updated_at"}

// bcryptOf matches a driver argument that is a bcrypt hash of password.
type bcryptOf string

func (b bcryptOf) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok || s == string(b) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(s), []byte(b)) == nil
}
