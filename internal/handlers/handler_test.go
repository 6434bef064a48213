// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests:
// in-memory stores, a miniredis-backed session store, and a cookie-keeping
// client that drives a router wired like production (minus CSRF).
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"ericwriter/internal/middleware"
	"ericwriter/internal/models"
	"ericwriter/internal/render"
	"ericwriter/internal/session"
)

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	mu       sync.Mutex
	users    map[int64]*models.User
	nextID   int64
	failWith error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (s *fakeUserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) Create(_ context.Context, username, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	for _, u := range s.users {
		if u.Username == username {
			return nil, fmt.Errorf("create user %q: %w", username, models.ErrConflict)
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	s.nextID++
	u := &models.User{
		ID:           s.nextID,
		Username:     username,
		PasswordHash: string(hash),
		Theme:        models.DefaultTheme,
		Custom:       models.DefaultCustomSettings(),
		CreatedAt:    time.Now().UTC(),
	}
	s.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) Verify(user *models.User, password string) bool {
	if user == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

func (s *fakeUserStore) UpdateTheme(_ context.Context, userID int64, theme models.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := models.ParseTheme(string(theme)); err != nil {
		return err
	}
	u, ok := s.users[userID]
	if !ok {
		return models.ErrNotFound
	}
	u.Theme = theme
	return nil
}

func (s *fakeUserStore) UpdateCustomTheme(_ context.Context, userID int64, cs models.CustomSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := cs.Validate(); err != nil {
		return err
	}
	u, ok := s.users[userID]
	if !ok {
		return models.ErrNotFound
	}
	u.Theme = models.ThemeCustom
	u.Custom = cs
	return nil
}

// user returns a copy of the stored row for assertions.
func (s *fakeUserStore) user(t *testing.T, username string) models.User {
	t.Helper()
	u, _ := s.FindByUsername(context.Background(), username)
	if u == nil {
		t.Fatalf("user %q not stored", username)
	}
	return *u
}

// fakeDocumentStore is an in-memory DocumentStore with a clock that
// advances one second per write.
type fakeDocumentStore struct {
	mu       sync.Mutex
	docs     map[int64]*models.Document
	nextID   int64
	clock    time.Time
	failWith error
}

func newFakeDocumentStore() *fakeDocumentStore {
	return &fakeDocumentStore{
		docs:  make(map[int64]*models.Document),
		clock: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *fakeDocumentStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *fakeDocumentStore) ListByOwner(_ context.Context, ownerID int64) ([]models.DocumentSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	items := []models.DocumentSummary{}
	for _, d := range s.docs {
		if d.OwnerID == ownerID {
			items = append(items, models.DocumentSummary{ID: d.ID, Title: d.Title, Content: d.Content, UpdatedAt: d.UpdatedAt})
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *fakeDocumentStore) Create(_ context.Context, ownerID int64, title *string, content string) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	t := models.DefaultDocumentTitle
	if title != nil {
		t = *title
	}
	now := s.tick()
	s.nextID++
	d := &models.Document{ID: s.nextID, Title: t, Content: content, OwnerID: ownerID, CreatedAt: now, UpdatedAt: now}
	s.docs[d.ID] = d
	cp := *d
	return &cp, nil
}

func (s *fakeDocumentStore) FindByID(_ context.Context, id int64) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	d, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("document %d: %w", id, models.ErrNotFound)
	}
	cp := *d
	return &cp, nil
}

func (s *fakeDocumentStore) Update(_ context.Context, id int64, title, content *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return models.ErrNotFound
	}
	if title != nil {
		d.Title = *title
	}
	if content != nil {
		d.Content = *content
	}
	d.UpdatedAt = s.tick()
	return nil
}

func (s *fakeDocumentStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

// doc returns a copy of a stored document, or nil.
func (s *fakeDocumentStore) doc(id int64) *models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return nil
	}
	cp := *d
	return &cp
}

// fakeRecorder counts auth events by "event/outcome".
type fakeRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (f *fakeRecorder) RecordAuth(event, outcome string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts == nil {
		f.counts = make(map[string]int)
	}
	f.counts[event+"/"+outcome]++
}

func (f *fakeRecorder) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[key]
}

// testEnv bundles the handler groups with their fake dependencies.
type testEnv struct {
	Users     *fakeUserStore
	Docs      *fakeDocumentStore
	Metrics   *fakeRecorder
	Sessions  *session.Store
	Valkey    *miniredis.Miniredis
	Auth      *Auth
	Documents *Documents
	Settings  *Settings
	Pages     *Pages
	Handler   http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	env := &testEnv{
		Users:    newFakeUserStore(),
		Docs:     newFakeDocumentStore(),
		Metrics:  &fakeRecorder{},
		Sessions: session.NewStore(client, false, time.Hour),
		Valkey:   mr,
	}
	env.Auth = NewAuth(renderer, env.Sessions, env.Users, env.Metrics)
	env.Documents = NewDocuments(env.Docs)
	env.Settings = NewSettings(renderer, env.Users)
	env.Pages = NewPages(renderer, env.Users)

	r := chi.NewRouter()
	r.Use(middleware.LoadSession(env.Sessions))
	r.Get("/", env.Pages.Index)
	r.Get("/login", env.Auth.LoginPage)
	r.Get("/register", env.Auth.RegisterPage)
	r.Post("/login", env.Auth.Login)
	r.Post("/register", env.Auth.Register)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuthPage)
		r.Get("/settings", env.Settings.Page)
	})
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", env.Auth.Logout)
		r.Post("/settings", env.Settings.Submit)
		r.Get("/api/current_theme", env.Settings.CurrentTheme)
		r.Get("/api/documents", env.Documents.List)
		r.Post("/api/documents", env.Documents.Create)
		r.Get("/api/documents/{id}", env.Documents.Get)
		r.Put("/api/documents/{id}", env.Documents.Update)
		r.Delete("/api/documents/{id}", env.Documents.Delete)
	})
	env.Handler = r

	return env
}

// client is a browser stand-in that keeps cookies between requests.
type client struct {
	t       *testing.T
	h       http.Handler
	cookies map[string]*http.Cookie
}

func (env *testEnv) client(t *testing.T) *client {
	return &client{t: t, h: env.Handler, cookies: make(map[string]*http.Cookie)}
}

// do sends a request with body JSON-encoded (raw when it is a string).
func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
		rdr = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, rdr)
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	rr := httptest.NewRecorder()
	c.h.ServeHTTP(rr, req)

	for _, ck := range rr.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
		} else {
			c.cookies[ck.Name] = ck
		}
	}
	return rr
}

// postForm sends an urlencoded form with the client's cookies.
func (c *client) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rr := httptest.NewRecorder()
	c.h.ServeHTTP(rr, req)
	return rr
}

// signIn registers and logs in username, failing the test on any error.
func (c *client) signIn(username, password string) {
	c.t.Helper()
	if res := decodeBody[map[string]any](c.t, c.do(http.MethodPost, "/register", credentialsInput{username, password})); res["success"] != true {
		c.t.Fatalf("register %s: %v", username, res)
	}
	if res := decodeBody[map[string]any](c.t, c.do(http.MethodPost, "/login", credentialsInput{username, password})); res["success"] != true {
		c.t.Fatalf("login %s: %v", username, res)
	}
}

// decodeBody decodes the JSON response body into T.
func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return v
}
