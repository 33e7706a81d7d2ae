package controller_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userdesk/internal/client/api"
	"userdesk/internal/client/controller"
	"userdesk/internal/shared/models"
)

type request struct {
	Method string
	Path   string
	Body   map[string]any
}

// usersBackend serves a fixed collection and records every request.
type usersBackend struct {
	mu       sync.Mutex
	users    []models.User
	requests []request
}

func (b *usersBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	req := request{Method: r.Method, Path: r.URL.Path}
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &req.Body)
	}
	b.requests = append(b.requests, req)

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/users":
		_ = json.NewEncoder(w).Encode(b.users)
	case r.Method == http.MethodGet:
		for _, u := range b.users {
			if r.URL.Path == "/api/users/"+jsonID(u.ID) {
				_ = json.NewEncoder(w).Encode(u)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"user not found"}`)
	case r.Method == http.MethodPost:
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{}`)
	default:
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{}`)
	}
}

func (b *usersBackend) recorded() []request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]request(nil), b.requests...)
}

func jsonID(id int64) string {
	raw, _ := json.Marshal(id)
	return string(raw)
}

type renderSpy struct{ last []models.User }

func (r *renderSpy) Render(users []models.User) { r.last = users }

type notifySpy struct{ messages []string }

func (n *notifySpy) Confirm(string) bool { return true }
func (n *notifySpy) Notify(msg string)   { n.messages = append(n.messages, msg) }

func setup(t *testing.T) (*controller.Controller, *usersBackend, *renderSpy, *notifySpy) {
	t.Helper()
	backend := &usersBackend{users: []models.User{{ID: 1, Name: "A", Email: "a@x.com", Age: 30}}}
	ts := httptest.NewServer(backend)
	t.Cleanup(ts.Close)
	view := &renderSpy{}
	prompt := &notifySpy{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := controller.New(api.New(ts.URL+"/api/users", api.WithLogger(logger)), view, prompt, logger)
	return c, backend, view, prompt
}

func TestScenario_CreateIssuesPostThenList(t *testing.T) {
	c, backend, view, _ := setup(t)
	c.SetForm(controller.Form{Name: "B", Email: "b@x.com", Age: "25"})

	require.NoError(t, c.Submit(context.Background()))

	reqs := backend.recorded()
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "/api/users", reqs[0].Path)
	assert.Equal(t, map[string]any{"name": "B", "email": "b@x.com", "age": float64(25)}, reqs[0].Body)
	assert.Equal(t, http.MethodGet, reqs[1].Method)
	assert.Equal(t, "/api/users", reqs[1].Path)
	assert.Equal(t, controller.CaptionCreate, c.Caption())
	assert.Len(t, view.last, 1)
}

func TestScenario_EditIssuesPutToRecord(t *testing.T) {
	c, backend, _, _ := setup(t)

	require.NoError(t, c.BeginEdit(context.Background(), 1))
	assert.Equal(t, controller.CaptionEdit, c.Caption())
	assert.Equal(t, controller.Form{ID: "1", Name: "A", Email: "a@x.com", Age: "30"}, c.Form())

	require.NoError(t, c.Submit(context.Background()))
	reqs := backend.recorded()
	require.Len(t, reqs, 3)
	assert.Equal(t, http.MethodPut, reqs[1].Method)
	assert.Equal(t, "/api/users/1", reqs[1].Path)
	assert.Equal(t, map[string]any{"name": "A", "email": "a@x.com", "age": float64(30)}, reqs[1].Body)
}

func TestScenario_GetMissingNotifiesNotFound(t *testing.T) {
	c, _, _, prompt := setup(t)

	err := c.BeginEdit(context.Background(), 5)
	require.Error(t, err)
	var se *api.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, []string{controller.PhraseNotFound}, prompt.messages)
	_, editing := c.EditingID()
	assert.False(t, editing)
}
