package configsync

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrongjunior/radiator/internal/domain"
)

type backend struct {
	mu       sync.Mutex
	stored   domain.Configuration
	rejectAt int
	posts    int
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != Path {
		http.NotFound(w, r)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(b.stored)
	case http.MethodPost:
		b.posts++
		if b.posts == b.rejectAt {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		var cfg domain.Configuration
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		b.stored = cfg
		w.WriteHeader(http.StatusNoContent)
	}
}

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", NewHTTPClient(time.Second), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLoadAndSave(t *testing.T) {
	b := &backend{stored: domain.Configuration{Name: "team", Pages: []domain.Page{domain.NewPage()}}}
	c := newTestClient(t, b)

	_, ok := c.Last()
	assert.False(t, ok)

	cfg, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "team", cfg.Name)
	last, ok := c.Last()
	require.True(t, ok)
	assert.Equal(t, cfg, last)

	cfg.Name = "renamed"
	cfg.Pages[0].Tiles = domain.Tiles{domain.NewEventTile("build", 1, 1)}
	require.NoError(t, c.Save(context.Background(), cfg))

	again, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestSaveRejected(t *testing.T) {
	b := &backend{rejectAt: 1}
	c := newTestClient(t, b)

	err := c.Save(context.Background(), domain.Configuration{Name: "x", Pages: []domain.Page{}})
	var saveErr *SaveError
	require.ErrorAs(t, err, &saveErr)
	assert.Equal(t, http.StatusServiceUnavailable, saveErr.StatusCode)
	assert.Equal(t, "storage unavailable", saveErr.Body)
	_, ok := c.Last()
	assert.False(t, ok)

	require.NoError(t, c.Save(context.Background(), domain.Configuration{Name: "x", Pages: []domain.Page{}}))
}

func TestLoadFailures(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	_, err := c.Load(context.Background())
	assert.ErrorContains(t, err, "500")

	c = newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"pages":[{"tiles":[{"tileType":"CLOCK"}]}]}`)
	}))
	_, err = c.Load(context.Background())
	assert.ErrorContains(t, err, "decode configuration")
}
