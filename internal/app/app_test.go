package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrongjunior/radiator/internal/configsync"
	"github.com/wrongjunior/radiator/internal/domain"
	"github.com/wrongjunior/radiator/internal/layout"
	"github.com/wrongjunior/radiator/internal/schedule/scheduletest"
	"github.com/wrongjunior/radiator/internal/transport/client"
)

// fakeBackend отдаёт конфигурацию, отвечает на проверку доступности и на
// каждое подключение к каналу отправляет одно событие и закрывает соединение.
type fakeBackend struct {
	mu     sync.Mutex
	config domain.Configuration
	dials  atomic.Int32
}

func (b *fakeBackend) handler() http.Handler {
	upgrader := websocket.Upgrader{}
	mux := http.NewServeMux()
	mux.HandleFunc(configsync.Path, func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if r.Method == http.MethodPost {
			var cfg domain.Configuration
			if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			b.config = cfg
			return
		}
		json.NewEncoder(w).Encode(b.config)
	})
	mux.HandleFunc(client.HealthPath, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"UP"}`)
	})
	mux.HandleFunc(client.EventPath, func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		b.dials.Add(1)
		conn.WriteMessage(websocket.TextMessage, []byte(`{"id":"build","eventType":"JOB","level":"ERROR","status":"FAILURE"}`))
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "restart"))
	})
	return mux
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startBackend(t *testing.T) (*fakeBackend, Options) {
	t.Helper()
	b := &fakeBackend{config: domain.Configuration{Name: "wall", Pages: []domain.Page{domain.NewPage(), domain.NewPage()}}}
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)
	eventURL, err := client.EventURL(srv.URL, false, "")
	require.NoError(t, err)
	return b, Options{
		BaseURL:        srv.URL,
		EventURL:       eventURL,
		RequestTimeout: time.Second,
		Scheduler:      &scheduletest.Manual{},
	}
}

func TestSessionReloadsAfterRecovery(t *testing.T) {
	_, opts := startBackend(t)
	sched := opts.Scheduler.(*scheduletest.Manual)

	s := NewSession(opts, discard())
	result := make(chan error, 1)
	go func() { result <- s.Run(context.Background()) }()

	require.Eventually(t, func() bool { return s.Dashboard.State().IsDisconnected }, 2*time.Second, time.Millisecond)
	state := s.Dashboard.State()
	assert.Equal(t, "wall", state.Configuration.Name)
	ev, ok := state.Events.Get("build")
	require.True(t, ok)
	assert.Equal(t, domain.LevelError, ev.Level)

	sched.Tick()
	select {
	case err := <-result:
		assert.ErrorIs(t, err, client.ErrReload)
	case <-time.After(2 * time.Second):
		t.Fatal("session did not end after the backend recovered")
	}
	assert.Zero(t, sched.Active(), "rotation and probing stopped with the session")
	assert.NotEmpty(t, s.ID)
}

func TestRunRebuildsSessions(t *testing.T) {
	b, opts := startBackend(t)
	sched := opts.Scheduler.(*scheduletest.Manual)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	result := make(chan error, 1)
	go func() { result <- Run(ctx, opts, discard()) }()

	require.Eventually(t, func() bool { return sched.Active() == 2 }, 2*time.Second, time.Millisecond)
	sched.Tick()
	require.Eventually(t, func() bool { return b.dials.Load() == 2 }, 2*time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-result:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run ignored cancellation")
	}
}

func TestEdit(t *testing.T) {
	b, opts := startBackend(t)

	err := Edit(context.Background(), opts, []layout.Op{
		layout.SetNameOp{Name: "ops"},
		layout.PageOp{Index: 1, Edit: layout.PlaceEvent("deploy", 2, 3)},
	}, discard())
	require.NoError(t, err)

	b.mu.Lock()
	defer b.mu.Unlock()
	assert.Equal(t, "ops", b.config.Name)
	require.Len(t, b.config.Pages[1].Tiles, 1)
	assert.Equal(t, "deploy", b.config.Pages[1].Tiles[0].(domain.EventTile).ID)
}

func TestEditRejectsBadOp(t *testing.T) {
	b, opts := startBackend(t)

	err := Edit(context.Background(), opts, []layout.Op{layout.PageOp{Index: 5, Edit: layout.AddRow}}, discard())
	assert.ErrorIs(t, err, layout.ErrPageIndex)

	b.mu.Lock()
	defer b.mu.Unlock()
	assert.Equal(t, "wall", b.config.Name)
}

func TestReport(t *testing.T) {
	_, opts := startBackend(t)
	opts.ReportInterval = time.Minute
	s := NewSession(opts, discard())
	s.Dashboard.UpdateEvent(domain.Event{ID: "a", Name: "alarm", Level: domain.LevelWarn})
	assert.NotPanics(t, s.Report)
	_, err := uuid.Parse(s.ID)
	assert.NoError(t, err)
}
