package repository

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrongjunior/radiator/internal/domain"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "radiator.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEventRepository(t *testing.T) {
	repo := NewSQLiteRepository(openDB(t))
	require.NoError(t, repo.Init())
	require.NoError(t, repo.Init(), "Init is repeatable")

	when := domain.At(time.Date(2024, 2, 2, 8, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(domain.Event{ID: "b", Type: domain.TypeJob, Level: domain.LevelError, Time: when, Payload: domain.JobPayload{Status: domain.JobFailure}}))
	require.NoError(t, repo.Save(domain.Event{ID: "a", Type: domain.TypeHealth, Level: domain.LevelOK, Payload: domain.HealthPayload{Status: "UP"}}))
	require.NoError(t, repo.Save(domain.Event{ID: "b", Type: domain.TypeJob, Level: domain.LevelOK, Time: when, Payload: domain.JobPayload{Status: domain.JobSuccess}}))

	got, ok, err := repo.Get("b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.LevelOK, got.Level)
	assert.Equal(t, domain.JobPayload{Status: domain.JobSuccess}, got.Payload)
	assert.True(t, when.Equal(got.Time.Time))

	_, ok, err = repo.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := repo.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
}

func TestConfigurationStore(t *testing.T) {
	store := NewConfigurationStore(openDB(t))
	require.NoError(t, store.Init())

	_, ok, err := store.Get()
	require.NoError(t, err)
	assert.False(t, ok)

	seed := domain.Configuration{Name: "seed", Pages: []domain.Page{domain.NewPage()}}
	seeded, err := SeedIfMissing(store, seed)
	require.NoError(t, err)
	assert.True(t, seeded)

	cfg := domain.Configuration{Name: "team", Background: "http://bg", Pages: []domain.Page{domain.NewPage()}}
	cfg.Pages[0].Tiles = domain.Tiles{domain.NewEventTile("build", 1, 2)}
	require.NoError(t, store.Set(cfg))

	seeded, err = SeedIfMissing(store, seed)
	require.NoError(t, err)
	assert.False(t, seeded, "stored configuration is never overwritten by the seed")

	got, ok, err := store.Get()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, cfg, got)
}
