package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrongjunior/radiator/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 30*time.Second, cfg.RotationInterval.Std())
	assert.Equal(t, "/event", cfg.WSPath)
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeFile(t, "radiator.yaml", `
base_url: https://radiator.example.com
probe_interval: 5s
metrics_addr: ":9100"
log_level: DEBUG
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://radiator.example.com", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.ProbeInterval.Std())
	assert.Equal(t, ":9100", cfg.MetricsAddr)
	assert.Equal(t, 30*time.Second, cfg.RotationInterval.Std(), "unset values keep defaults")
	assert.Equal(t, ":8080", cfg.ServerAddr)
}

func TestLoadConfigJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"server_addr":":9090","db_path":"x.db","rotation_interval":"1m"}`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddr)
	assert.Equal(t, "x.db", cfg.DBPath)
	assert.Equal(t, time.Minute, cfg.RotationInterval.Std())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "bad.json", `{"probe_interval":30}`))
	assert.Error(t, err)

	_, err = LoadConfig(writeFile(t, "bad.yml", "probe_interval: soon\n"))
	assert.Error(t, err)
}

func TestLoadSeed(t *testing.T) {
	seed, err := Default().LoadSeed()
	require.NoError(t, err)
	require.Len(t, seed.Pages, 1)
	assert.Equal(t, domain.DefaultColumns, seed.Pages[0].ColumnCount())

	cfg := Default()
	cfg.SeedPath = writeFile(t, "seed.yaml", `
name: Team
pages:
  - name: Builds
    columns: 4
    tiles:
      - id: build-main
        row: 1
        column: 1
        width: 2
`)
	seed, err = cfg.LoadSeed()
	require.NoError(t, err)
	assert.Equal(t, "Team", seed.Name)
	require.Len(t, seed.Pages, 1)
	assert.Equal(t, 4, seed.Pages[0].Columns)
	require.Len(t, seed.Pages[0].Tiles, 1)
	tile := seed.Pages[0].Tiles[0].(domain.EventTile)
	assert.Equal(t, "build-main", tile.ID)
	assert.Equal(t, 2, tile.Width)

	cfg.SeedPath = writeFile(t, "seed.json", `{"name":"empty"}`)
	seed, err = cfg.LoadSeed()
	require.NoError(t, err)
	assert.NotNil(t, seed.Pages)
}

func TestNewLogger(t *testing.T) {
	assert.True(t, NewLogger("DEBUG").Handler().Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, NewLogger("bogus").Handler().Enabled(context.Background(), slog.LevelDebug))
}
