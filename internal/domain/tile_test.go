package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestCellEqual(t *testing.T) {
	assert.True(t, CellAt(1, 2).Equal(CellAt(1, 2)))
	assert.False(t, CellAt(1, 2).Equal(CellAt(2, 1)))
	assert.True(t, Cell{}.Equal(Cell{}), "two unplaced cells match")
	assert.False(t, Cell{Row: intPtr(1)}.Equal(CellAt(1, 1)))
}

func TestEventTileMoveAndResize(t *testing.T) {
	tile := NewEventTile("build", 1, 1)

	moved := tile.MoveTo(2, 3).(EventTile)
	assert.Equal(t, "build", moved.ID)
	assert.True(t, moved.Cell().Equal(CellAt(2, 3)))
	assert.True(t, tile.Cell().Equal(CellAt(1, 1)), "original untouched")

	resized := tile.Resize(intPtr(3), nil).(EventTile)
	w, h := resized.Size()
	assert.Equal(t, 3, w)
	assert.Equal(t, 1, h)

	ignored := resized.Resize(intPtr(0), intPtr(-2)).(EventTile)
	assert.Equal(t, resized, ignored)
}

func TestTilesJSON(t *testing.T) {
	var tiles Tiles
	raw := `[{"id":"a","row":1,"column":2},{"tileType":"EVENT","id":"b","row":2,"column":1,"width":2,"fill":true}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &tiles))
	require.Len(t, tiles, 2)

	b := tiles[1].(EventTile)
	assert.Equal(t, 2, b.Width)
	assert.True(t, b.Fill)
	assert.Equal(t, TileTypeEvent, tiles[0].TileType())

	out, err := json.Marshal(tiles)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"tileType":"EVENT","id":"a","row":1,"column":2},{"tileType":"EVENT","id":"b","row":2,"column":1,"width":2,"fill":true}]`, string(out))
}

func TestTilesJSONUnknownType(t *testing.T) {
	var tiles Tiles
	err := json.Unmarshal([]byte(`[{"tileType":"CLOCK"}]`), &tiles)
	assert.ErrorContains(t, err, "CLOCK")
}

func TestConfigurationJSON(t *testing.T) {
	raw := `{"name":"Team","pages":[{"name":"Main","tiles":[{"id":"a","row":1,"column":1}]}]}`
	var cfg Configuration
	require.NoError(t, json.Unmarshal([]byte(raw), &cfg))

	page := cfg.Pages[0]
	assert.Equal(t, DefaultRows, page.RowCount())
	assert.Equal(t, DefaultColumns, page.ColumnCount())
	assert.Equal(t, map[string]struct{}{"a": {}}, cfg.EventIDs())

	out, err := json.Marshal(Configuration{Name: "empty", Pages: []Page{{Name: "p"}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"empty","pages":[{"name":"p","tiles":[]}]}`, string(out))
}

func TestConfigurationClone(t *testing.T) {
	cfg := Configuration{Name: "c", Pages: []Page{NewPage()}}
	cfg.Pages[0].Tiles = Tiles{NewEventTile("a", 1, 1)}

	clone := cfg.Clone()
	clone.Pages[0].Tiles[0] = NewEventTile("b", 2, 2)
	clone.Pages[0].Name = "changed"

	assert.Equal(t, "a", cfg.Pages[0].Tiles[0].(EventTile).ID)
	assert.Empty(t, cfg.Pages[0].Name)
}
