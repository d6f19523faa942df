package domain

import (
	"encoding/json"
	"fmt"
)

// TileType различает виды плиток (поле tileType).
type TileType string

// TileTypeEvent обозначает плитку события.
const TileTypeEvent TileType = "EVENT"

// Cell задаёт позицию левого верхнего угла плитки. Nil-координаты означают
// «не размещена»: такая плитка идёт в естественном потоке.
type Cell struct {
	Row    *int
	Column *int
}

// CellAt возвращает размещённую позицию.
func CellAt(row, column int) Cell {
	return Cell{Row: &row, Column: &column}
}

// Equal сравнивает позиции структурно.
func (c Cell) Equal(o Cell) bool {
	return sameCoord(c.Row, o.Row) && sameCoord(c.Column, o.Column)
}

func (c Cell) String() string {
	if c.Row == nil || c.Column == nil {
		return "unplaced"
	}
	return fmt.Sprintf("(%d,%d)", *c.Row, *c.Column)
}

func sameCoord(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Tile объединяет все виды плиток. Все операции возвращают новое значение.
type Tile interface {
	TileType() TileType
	Cell() Cell
	// MoveTo возвращает копию плитки в позиции (row, column).
	MoveTo(row, column int) Tile
	// Resize перезаписывает только переданные размеры; nil и значения меньше 1 игнорируются.
	Resize(width, height *int) Tile
}

// EventTile показывает одно событие по его ID.
type EventTile struct {
	ID     string `json:"id"`
	Row    *int   `json:"row,omitempty"`
	Column *int   `json:"column,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Fill   bool   `json:"fill,omitempty"`
}

// NewEventTile создаёт плитку события с размерами по умолчанию.
func NewEventTile(eventID string, row, column int) EventTile {
	return EventTile{ID: eventID, Row: &row, Column: &column}
}

func (t EventTile) TileType() TileType { return TileTypeEvent }

func (t EventTile) Cell() Cell { return Cell{Row: t.Row, Column: t.Column} }

// MoveTo возвращает копию плитки в клетке (row, column).
func (t EventTile) MoveTo(row, column int) Tile {
	t.Row, t.Column = &row, &column
	return t
}

// Resize возвращает копию с новыми размерами. Nil или значение меньше 1
// оставляет размер прежним.
func (t EventTile) Resize(width, height *int) Tile {
	if width != nil && *width >= 1 {
		t.Width = *width
	}
	if height != nil && *height >= 1 {
		t.Height = *height
	}
	return t
}

// Size возвращает фактические размеры, подставляя 1 для отсутствующих.
func (t EventTile) Size() (width, height int) {
	width, height = t.Width, t.Height
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

func (t EventTile) MarshalJSON() ([]byte, error) {
	type plain EventTile
	return json.Marshal(struct {
		TileType TileType `json:"tileType"`
		plain
	}{TileTypeEvent, plain(t)})
}

// Tiles хранит список плиток с полиморфным JSON по tileType. Отсутствующий
// tileType читается как EVENT, неизвестный считается ошибкой.
type Tiles []Tile

func (ts *Tiles) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(Tiles, 0, len(raws))
	for _, raw := range raws {
		var head struct {
			TileType TileType `json:"tileType"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return err
		}
		switch head.TileType {
		case "", TileTypeEvent:
			var t EventTile
			if err := json.Unmarshal(raw, &t); err != nil {
				return err
			}
			out = append(out, t)
		default:
			return fmt.Errorf("unknown tile type %q", head.TileType)
		}
	}
	*ts = out
	return nil
}

func (ts Tiles) MarshalJSON() ([]byte, error) {
	if ts == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Tile(ts))
}
