package layout

import (
	"slices"

	"github.com/wrongjunior/radiator/internal/domain"
)

// SetPageName возвращает копию страницы с новым именем.
func SetPageName(page domain.Page, name string) domain.Page {
	page = page.Clone()
	page.Name = name
	return page
}

// AddColumn добавляет столбец справа.
func AddColumn(page domain.Page) domain.Page {
	page = page.Clone()
	page.Columns = page.ColumnCount() + 1
	return page
}

// RemoveColumn уменьшает число столбцов, но не ниже 1.
func RemoveColumn(page domain.Page) domain.Page {
	page = page.Clone()
	page.Columns = max(page.ColumnCount()-1, 1)
	return page
}

// AddRow добавляет строку снизу.
func AddRow(page domain.Page) domain.Page {
	page = page.Clone()
	page.Rows = page.RowCount() + 1
	return page
}

// RemoveRow уменьшает число строк, но не ниже 1.
func RemoveRow(page domain.Page) domain.Page {
	page = page.Clone()
	page.Rows = max(page.RowCount()-1, 1)
	return page
}

// ChangeTileDimensions меняет размеры плитки в той же клетке, что и tile.
// Nil-аргумент оставляет размер без изменений. Без совпадения страница не меняется.
func ChangeTileDimensions(page domain.Page, tile domain.Tile, width, height *int) domain.Page {
	page = page.Clone()
	if i := Locate(page.Tiles, tile); i >= 0 {
		page.Tiles[i] = page.Tiles[i].Resize(width, height)
	}
	return page
}

// AddEventTile добавляет плитку события с размерами по умолчанию.
func AddEventTile(page domain.Page, eventID string, row, column int) domain.Page {
	page = page.Clone()
	page.Tiles = append(page.Tiles, domain.NewEventTile(eventID, row, column))
	return page
}

// DeleteTile удаляет все плитки в той же клетке, что и tile.
func DeleteTile(page domain.Page, tile domain.Tile) domain.Page {
	page = page.Clone()
	for i := Locate(page.Tiles, tile); i >= 0; i = Locate(page.Tiles, tile) {
		page.Tiles = slices.Delete(page.Tiles, i, i+1)
	}
	return page
}
