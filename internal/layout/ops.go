package layout

import "github.com/wrongjunior/radiator/internal/domain"

// Op описывает операцию редактирования конфигурации. Apply не изменяет cfg и при
// ошибке возвращает его без изменений.
type Op interface {
	Apply(cfg domain.Configuration) (domain.Configuration, error)
}

// SetNameOp переименовывает доску.
type SetNameOp struct{ Name string }

// Apply реализует Op.
func (o SetNameOp) Apply(cfg domain.Configuration) (domain.Configuration, error) {
	return SetName(cfg, o.Name), nil
}

// SetBackgroundOp меняет фон доски.
type SetBackgroundOp struct{ URL string }

// Apply реализует Op.
func (o SetBackgroundOp) Apply(cfg domain.Configuration) (domain.Configuration, error) {
	return SetBackground(cfg, o.URL), nil
}

// AddPageOp добавляет пустую страницу в конец.
type AddPageOp struct{}

// Apply реализует Op.
func (AddPageOp) Apply(cfg domain.Configuration) (domain.Configuration, error) {
	return AddPage(cfg), nil
}

// RemovePageOp удаляет последнюю страницу.
type RemovePageOp struct{}

// Apply реализует Op.
func (RemovePageOp) Apply(cfg domain.Configuration) (domain.Configuration, error) {
	return RemovePage(cfg), nil
}

// ChangePageOp заменяет страницу Index на Page.
type ChangePageOp struct {
	Index int
	Page  domain.Page
}

// Apply реализует Op; неверный Index даёт ErrPageIndex.
func (o ChangePageOp) Apply(cfg domain.Configuration) (domain.Configuration, error) {
	return ChangePage(cfg, o.Index, o.Page)
}

// MoveTileOp переносит Tile со страницы From на страницу To в клетку (Row, Column).
type MoveTileOp struct {
	From, To    int
	Tile        domain.Tile
	Row, Column int
}

// Apply реализует Op.
func (o MoveTileOp) Apply(cfg domain.Configuration) (domain.Configuration, error) {
	return MoveTile(cfg, o.From, o.To, o.Tile, o.Row, o.Column)
}

// PageEdit изменяет одну страницу.
type PageEdit func(domain.Page) domain.Page

// PageOp применяет Edit к странице Index и сохраняет результат через ChangePage.
type PageOp struct {
	Index int
	Edit  PageEdit
}

// Apply реализует Op; неверный Index даёт ErrPageIndex.
func (o PageOp) Apply(cfg domain.Configuration) (domain.Configuration, error) {
	if err := checkIndex(cfg, o.Index); err != nil {
		return cfg, err
	}
	return ChangePage(cfg, o.Index, o.Edit(cfg.Pages[o.Index]))
}

// RenamePage задаёт имя страницы.
func RenamePage(name string) PageEdit {
	return func(p domain.Page) domain.Page { return SetPageName(p, name) }
}

// ResizeTile меняет размеры плитки, найденной по клетке tile.
func ResizeTile(tile domain.Tile, width, height *int) PageEdit {
	return func(p domain.Page) domain.Page { return ChangeTileDimensions(p, tile, width, height) }
}

// PlaceEvent размещает плитку события в клетке (row, column).
func PlaceEvent(eventID string, row, column int) PageEdit {
	return func(p domain.Page) domain.Page { return AddEventTile(p, eventID, row, column) }
}

// RemoveTile удаляет плитку, найденную по клетке tile.
func RemoveTile(tile domain.Tile) PageEdit {
	return func(p domain.Page) domain.Page { return DeleteTile(p, tile) }
}
