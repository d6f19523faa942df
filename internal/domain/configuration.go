package domain

const (
	DefaultRows    = 3
	DefaultColumns = 5
)

// Configuration описывает редактируемую раскладку радиатора.
type Configuration struct {
	Name       string `json:"name"`
	Background string `json:"background,omitempty"`
	Pages      []Page `json:"pages"`
}

// Page описывает именованную сетку фиксированного размера с плитками.
// Плитки могут перекрываться: проверки коллизий нет.
type Page struct {
	Name    string `json:"name"`
	Rows    int    `json:"rows,omitempty"`
	Columns int    `json:"columns,omitempty"`
	Tiles   Tiles  `json:"tiles"`
}

// NewPage создаёт пустую страницу 3x5.
func NewPage() Page {
	return Page{Rows: DefaultRows, Columns: DefaultColumns, Tiles: Tiles{}}
}

// RowCount возвращает число строк; отсутствующее значение заменяется значением по умолчанию.
func (p Page) RowCount() int {
	if p.Rows < 1 {
		return DefaultRows
	}
	return p.Rows
}

// ColumnCount возвращает число столбцов; отсутствующее значение заменяется значением по умолчанию.
func (p Page) ColumnCount() int {
	if p.Columns < 1 {
		return DefaultColumns
	}
	return p.Columns
}

// Clone копирует страницу вместе со срезом плиток.
func (p Page) Clone() Page {
	p.Tiles = append(Tiles{}, p.Tiles...)
	return p
}

// Clone копирует конфигурацию так, что изменение копии не затрагивает оригинал.
func (c Configuration) Clone() Configuration {
	pages := make([]Page, len(c.Pages))
	for i, p := range c.Pages {
		pages[i] = p.Clone()
	}
	c.Pages = pages
	return c
}

// EventIDs возвращает множество идентификаторов событий, размещённых на любой странице.
func (c Configuration) EventIDs() map[string]struct{} {
	ids := make(map[string]struct{})
	for _, p := range c.Pages {
		for _, t := range p.Tiles {
			if et, ok := t.(EventTile); ok {
				ids[et.ID] = struct{}{}
			}
		}
	}
	return ids
}
