// Package layout реализует чистые операции редактирования раскладки: страницы,
// размеры сетки и плитки. Ни одна функция не изменяет свои аргументы.
package layout

import "github.com/wrongjunior/radiator/internal/domain"

// Locate возвращает индекс первой плитки, совпадающей с target, или -1.
// Плитки сравниваются структурно по (row, column), а не по ID: две
// неразмещённые плитки или две плитки в одной клетке неразличимы.
// Это единственное место, где определяется идентичность плитки.
func Locate(tiles domain.Tiles, target domain.Tile) int {
	if target == nil {
		return -1
	}
	for i, t := range tiles {
		if sameTile(t, target) {
			return i
		}
	}
	return -1
}

func sameTile(a, b domain.Tile) bool {
	return a.Cell().Equal(b.Cell())
}
