package layout

import (
	"errors"
	"fmt"
	"slices"

	"github.com/wrongjunior/radiator/internal/domain"
)

// ErrPageIndex возвращается для индекса страницы вне диапазона.
var ErrPageIndex = errors.New("page index out of range")

// ErrNoTile возвращается, если операции перемещения не передали плитку.
var ErrNoTile = errors.New("no tile given")

// SetName возвращает копию конфигурации с новым именем доски.
func SetName(cfg domain.Configuration, name string) domain.Configuration {
	cfg = cfg.Clone()
	cfg.Name = name
	return cfg
}

// SetBackground задаёт URL фонового изображения; пустая строка убирает фон.
func SetBackground(cfg domain.Configuration, url string) domain.Configuration {
	cfg = cfg.Clone()
	cfg.Background = url
	return cfg
}

// AddPage добавляет в конец пустую страницу 3x5.
func AddPage(cfg domain.Configuration) domain.Configuration {
	cfg = cfg.Clone()
	cfg.Pages = append(cfg.Pages, domain.NewPage())
	return cfg
}

// RemovePage удаляет последнюю страницу. Требование оставить хотя бы одну
// страницу проверяет интерфейс редактора, а не эта функция.
func RemovePage(cfg domain.Configuration) domain.Configuration {
	cfg = cfg.Clone()
	if len(cfg.Pages) > 0 {
		cfg.Pages = cfg.Pages[:len(cfg.Pages)-1]
	}
	return cfg
}

// ChangePage заменяет страницу index целиком.
func ChangePage(cfg domain.Configuration, index int, page domain.Page) (domain.Configuration, error) {
	if err := checkIndex(cfg, index); err != nil {
		return cfg, err
	}
	cfg = cfg.Clone()
	cfg.Pages[index] = page.Clone()
	return cfg, nil
}

// MoveTile переносит плитку со страницы from на страницу to в клетку (row, column).
// Если на from нет плитки в той же клетке, что и tile, с from ничего не удаляется,
// а на to всё равно добавляется копия tile в новой клетке.
func MoveTile(cfg domain.Configuration, from, to int, tile domain.Tile, row, column int) (domain.Configuration, error) {
	if tile == nil {
		return cfg, ErrNoTile
	}
	if err := checkIndex(cfg, from); err != nil {
		return cfg, err
	}
	if err := checkIndex(cfg, to); err != nil {
		return cfg, err
	}
	cfg = cfg.Clone()

	moved := tile
	src := cfg.Pages[from].Tiles
	if i := Locate(src, tile); i >= 0 {
		moved = src[i]
		cfg.Pages[from].Tiles = slices.Delete(src, i, i+1)
	}
	cfg.Pages[to].Tiles = append(cfg.Pages[to].Tiles, moved.MoveTo(row, column))
	return cfg, nil
}

func checkIndex(cfg domain.Configuration, index int) error {
	if index < 0 || index >= len(cfg.Pages) {
		return fmt.Errorf("page %d of %d: %w", index, len(cfg.Pages), ErrPageIndex)
	}
	return nil
}
