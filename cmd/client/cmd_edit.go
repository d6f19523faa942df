package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wrongjunior/radiator/internal/app"
	"github.com/wrongjunior/radiator/internal/config"
	"github.com/wrongjunior/radiator/internal/domain"
	"github.com/wrongjunior/radiator/internal/layout"
)

// editFlags хранит правки, заданные флагами команды edit. Порядок применения
// фиксирован: конфигурация, страницы, сетка выбранной страницы, плитки.
type editFlags struct {
	name        string
	background  string
	addPages    int
	removePages int
	page        int
	pageName    string
	addColumns  int
	removeCols  int
	addRows     int
	removeRows  int
	place       []string
	remove      []string
	resize      []string
	move        []string
	setName     bool
	setBgr      bool
	setPageName bool
}

func newEditCmd(configPath *string) *cobra.Command {
	var f editFlags
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the radiator configuration stored on the backend",
		Long: "Loads the configuration, applies the requested edits in order and saves it.\n" +
			"Cells are written as ROW,COLUMN; tiles are matched by cell.",
		Example: "  radiator edit --add-pages 1 --page 1 --page-name Builds --place build-main@1,1\n" +
			"  radiator edit --page 0 --resize 1,1=3x2 --move 0:1,1=1:2,2",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.setName = cmd.Flags().Changed("name")
			f.setBgr = cmd.Flags().Changed("background")
			f.setPageName = cmd.Flags().Changed("page-name")
			ops, err := f.ops()
			if err != nil {
				return err
			}
			if len(ops) == 0 {
				return fmt.Errorf("edit: nothing to change")
			}
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return app.Edit(ctx, sessionOptions(cfg), ops, config.NewLogger(cfg.LogLevel))
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "", "Rename the radiator")
	fl.StringVar(&f.background, "background", "", "Background image URL")
	fl.IntVar(&f.addPages, "add-pages", 0, "Append empty pages")
	fl.IntVar(&f.removePages, "remove-pages", 0, "Remove pages from the end")
	fl.IntVar(&f.page, "page", 0, "Page index for page and tile edits")
	fl.StringVar(&f.pageName, "page-name", "", "Rename the selected page")
	fl.IntVar(&f.addColumns, "add-columns", 0, "Add grid columns to the selected page")
	fl.IntVar(&f.removeCols, "remove-columns", 0, "Remove grid columns from the selected page")
	fl.IntVar(&f.addRows, "add-rows", 0, "Add grid rows to the selected page")
	fl.IntVar(&f.removeRows, "remove-rows", 0, "Remove grid rows from the selected page")
	fl.StringArrayVar(&f.place, "place", nil, "Place an event tile: ID@ROW,COLUMN")
	fl.StringArrayVar(&f.remove, "remove-tile", nil, "Remove tiles at ROW,COLUMN")
	fl.StringArrayVar(&f.resize, "resize", nil, "Resize the tile at ROW,COLUMN: ROW,COLUMN=WIDTHxHEIGHT")
	fl.StringArrayVar(&f.move, "move", nil, "Move a tile between pages: FROM:ROW,COLUMN=TO:ROW,COLUMN")
	return cmd
}

func (f editFlags) ops() ([]layout.Op, error) {
	var ops []layout.Op
	if f.setName {
		ops = append(ops, layout.SetNameOp{Name: f.name})
	}
	if f.setBgr {
		ops = append(ops, layout.SetBackgroundOp{URL: f.background})
	}
	for range f.addPages {
		ops = append(ops, layout.AddPageOp{})
	}
	for range f.removePages {
		ops = append(ops, layout.RemovePageOp{})
	}
	if f.setPageName {
		ops = append(ops, layout.PageOp{Index: f.page, Edit: layout.RenamePage(f.pageName)})
	}
	for range f.addColumns {
		ops = append(ops, layout.PageOp{Index: f.page, Edit: layout.AddColumn})
	}
	for range f.removeCols {
		ops = append(ops, layout.PageOp{Index: f.page, Edit: layout.RemoveColumn})
	}
	for range f.addRows {
		ops = append(ops, layout.PageOp{Index: f.page, Edit: layout.AddRow})
	}
	for range f.removeRows {
		ops = append(ops, layout.PageOp{Index: f.page, Edit: layout.RemoveRow})
	}
	for _, s := range f.place {
		id, cell, ok := strings.Cut(s, "@")
		if !ok || id == "" {
			return nil, fmt.Errorf("--place %q: want ID@ROW,COLUMN", s)
		}
		row, col, err := parseCell(cell)
		if err != nil {
			return nil, fmt.Errorf("--place %q: %w", s, err)
		}
		ops = append(ops, layout.PageOp{Index: f.page, Edit: layout.PlaceEvent(id, row, col)})
	}
	for _, s := range f.resize {
		cell, size, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("--resize %q: want ROW,COLUMN=WIDTHxHEIGHT", s)
		}
		tile, err := tileAt(cell)
		if err != nil {
			return nil, fmt.Errorf("--resize %q: %w", s, err)
		}
		w, h, ok := strings.Cut(size, "x")
		if !ok {
			return nil, fmt.Errorf("--resize %q: want WIDTHxHEIGHT", s)
		}
		width, err := optionalInt(w)
		if err != nil {
			return nil, fmt.Errorf("--resize %q: %w", s, err)
		}
		height, err := optionalInt(h)
		if err != nil {
			return nil, fmt.Errorf("--resize %q: %w", s, err)
		}
		ops = append(ops, layout.PageOp{Index: f.page, Edit: layout.ResizeTile(tile, width, height)})
	}
	for _, s := range f.move {
		src, dst, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("--move %q: want FROM:ROW,COLUMN=TO:ROW,COLUMN", s)
		}
		from, fromCell, err := pageCell(src)
		if err != nil {
			return nil, fmt.Errorf("--move %q: %w", s, err)
		}
		to, toCell, err := pageCell(dst)
		if err != nil {
			return nil, fmt.Errorf("--move %q: %w", s, err)
		}
		tile, err := tileAt(fromCell)
		if err != nil {
			return nil, fmt.Errorf("--move %q: %w", s, err)
		}
		row, col, err := parseCell(toCell)
		if err != nil {
			return nil, fmt.Errorf("--move %q: %w", s, err)
		}
		ops = append(ops, layout.MoveTileOp{From: from, To: to, Tile: tile, Row: row, Column: col})
	}
	for _, s := range f.remove {
		tile, err := tileAt(s)
		if err != nil {
			return nil, fmt.Errorf("--remove-tile %q: %w", s, err)
		}
		ops = append(ops, layout.PageOp{Index: f.page, Edit: layout.RemoveTile(tile)})
	}
	return ops, nil
}

func parseCell(s string) (row, column int, err error) {
	r, c, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("cell %q: want ROW,COLUMN", s)
	}
	if row, err = strconv.Atoi(strings.TrimSpace(r)); err != nil {
		return 0, 0, fmt.Errorf("cell %q: %w", s, err)
	}
	if column, err = strconv.Atoi(strings.TrimSpace(c)); err != nil {
		return 0, 0, fmt.Errorf("cell %q: %w", s, err)
	}
	return row, column, nil
}

// tileAt возвращает плитку-образец: плитки сравниваются только по клетке.
func tileAt(cell string) (domain.Tile, error) {
	row, col, err := parseCell(cell)
	if err != nil {
		return nil, err
	}
	return domain.NewEventTile("", row, col), nil
}

func pageCell(s string) (page int, cell string, err error) {
	p, cell, ok := strings.Cut(s, ":")
	if !ok {
		return 0, "", fmt.Errorf("%q: want PAGE:ROW,COLUMN", s)
	}
	page, err = strconv.Atoi(p)
	if err != nil {
		return 0, "", fmt.Errorf("%q: %w", s, err)
	}
	return page, cell, nil
}

// optionalInt: пустая строка означает «не менять».
func optionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
