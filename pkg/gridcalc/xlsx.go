package gridcalc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/store"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/xlsx"
	"github.com/xuri/excelize/v2"
	"go.alis.build/alog"
)

// Import reads the worksheets of an xlsx workbook.
func Import(ctx context.Context, path string, opts ImportOptions) (*models.WorkbookData, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	defer f.Close()

	// Get sheet names
	sheetList := f.GetSheetList()
	if opts.Sheet != "" {
		if idx, err := f.GetSheetIndex(opts.Sheet); err != nil || idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, opts.Sheet)
		}
		sheetList = []string{opts.Sheet}
	}

	wb := &models.WorkbookData{
		BookName:   filepath.Base(path),
		SheetNames: sheetList,
		Sheets:     make(map[string]models.SheetState, len(sheetList)),
	}
	for _, sheetName := range sheetList {
		sheet, err := importSheet(f, sheetName, opts)
		if err != nil {
			if opts.Sheet != "" {
				return nil, err
			}
			// Log warning and continue with an empty sheet
			alog.Warnf(ctx, "skipping %s: %v", sheetName, err)
			sheet = models.NewSheetState()
		}
		alog.Debugf(ctx, "imported sheet %q: %d cells", sheetName, len(sheet.Cells))
		wb.Sheets[sheetName] = sheet
	}
	return wb, nil
}

func importSheet(f *excelize.File, sheetName string, opts ImportOptions) (models.SheetState, error) {
	sheet := models.NewSheetState()

	cells, err := xlsx.ReadCells(f, sheetName, opts.ShouldIncludeStyles())
	if err != nil {
		return sheet, NewSheetError(sheetName, "cells", err)
	}
	sheet.Cells = store.New(cells...).Map()

	if opts.ShouldIncludeDimensions() {
		rows, cols := xlsx.DataBounds(cells)
		widths, heights, err := xlsx.ReadDimensions(f, sheetName, max(rows, DefaultRows), max(cols, DefaultCols))
		if err != nil {
			return sheet, NewSheetError(sheetName, "dimensions", err)
		}
		sheet.ColumnWidths, sheet.RowHeights = widths, heights
	}
	return sheet, nil
}

// Export writes state as the only worksheet of a new xlsx workbook at path.
// Formula cells are written with their evaluated values cached.
func Export(ctx context.Context, path, sheetName string, state models.SheetState) error {
	cells, err := store.FromMap(state.Cells)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if sheetName == "" {
		sheetName = "Sheet1"
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return NewSheetError(sheetName, "cells", err)
	}
	if err := xlsx.WriteSheet(f, sheetName, cells); err != nil {
		return NewSheetError(sheetName, "cells", err)
	}
	if err := xlsx.WriteDimensions(f, sheetName, state.ColumnWidths, state.RowHeights); err != nil {
		return NewSheetError(sheetName, "dimensions", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	alog.Debugf(ctx, "exported %d cells to %s", cells.Len(), path)
	return nil
}
