package gridcalc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/output"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/store"
	"go.alis.build/alog"
)

// Decode reads a JSON document into a sheet state. Cells are positioned by
// their label keys; tombstoned cells are dropped. Unknown fields such as a
// saved undo history are ignored.
func Decode(r io.Reader) (models.SheetState, error) {
	var doc models.SheetState
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return models.SheetState{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	cells, err := store.FromMap(doc.Cells)
	if err != nil {
		return models.SheetState{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	doc.Cells = cells.Map()
	if doc.Selection != nil {
		sel := models.NewSelection(doc.Selection.StartRow, doc.Selection.StartCol,
			doc.Selection.EndRow, doc.Selection.EndCol)
		doc.Selection = &sel
	}
	if doc.ColumnWidths == nil {
		doc.ColumnWidths = map[int]float64{}
	}
	if doc.RowHeights == nil {
		doc.RowHeights = map[int]float64{}
	}
	return doc, nil
}

// Encode writes state as a JSON document.
func Encode(w io.Writer, state models.SheetState, pretty bool) error {
	data, err := output.SheetToJSON(&state, pretty)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// Load reads the document at path.
func Load(ctx context.Context, path string) (models.SheetState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.SheetState{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return models.SheetState{}, err
	}
	state, err := Decode(bytes.NewReader(data))
	if err != nil {
		return models.SheetState{}, fmt.Errorf("load %s: %w", path, err)
	}
	alog.Debugf(ctx, "loaded %s: %d cells", path, len(state.Cells))
	return state, nil
}

// LoadOrNew reads the document at path, or returns an empty sheet when the
// file does not exist.
func LoadOrNew(ctx context.Context, path string) (models.SheetState, error) {
	state, err := Load(ctx, path)
	if errors.Is(err, ErrFileNotFound) {
		alog.Infof(ctx, "%s does not exist, starting an empty sheet", path)
		return models.NewSheetState(), nil
	}
	return state, err
}

// Save writes state to path, replacing any existing file.
func Save(ctx context.Context, path string, state models.SheetState, pretty bool) error {
	var buf bytes.Buffer
	if err := Encode(&buf, state, pretty); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	alog.Debugf(ctx, "saved %s: %d cells", path, len(state.Cells))
	return nil
}
