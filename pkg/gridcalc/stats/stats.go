// Package stats computes the status-bar aggregates of a selection.
package stats

import (
	"math"
	"strings"

	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/formula"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
)

// Stats summarizes a selection. Optional fields are nil when no cell
// contributed to them.
type Stats struct {
	// SelectedCount is the rectangle area regardless of occupancy
	SelectedCount int `json:"selected_count"`

	// Count is the number of non-blank cells
	Count *int `json:"count,omitempty"`

	// NumericCount is the number of cells whose evaluated value parsed as a number
	NumericCount int `json:"numeric_count"`

	Sum     *float64 `json:"sum,omitempty"`
	Average *float64 `json:"average,omitempty"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
}

// Compute aggregates the cells of sel read from src. A nil selection stands
// for the single active cell and only reports SelectedCount. Infinite
// numbers are not counted as numeric so every reported figure stays finite.
func Compute(sel *models.Selection, src formula.Source) Stats {
	if sel == nil {
		return Stats{SelectedCount: 1}
	}

	var (
		count    int
		sum      float64
		min, max = math.Inf(1), math.Inf(-1)
		out      = Stats{SelectedCount: sel.Area()}
	)
	formula.Walk(src, *sel, func(row, col int) bool {
		cell, ok := src.Cell(row, col)
		if !ok || strings.TrimSpace(cell.Value) == "" {
			return true
		}
		count++

		n, ok := numericValue(src, row, col)
		if !ok || math.IsInf(sum+n, 0) {
			return true
		}
		out.NumericCount++
		sum += n
		min = math.Min(min, n)
		max = math.Max(max, n)
		return true
	})

	if count > 0 {
		out.Count = &count
	}
	if out.NumericCount > 0 {
		avg := sum / float64(out.NumericCount)
		out.Sum = &sum
		out.Average = &avg
		out.Min = &min
		out.Max = &max
	}
	return out
}

func numericValue(src formula.Source, row, col int) (float64, bool) {
	v := formula.EvaluateCell(src, row, col)
	switch v.Kind {
	case formula.KindNumber:
		return v.Num, true
	case formula.KindText:
		n, ok := formula.ParseLenient(v.Text)
		return n, ok && !math.IsInf(n, 0)
	}
	return 0, false
}
