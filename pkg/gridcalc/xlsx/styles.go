package xlsx

import (
	"math"
	"strings"

	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/store"
	"github.com/xuri/excelize/v2"
)

// borderColor is the line color of exported borders.
const borderColor = "000000"

// ReadStyle returns the formatting of one cell, nil when the cell uses the
// default style.
func ReadStyle(f *excelize.File, sheetName, cellName string) (*models.CellStyle, error) {
	idx, err := f.GetCellStyle(sheetName, cellName)
	if err != nil || idx == 0 {
		return nil, err
	}
	st, err := f.GetStyle(idx)
	if err != nil {
		return nil, err
	}
	style := FromExcelStyle(st)
	if style.IsZero() {
		return nil, nil
	}
	return &style, nil
}

// FromExcelStyle maps the supported subset of an excelize style.
func FromExcelStyle(st *excelize.Style) models.CellStyle {
	var style models.CellStyle
	if st == nil {
		return style
	}
	if font := st.Font; font != nil {
		style.Bold = font.Bold
		style.Italic = font.Italic
		style.Underline = font.Underline != "" && font.Underline != "none"
		if font.Size > 0 {
			if size := int(math.Round(font.Size)); size != store.DefaultFontSize {
				style.FontSize = store.ClampFontSize(size)
			}
		}
		style.FontColor = hexColor(font.Color)
	}
	if st.Fill.Type == "pattern" && st.Fill.Pattern == 1 && len(st.Fill.Color) > 0 {
		style.BackgroundColor = hexColor(st.Fill.Color[0])
	}
	if st.Alignment != nil {
		switch a := models.Alignment(st.Alignment.Horizontal); a {
		case models.AlignLeft, models.AlignCenter, models.AlignRight:
			style.TextAlign = a
		}
	}
	for _, b := range st.Border {
		if b.Style == 0 {
			continue
		}
		switch b.Type {
		case "top":
			style.BorderTop = true
		case "right":
			style.BorderRight = true
		case "bottom":
			style.BorderBottom = true
		case "left":
			style.BorderLeft = true
		}
	}
	return style
}

// ToExcelStyle builds the excelize style of a cell style.
func ToExcelStyle(style models.CellStyle) *excelize.Style {
	font := &excelize.Font{
		Bold:   style.Bold,
		Italic: style.Italic,
		Color:  strings.TrimPrefix(style.FontColor, "#"),
	}
	if style.Underline {
		font.Underline = "single"
	}
	if style.FontSize > 0 {
		font.Size = float64(store.ClampFontSize(style.FontSize))
	}
	st := &excelize.Style{Font: font}
	if style.BackgroundColor != "" {
		st.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{strings.TrimPrefix(style.BackgroundColor, "#")},
		}
	}
	if style.TextAlign != "" {
		st.Alignment = &excelize.Alignment{Horizontal: string(style.TextAlign)}
	}
	for _, edge := range []struct {
		on   bool
		name string
	}{
		{style.BorderLeft, "left"},
		{style.BorderRight, "right"},
		{style.BorderTop, "top"},
		{style.BorderBottom, "bottom"},
	} {
		if edge.on {
			st.Border = append(st.Border, excelize.Border{Type: edge.name, Color: borderColor, Style: 1})
		}
	}
	return st
}

// hexColor normalizes an RRGGBB or AARRGGBB color to "#RRGGBB".
func hexColor(c string) string {
	c = strings.ToUpper(strings.TrimPrefix(c, "#"))
	if len(c) == 8 {
		c = c[2:]
	}
	if len(c) != 6 {
		return ""
	}
	return "#" + c
}
