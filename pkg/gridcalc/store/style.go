package store

import (
	"slices"

	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
)

const (
	// MinFontSize and MaxFontSize bound font sizes.
	MinFontSize = 8
	MaxFontSize = 72
	// DefaultFontSize is the size of a cell without an explicit font size.
	DefaultFontSize = 11
)

// fontSizes is the ladder used by the grow/shrink font actions.
var fontSizes = []int{8, 9, 10, 11, 12, 14, 16, 18, 20, 22, 24, 26, 28, 36, 48, 72}

// Edge names one border of a cell.
type Edge string

const (
	EdgeTop    Edge = "top"
	EdgeRight  Edge = "right"
	EdgeBottom Edge = "bottom"
	EdgeLeft   Edge = "left"
)

// StyleMutator returns an updated copy of a style.
type StyleMutator func(models.CellStyle) models.CellStyle

// ToggleBold flips the bold flag.
func ToggleBold() StyleMutator {
	return func(s models.CellStyle) models.CellStyle {
		s.Bold = !s.Bold
		return s
	}
}

// ToggleItalic flips the italic flag.
func ToggleItalic() StyleMutator {
	return func(s models.CellStyle) models.CellStyle {
		s.Italic = !s.Italic
		return s
	}
}

// ToggleUnderline flips the underline flag.
func ToggleUnderline() StyleMutator {
	return func(s models.CellStyle) models.CellStyle {
		s.Underline = !s.Underline
		return s
	}
}

// Align sets the horizontal alignment.
func Align(a models.Alignment) StyleMutator {
	return func(s models.CellStyle) models.CellStyle {
		s.TextAlign = a
		return s
	}
}

// SetFontSize sets the font size clamped to [MinFontSize, MaxFontSize].
func SetFontSize(size int) StyleMutator {
	return func(s models.CellStyle) models.CellStyle {
		s.FontSize = ClampFontSize(size)
		return s
	}
}

// StepFontSize moves the font size steps positions along the size ladder;
// positive grows, negative shrinks.
func StepFontSize(steps int) StyleMutator {
	return func(s models.CellStyle) models.CellStyle {
		current := s.FontSize
		if current == 0 {
			current = DefaultFontSize
		}
		i, found := slices.BinarySearch(fontSizes, current)
		switch {
		case steps > 0 && !found:
			// i already points at the next larger size.
			steps--
		case steps < 0 && !found:
			i--
			steps++
		}
		i = min(max(i+steps, 0), len(fontSizes)-1)
		s.FontSize = fontSizes[i]
		return s
	}
}

// SetFontColor sets the font color; an empty color clears it.
func SetFontColor(color string) StyleMutator {
	return func(s models.CellStyle) models.CellStyle {
		s.FontColor = color
		return s
	}
}

// SetBackgroundColor sets the fill color; an empty color clears it.
func SetBackgroundColor(color string) StyleMutator {
	return func(s models.CellStyle) models.CellStyle {
		s.BackgroundColor = color
		return s
	}
}

// ToggleBorder flips the border flag of one edge.
func ToggleBorder(edge Edge) StyleMutator {
	return func(s models.CellStyle) models.CellStyle {
		switch edge {
		case EdgeTop:
			s.BorderTop = !s.BorderTop
		case EdgeRight:
			s.BorderRight = !s.BorderRight
		case EdgeBottom:
			s.BorderBottom = !s.BorderBottom
		case EdgeLeft:
			s.BorderLeft = !s.BorderLeft
		}
		return s
	}
}

// ClearStyle removes every style flag.
func ClearStyle() StyleMutator {
	return func(models.CellStyle) models.CellStyle {
		return models.CellStyle{}
	}
}

// Chain applies mutators in order.
func Chain(mutators ...StyleMutator) StyleMutator {
	return func(s models.CellStyle) models.CellStyle {
		for _, m := range mutators {
			if m != nil {
				s = m(s)
			}
		}
		return s
	}
}

// ClampFontSize bounds size to [MinFontSize, MaxFontSize].
func ClampFontSize(size int) int {
	return min(max(size, MinFontSize), MaxFontSize)
}
