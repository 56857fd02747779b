// Package address converts between zero-based (row, col) pairs and cell labels such as "A1".
//
// Columns use bijective base-26 letters (A..Z, AA..AZ, BA..), rows are 1-based decimals.
package address

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
)

// ErrInvalidAddress indicates a malformed cell label or coordinate.
var ErrInvalidAddress = errors.New("invalid cell address")

// maxColumnLetters bounds label parsing so column arithmetic cannot overflow.
const maxColumnLetters = 12

var labelPattern = regexp.MustCompile(`^([A-Z]+)([0-9]+)$`)

// ColumnName returns the letters for a zero-based column index.
// It returns an empty string for negative input.
func ColumnName(col int) string {
	if col < 0 {
		return ""
	}
	var buf [maxColumnLetters + 2]byte
	i := len(buf)
	for col >= 0 {
		i--
		buf[i] = byte('A' + col%26)
		col = col/26 - 1
	}
	return string(buf[i:])
}

// ColumnIndex returns the zero-based column index for column letters.
func ColumnIndex(letters string) (int, error) {
	if letters == "" || len(letters) > maxColumnLetters {
		return 0, fmt.Errorf("%w: column %q", ErrInvalidAddress, letters)
	}
	col := 0
	for i := 0; i < len(letters); i++ {
		ch := letters[i]
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("%w: column %q", ErrInvalidAddress, letters)
		}
		col = col*26 + int(ch-'A'+1)
	}
	return col - 1, nil
}

// ToLabel returns the label for a zero-based address, e.g. (0, 0) -> "A1".
// It returns an empty string when either coordinate is negative.
func ToLabel(row, col int) string {
	if row < 0 || col < 0 {
		return ""
	}
	return ColumnName(col) + strconv.Itoa(row+1)
}

// FromLabel parses a label into a zero-based address.
// Labels must match ^[A-Z]+[0-9]+$ with a row number of at least 1.
func FromLabel(label string) (row, col int, err error) {
	m := labelPattern.FindStringSubmatch(label)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidAddress, label)
	}
	col, err = ColumnIndex(m[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidAddress, label)
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n < 1 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidAddress, label)
	}
	return n - 1, col, nil
}

// Parse is FromLabel returning a models.Address.
func Parse(label string) (models.Address, error) {
	row, col, err := FromLabel(label)
	if err != nil {
		return models.Address{}, err
	}
	return models.Address{Row: row, Col: col}, nil
}

// Label returns the label of an address.
func Label(a models.Address) string {
	return ToLabel(a.Row, a.Col)
}

// ParseRange parses "A1:C3" (or a single label) into a normalized selection.
func ParseRange(ref string) (models.Selection, error) {
	start, end, found := strings.Cut(ref, ":")
	r1, c1, err := FromLabel(start)
	if err != nil {
		return models.Selection{}, err
	}
	if !found {
		return models.SingleCell(r1, c1), nil
	}
	r2, c2, err := FromLabel(end)
	if err != nil {
		return models.Selection{}, err
	}
	return models.NewSelection(r1, c1, r2, c2), nil
}

// RangeLabel formats a selection as "A1:C3", or "A1" for a single cell.
func RangeLabel(s models.Selection) string {
	start := ToLabel(s.StartRow, s.StartCol)
	if s.Area() == 1 {
		return start
	}
	return start + ":" + ToLabel(s.EndRow, s.EndCol)
}
