package formula

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the type of an evaluation result.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindNumber
	KindText
	KindBool
	KindError
)

// ErrorCode is an error marker displayed in place of a value.
type ErrorCode string

const (
	// ErrGeneric covers malformed formulas, wrong arity, non-numeric operands
	// and arithmetic failures.
	ErrGeneric ErrorCode = "#ERROR!"
	// ErrCycle marks a formula chain that refers back to itself.
	ErrCycle ErrorCode = "#CYCLE!"
)

// Value is the result of evaluating a formula or resolving a cell.
type Value struct {
	Kind Kind
	Num  float64
	Text string
	Bool bool
	Err  ErrorCode
}

// Empty is the value of an absent cell.
var Empty = Value{}

// Number returns a numeric value.
func Number(n float64) Value {
	return Value{Kind: KindNumber, Num: n}
}

// Text returns a text value.
func Text(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// Failure returns an error marker value.
func Failure(code ErrorCode) Value {
	return Value{Kind: KindError, Err: code}
}

// IsError reports whether v is an error marker.
func (v Value) IsError() bool {
	return v.Kind == KindError
}

// String returns the display form of v.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return FormatNumber(v.Num)
	case KindText:
		return v.Text
	case KindBool:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	case KindError:
		return string(v.Err)
	default:
		return ""
	}
}

// FormatNumber renders n in its shortest round-trip form, e.g. 12, 0.5, 1e+21.
func FormatNumber(n float64) string {
	if n == 0 {
		return "0"
	}
	abs := math.Abs(n)
	if abs >= 1e21 || abs < 1e-7 {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// literal converts a cell's raw text to a value.
func literal(raw string) Value {
	if strings.TrimSpace(raw) == "" {
		return Empty
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		return Number(n)
	}
	return Text(raw)
}

// toNumber coerces v for arithmetic. Text must parse as a whole number string.
func toNumber(v Value) (float64, Value, bool) {
	switch v.Kind {
	case KindEmpty:
		return 0, v, true
	case KindNumber:
		return v.Num, v, true
	case KindBool:
		if v.Bool {
			return 1, v, true
		}
		return 0, v, true
	case KindText:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, Failure(ErrGeneric), false
		}
		return n, v, true
	default:
		return 0, v, false
	}
}
