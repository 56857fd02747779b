// Package formula parses and evaluates cell formulas against a cell source.
//
// Evaluation is pure: it never mutates the source and never fails with a Go
// error. Malformed input, wrong arity and arithmetic failures produce the
// #ERROR! marker; a formula chain that refers back to a cell already being
// resolved produces #CYCLE! for that branch.
package formula

import (
	"math"
	"strings"

	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/address"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
)

// Source provides read access to cells. Absent cells resolve to 0.
type Source interface {
	Cell(row, col int) (models.Cell, bool)
}

// Evaluate evaluates formula text against src. Text that does not begin
// with "=" is returned unchanged as a text value.
func Evaluate(text string, src Source) Value {
	if !IsFormula(text) {
		return Text(text)
	}
	return newEvaluation(src).formula(text)
}

// EvaluateCell resolves the value of the cell at (row, col), evaluating its
// formula if it has one. The cell itself counts as in progress, so a
// formula referring to its own cell yields #CYCLE!.
func EvaluateCell(src Source, row, col int) Value {
	return newEvaluation(src).reference(row, col)
}

// Display returns the displayed text of formula evaluated against src.
func Display(text string, src Source) string {
	return Evaluate(text, src).String()
}

type evaluation struct {
	src Source
	// active holds the labels currently being resolved on the call stack.
	active map[string]struct{}
}

func newEvaluation(src Source) *evaluation {
	return &evaluation{src: src, active: make(map[string]struct{})}
}

func (e *evaluation) formula(text string) Value {
	ast, err := parse(text)
	if err != nil {
		return Failure(ErrGeneric)
	}
	return e.expr(ast.Expr)
}

// reference resolves one cell, guarding against re-entry.
func (e *evaluation) reference(row, col int) Value {
	cell, ok := e.src.Cell(row, col)
	if !ok {
		return Empty
	}
	if cell.Formula == "" {
		return literal(cell.Value)
	}
	label := address.ToLabel(row, col)
	if _, busy := e.active[label]; busy {
		return Failure(ErrCycle)
	}
	e.active[label] = struct{}{}
	defer delete(e.active, label)
	return e.formula(cell.Formula)
}

func (e *evaluation) expr(node *exprAST) Value {
	left := e.sum(node.Left)
	if node.Tail == nil {
		return left
	}
	if left.IsError() {
		return left
	}
	right := e.sum(node.Tail.Right)
	if right.IsError() {
		return right
	}
	return compare(node.Tail.Op, left, right)
}

func (e *evaluation) sum(node *sumAST) Value {
	acc := e.product(node.Left)
	for _, op := range node.Rest {
		acc = arithmetic(op.Op, acc, e.product(op.Right))
	}
	return acc
}

func (e *evaluation) product(node *productAST) Value {
	acc := e.power(node.Left)
	for _, op := range node.Rest {
		acc = arithmetic(op.Op, acc, e.power(op.Right))
	}
	return acc
}

func (e *evaluation) power(node *powerAST) Value {
	acc := e.unary(node.Base)
	for _, exp := range node.Exponents {
		acc = arithmetic("^", acc, e.unary(exp))
	}
	return acc
}

func (e *evaluation) unary(node *unaryAST) Value {
	v := e.primary(node.Operand)
	if len(node.Signs) == 0 {
		return v
	}
	n, v, ok := toNumber(v)
	if !ok {
		return v
	}
	for _, sign := range node.Signs {
		if sign == "-" {
			n = -n
		}
	}
	return Number(n)
}

func (e *evaluation) primary(node *primaryAST) Value {
	switch {
	case node.Number != nil:
		return Number(*node.Number)
	case node.String != nil:
		return Text(unquote(*node.String))
	case node.Bool != nil:
		return Bool(*node.Bool == "TRUE")
	case node.Call != nil:
		return e.call(node.Call)
	case node.Ref != nil:
		if node.Ref.To != "" {
			// A range has no scalar value.
			return Failure(ErrGeneric)
		}
		row, col, err := address.FromLabel(node.Ref.From)
		if err != nil {
			return Failure(ErrGeneric)
		}
		v := e.reference(row, col)
		if v.Kind == KindEmpty {
			return Number(0)
		}
		return v
	case node.Group != nil:
		return e.expr(node.Group)
	}
	return Failure(ErrGeneric)
}

func (e *evaluation) call(node *callAST) Value {
	switch strings.ToUpper(node.Name) {
	case "SUM":
		return e.aggregate(node.Args, sumOf)
	case "AVERAGE":
		return e.aggregate(node.Args, averageOf)
	case "MAX":
		return e.aggregate(node.Args, maxOf)
	case "MIN":
		return e.aggregate(node.Args, minOf)
	case "COUNT":
		return e.count(node.Args)
	case "IF":
		return e.ifThen(node.Args)
	}
	return Failure(ErrGeneric)
}

func arithmetic(op string, left, right Value) Value {
	if left.IsError() {
		return left
	}
	if right.IsError() {
		return right
	}
	a, lv, ok := toNumber(left)
	if !ok {
		return lv
	}
	b, rv, ok := toNumber(right)
	if !ok {
		return rv
	}
	var n float64
	switch op {
	case "+":
		n = a + b
	case "-":
		n = a - b
	case "*":
		n = a * b
	case "/":
		if b == 0 {
			return Failure(ErrGeneric)
		}
		n = a / b
	case "^":
		n = math.Pow(a, b)
	default:
		return Failure(ErrGeneric)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return Failure(ErrGeneric)
	}
	return Number(n)
}

// compare applies a comparison operator. Numbers, booleans and blanks compare
// numerically; anything involving text compares case-insensitively as text.
func compare(op string, left, right Value) Value {
	var c int
	if left.Kind != KindText && right.Kind != KindText {
		a, _, _ := toNumber(left)
		b, _, _ := toNumber(right)
		switch {
		case a < b:
			c = -1
		case a > b:
			c = 1
		}
	} else {
		c = strings.Compare(strings.ToUpper(left.String()), strings.ToUpper(right.String()))
	}
	switch op {
	case "=":
		return Bool(c == 0)
	case "<>":
		return Bool(c != 0)
	case "<":
		return Bool(c < 0)
	case "<=":
		return Bool(c <= 0)
	case ">":
		return Bool(c > 0)
	case ">=":
		return Bool(c >= 0)
	}
	return Failure(ErrGeneric)
}

// truthy interprets a condition value.
func truthy(v Value) (bool, Value, bool) {
	switch v.Kind {
	case KindEmpty:
		return false, v, true
	case KindBool:
		return v.Bool, v, true
	case KindNumber:
		return v.Num != 0, v, true
	case KindText:
		switch strings.ToUpper(strings.TrimSpace(v.Text)) {
		case "TRUE":
			return true, v, true
		case "FALSE":
			return false, v, true
		}
		return false, Failure(ErrGeneric), false
	default:
		return false, v, false
	}
}
