package formula

import (
	"math"
	"strings"

	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/address"
)

// Functions lists the supported function names.
var Functions = []string{"SUM", "AVERAGE", "COUNT", "MAX", "MIN", "IF"}

// reducer folds the numeric operands of an aggregate into a result.
type reducer func(nums []float64) float64

func sumOf(nums []float64) float64 {
	total := 0.0
	for _, n := range nums {
		total += n
	}
	return total
}

// averageOf returns 0 when there are no numeric operands.
func averageOf(nums []float64) float64 {
	if len(nums) == 0 {
		return 0
	}
	return sumOf(nums) / float64(len(nums))
}

func maxOf(nums []float64) float64 {
	if len(nums) == 0 {
		return 0
	}
	m := nums[0]
	for _, n := range nums[1:] {
		m = max(m, n)
	}
	return m
}

func minOf(nums []float64) float64 {
	if len(nums) == 0 {
		return 0
	}
	m := nums[0]
	for _, n := range nums[1:] {
		m = min(m, n)
	}
	return m
}

// aggregate collects numeric operands from every argument and reduces them.
// Reference arguments contribute each present cell that parses as a number;
// other cells are skipped. A cell caught in a cycle makes the whole result
// #CYCLE!. Scalar arguments must be numeric.
func (e *evaluation) aggregate(args []*argAST, reduce reducer) Value {
	if len(args) == 0 {
		return Failure(ErrGeneric)
	}
	var nums []float64
	for _, arg := range args {
		if ref := arg.ref(); ref != nil {
			failed := Empty
			ok := e.eachCell(ref, func(row, col int) bool {
				v := e.reference(row, col)
				if v.IsError() && v.Err == ErrCycle {
					failed = v
					return false
				}
				if n, ok := numeric(v); ok {
					nums = append(nums, n)
				}
				return true
			})
			if !ok {
				return Failure(ErrGeneric)
			}
			if failed.IsError() {
				return failed
			}
			continue
		}
		n, v, ok := toNumber(e.arg(arg))
		if !ok {
			return v
		}
		nums = append(nums, n)
	}
	result := reduce(nums)
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return Failure(ErrGeneric)
	}
	return Number(result)
}

// count returns the number of non-blank cells (by raw text) in reference
// arguments plus the number of non-blank scalar arguments.
func (e *evaluation) count(args []*argAST) Value {
	if len(args) == 0 {
		return Failure(ErrGeneric)
	}
	total := 0
	for _, arg := range args {
		if ref := arg.ref(); ref != nil {
			ok := e.eachCell(ref, func(row, col int) bool {
				if cell, found := e.src.Cell(row, col); found && strings.TrimSpace(cell.Value) != "" {
					total++
				}
				return true
			})
			if !ok {
				return Failure(ErrGeneric)
			}
			continue
		}
		v := e.arg(arg)
		if v.IsError() {
			return v
		}
		if strings.TrimSpace(v.String()) != "" {
			total++
		}
	}
	return Number(float64(total))
}

// ifThen evaluates IF(cond, a, b). Only the selected branch is evaluated.
// A branch written as a lone word, as in IF(A1>1,yes,no), is that word.
func (e *evaluation) ifThen(args []*argAST) Value {
	if len(args) != 3 {
		return Failure(ErrGeneric)
	}
	cond, v, ok := truthy(e.arg(args[0]))
	if !ok {
		return v
	}
	branch := args[2]
	if cond {
		branch = args[1]
	}
	if branch.Word != nil {
		return Text(*branch.Word)
	}
	return e.expr(branch.Expr)
}

// arg evaluates a function argument. A lone word outside an IF branch is
// not a value.
func (e *evaluation) arg(a *argAST) Value {
	if a.Word != nil {
		return Failure(ErrGeneric)
	}
	return e.expr(a.Expr)
}

// eachCell visits the cells a reference covers in row-major order until fn
// returns false. It reports false when the reference is malformed or too
// large to walk.
func (e *evaluation) eachCell(ref *refAST, fn func(row, col int) bool) bool {
	label := ref.From
	if ref.To != "" {
		label += ":" + ref.To
	}
	sel, err := address.ParseRange(label)
	if err != nil {
		return false
	}
	return Walk(e.src, sel, fn)
}
