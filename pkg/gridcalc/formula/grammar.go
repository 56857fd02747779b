package formula

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Operator precedence, lowest first:
//
//	comparison  = <> < <= > >=
//	additive    + -
//	product     * /
//	power       ^
//	unary       + -
var formulaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "String", Pattern: `"(?:[^"]|"")*"`},
	{Name: "Number", Pattern: `(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eE][-+]?[0-9]+)?`},
	{Name: "Ref", Pattern: `[A-Z]+[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.]*`},
	{Name: "Operator", Pattern: `<>|<=|>=|[-+*/^<>=(),:]`},
})

var formulaParser = participle.MustBuild[formulaAST](
	participle.Lexer(formulaLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

type formulaAST struct {
	Expr *exprAST `"=" @@`
}

type exprAST struct {
	Left *sumAST     `@@`
	Tail *compareAST `@@?`
}

type compareAST struct {
	Op    string  `@("<>" | "<=" | ">=" | "<" | ">" | "=")`
	Right *sumAST `@@`
}

type sumAST struct {
	Left *productAST `@@`
	Rest []*sumOpAST `@@*`
}

type sumOpAST struct {
	Op    string      `@("+" | "-")`
	Right *productAST `@@`
}

type productAST struct {
	Left *powerAST       `@@`
	Rest []*productOpAST `@@*`
}

type productOpAST struct {
	Op    string    `@("*" | "/")`
	Right *powerAST `@@`
}

type powerAST struct {
	Base      *unaryAST   `@@`
	Exponents []*unaryAST `( "^" @@ )*`
}

type unaryAST struct {
	Signs   []string    `@("-" | "+")*`
	Operand *primaryAST `@@`
}

type primaryAST struct {
	Number *float64 `  @Number`
	String *string  `| @String`
	Bool   *string  `| @("TRUE" | "FALSE")`
	Call   *callAST `| @@`
	Ref    *refAST  `| @@`
	Group  *exprAST `| "(" @@ ")"`
}

type callAST struct {
	Name string    `@Ident "("`
	Args []*argAST `( @@ ( "," @@ )* )? ")"`
}

// argAST is a function argument. A lone word only has a value as an IF
// branch, where it stands for itself as text.
type argAST struct {
	Expr *exprAST `  @@`
	Word *string  `| @Ident`
}

type refAST struct {
	From string `@Ref`
	To   string `( ":" @Ref )?`
}

// parse parses formula text, which must begin with "=".
func parse(text string) (*formulaAST, error) {
	return formulaParser.ParseString("", text)
}

// Valid reports whether text is a syntactically valid formula.
func Valid(text string) bool {
	_, err := parse(text)
	return err == nil
}

// IsFormula reports whether raw cell text is a formula.
func IsFormula(raw string) bool {
	return strings.HasPrefix(raw, "=")
}

// bareRef returns the reference when the expression is nothing but a
// reference or range, as in SUM(A1:A3).
func (e *exprAST) bareRef() *refAST {
	if e.Tail != nil || len(e.Left.Rest) > 0 {
		return nil
	}
	product := e.Left.Left
	if len(product.Rest) > 0 || len(product.Left.Exponents) > 0 {
		return nil
	}
	unary := product.Left.Base
	if len(unary.Signs) > 0 {
		return nil
	}
	return unary.Operand.Ref
}

// ref returns the reference when the argument is a bare reference or range.
func (a *argAST) ref() *refAST {
	if a.Expr == nil {
		return nil
	}
	return a.Expr.bareRef()
}

// unquote strips the surrounding quotes of a string literal and collapses "" escapes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(s, `""`, `"`)
}
