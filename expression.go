package main

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr nodes are always handled through pointers so that each reference in
// the source has a stable identity. The resolver keys its distance table on
// that identity, never on the variable's name.
type Expr interface {
	isExpr()
	fmt.Stringer
}

func parenthesize(name string, exprs ...Expr) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(name)
	for _, expr := range exprs {
		sb.WriteByte(' ')
		sb.WriteString(expr.String())
	}
	sb.WriteByte(')')

	return sb.String()
}

type Literal struct {
	value any // float64, string, bool, or nil
}

func (*Literal) isExpr() {}
func (l *Literal) String() string {
	switch v := l.value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case nil:
		return "nil"
	default:
		panic(fmt.Sprintf("Incompatible literal type: %T", v))
	}
}

type Grouping struct {
	expression Expr
}

func (*Grouping) isExpr() {}
func (g *Grouping) String() string {
	return parenthesize("group", g.expression)
}

type Unary struct {
	op  Token
	rhs Expr
}

func (*Unary) isExpr() {}
func (u *Unary) String() string {
	return parenthesize(u.op.lexeme, u.rhs)
}

type Binary struct {
	lhs Expr
	op  Token
	rhs Expr
}

func (*Binary) isExpr() {}
func (b *Binary) String() string {
	return parenthesize(b.op.lexeme, b.lhs, b.rhs)
}

// Logical covers the short-circuiting and/or operators. They get their own
// node because, unlike Binary, the rhs may never be evaluated.
type Logical struct {
	lhs Expr
	op  Token
	rhs Expr
}

func (*Logical) isExpr() {}
func (l *Logical) String() string {
	return parenthesize(l.op.lexeme, l.lhs, l.rhs)
}

type Variable struct {
	name Token
}

func (*Variable) isExpr() {}
func (v *Variable) String() string {
	return parenthesize(v.name.lexeme)
}

type Assign struct {
	name  Token
	value Expr
}

func (*Assign) isExpr() {}
func (a *Assign) String() string {
	return parenthesize("assign "+a.name.lexeme, a.value)
}

type CallExpr struct {
	callee Expr
	paren  Token // closing paren, for error reporting
	args   []Expr
}

func (*CallExpr) isExpr() {}
func (c *CallExpr) String() string {
	return parenthesize("call "+c.callee.String(), c.args...)
}

type GetExpr struct {
	object Expr
	name   Token
}

func (*GetExpr) isExpr() {}
func (g *GetExpr) String() string {
	return parenthesize("get "+g.name.lexeme, g.object)
}

type SetExpr struct {
	object Expr
	name   Token
	value  Expr
}

func (*SetExpr) isExpr() {}
func (s *SetExpr) String() string {
	return parenthesize("set "+s.name.lexeme, s.object, s.value)
}

type ThisExpr struct {
	keyword Token
}

func (*ThisExpr) isExpr() {}
func (t *ThisExpr) String() string {
	return "this"
}
