package main

import (
	"fmt"
	"strings"
)

type Stmt interface {
	isStmt()
	fmt.Stringer
}

type ExprStmt struct {
	expr Expr
}

func (*ExprStmt) isStmt() {}
func (e *ExprStmt) String() string {
	return e.expr.String() + ";"
}

type PrintStmt struct {
	expr Expr
}

func (*PrintStmt) isStmt() {}
func (p *PrintStmt) String() string {
	return "print " + p.expr.String() + ";"
}

type VarDecl struct {
	name        Token
	initializer Expr // nil when declared without a value
}

func (*VarDecl) isStmt() {}
func (d *VarDecl) String() string {
	if d.initializer == nil {
		return "var " + d.name.lexeme + ";"
	}
	return "var " + d.name.lexeme + " = " + d.initializer.String() + ";"
}

type FunDecl struct {
	name   Token
	params []Token
	body   []Stmt
}

func (*FunDecl) isStmt() {}
func (f *FunDecl) String() string {
	return "fun " + f.name.lexeme
}

type ClassDecl struct {
	name       Token
	superclass *Variable // nil when the class has no parent
	methods    []*FunDecl
}

func (*ClassDecl) isStmt() {}
func (c *ClassDecl) String() string {
	if c.superclass == nil {
		return "class " + c.name.lexeme
	}
	return "class " + c.name.lexeme + " < " + c.superclass.name.lexeme
}

type Block struct {
	stmts []Stmt
}

func (*Block) isStmt() {}
func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for _, stmt := range b.stmts {
		sb.WriteString(stmt.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

type IfStmt struct {
	condition  Expr
	thenBranch Stmt
	elseBranch Stmt // nil when there is no else
}

func (*IfStmt) isStmt() {}
func (i *IfStmt) String() string {
	var sb strings.Builder
	sb.WriteString("if ")
	sb.WriteString(i.condition.String())
	sb.WriteByte(' ')
	sb.WriteString(i.thenBranch.String())
	if i.elseBranch != nil {
		sb.WriteString(" else ")
		sb.WriteString(i.elseBranch.String())
	}
	return sb.String()
}

type WhileStmt struct {
	condition Expr
	body      Stmt
}

func (*WhileStmt) isStmt() {}
func (w *WhileStmt) String() string {
	return "while " + w.condition.String() + " " + w.body.String()
}

// ForStmt is kept as its own node instead of desugaring to while: a continue
// inside the body must still run the increment clause, which a plain while
// rewrite cannot express.
type ForStmt struct {
	initializer Stmt // nil when omitted
	condition   Expr // nil means loop forever
	increment   Expr // nil when omitted
	body        Stmt
}

func (*ForStmt) isStmt() {}
func (f *ForStmt) String() string {
	return fmt.Sprintf("for (%v; %v; %v) %s",
		f.initializer, f.condition, f.increment, f.body)
}

type ReturnStmt struct {
	keyword Token
	value   Expr // nil returns nil
}

func (*ReturnStmt) isStmt() {}
func (r *ReturnStmt) String() string {
	if r.value == nil {
		return "return;"
	}
	return "return " + r.value.String() + ";"
}

type BreakStmt struct {
	keyword Token
}

func (*BreakStmt) isStmt() {}
func (b *BreakStmt) String() string {
	return "break;"
}

type ContinueStmt struct {
	keyword Token
}

func (*ContinueStmt) isStmt() {}
func (c *ContinueStmt) String() string {
	return "continue;"
}
