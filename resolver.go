package main

import "fmt"

type ResolverErrorKind byte

const (
	ResErrNotInitialized ResolverErrorKind = iota
	ResErrVariableAlreadyExists
	ResErrReturnNotInFunction
	ResErrInvalidThis
)

// ResolverError is a static fault: it aborts before any statement runs, so
// the runtime frame chain is never touched.
type ResolverError struct {
	Kind ResolverErrorKind
	tok  Token
	msg  string
}

func (e *ResolverError) Error() string {
	return fmt.Sprintf("[line %d] Resolution Error at '%s': %s",
		e.tok.line, e.tok.lexeme, e.msg)
}

type functionType byte

const (
	funcNone functionType = iota
	funcFunction
	funcMethod
)

type classType byte

const (
	classNone classType = iota
	classClass
)

// Resolver walks the tree once before execution, computing how many frames
// separate every variable reference from its declaration. Each scope map
// tracks declared-but-not-yet-defined names (value false) so an
// initializer can't read the variable it is initializing.
//
// break/continue placement is deliberately not checked here; the
// interpreter validates it with its insideLoop flag.
type Resolver struct {
	scopes       []map[string]bool
	locals       map[Expr]int
	currentFunc  functionType
	currentClass classType
}

func NewResolver() *Resolver {
	return &Resolver{
		scopes: make([]map[string]bool, 0),
		locals: make(map[Expr]int),
	}
}

// Resolve walks the statements and returns the distance table, keyed by
// expression identity. The host hands the table to the interpreter.
func (r *Resolver) Resolve(stmts []Stmt) (map[Expr]int, error) {
	if err := r.resolveStmts(stmts); err != nil {
		return nil, err
	}
	return r.locals, nil
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) innermost() map[string]bool {
	if len(r.scopes) == 0 {
		return nil
	}
	return r.scopes[len(r.scopes)-1]
}

// declare marks the name visible but unusable. At the top level there is no
// scope map; globals are not tracked.
func (r *Resolver) declare(name Token) error {
	scope := r.innermost()
	if scope == nil {
		return nil
	}

	if _, ok := scope[name.lexeme]; ok {
		return &ResolverError{
			Kind: ResErrVariableAlreadyExists,
			tok:  name,
			msg:  fmt.Sprintf("Variable %s is already declared in the current scope", name.lexeme),
		}
	}

	scope[name.lexeme] = false
	return nil
}

func (r *Resolver) define(name Token) {
	if scope := r.innermost(); scope != nil {
		scope[name.lexeme] = true
	}
}

// resolveLocal records the distance from the innermost scope to the one
// declaring the name. Names found in no scope are globals and get no
// record: the interpreter falls back to the root frame by name.
func (r *Resolver) resolveLocal(expr Expr, name Token) {
	for idx := len(r.scopes) - 1; idx >= 0; idx-- {
		if _, ok := r.scopes[idx][name.lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - idx
			return
		}
	}
}

func (r *Resolver) resolveStmts(stmts []Stmt) error {
	for _, stmt := range stmts {
		if err := r.resolveStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) resolveStmt(stmt Stmt) error {
	switch s := stmt.(type) {
	case *ExprStmt:
		return r.resolveExpr(s.expr)

	case *PrintStmt:
		return r.resolveExpr(s.expr)

	case *VarDecl:
		if err := r.declare(s.name); err != nil {
			return err
		}
		if s.initializer != nil {
			if err := r.resolveExpr(s.initializer); err != nil {
				return err
			}
		}
		r.define(s.name)
		return nil

	case *FunDecl:
		if err := r.declare(s.name); err != nil {
			return err
		}
		r.define(s.name) // defined before the body, so recursion works

		return r.resolveFunction(s, funcFunction)

	case *ClassDecl:
		return r.resolveClassDecl(s)

	case *Block:
		r.beginScope()
		defer r.endScope()
		return r.resolveStmts(s.stmts)

	case *IfStmt:
		if err := r.resolveExpr(s.condition); err != nil {
			return err
		}
		if err := r.resolveStmt(s.thenBranch); err != nil {
			return err
		}
		if s.elseBranch != nil {
			return r.resolveStmt(s.elseBranch)
		}
		return nil

	case *WhileStmt:
		if err := r.resolveExpr(s.condition); err != nil {
			return err
		}
		return r.resolveStmt(s.body)

	case *ForStmt:
		// The initializer lives in its own scope, mirroring the frame the
		// interpreter wraps around the whole loop.
		r.beginScope()
		defer r.endScope()

		if s.initializer != nil {
			if err := r.resolveStmt(s.initializer); err != nil {
				return err
			}
		}
		if s.condition != nil {
			if err := r.resolveExpr(s.condition); err != nil {
				return err
			}
		}
		if s.increment != nil {
			if err := r.resolveExpr(s.increment); err != nil {
				return err
			}
		}
		return r.resolveStmt(s.body)

	case *ReturnStmt:
		if r.currentFunc == funcNone {
			return &ResolverError{
				Kind: ResErrReturnNotInFunction,
				tok:  s.keyword,
				msg:  "Return statement has been used outside function",
			}
		}
		if s.value != nil {
			return r.resolveExpr(s.value)
		}
		return nil

	case *BreakStmt, *ContinueStmt:
		return nil

	default:
		panic(fmt.Sprintf("Unresolved Statement type: %T", s))
	}
}

func (r *Resolver) resolveClassDecl(s *ClassDecl) error {
	if err := r.declare(s.name); err != nil {
		return err
	}
	r.define(s.name)

	if s.superclass != nil {
		if err := r.resolveExpr(s.superclass); err != nil {
			return err
		}
	}

	enclosingClass := r.currentClass
	r.currentClass = classClass
	defer func() { r.currentClass = enclosingClass }()

	// Synthetic scope injecting this, matching the frame Bind wraps
	// around every method closure.
	r.beginScope()
	defer r.endScope()
	r.innermost()["this"] = true

	for _, method := range s.methods {
		if err := r.resolveFunction(method, funcMethod); err != nil {
			return err
		}
	}

	return nil
}

func (r *Resolver) resolveFunction(fn *FunDecl, funcTyp functionType) error {
	enclosingFunc := r.currentFunc
	r.currentFunc = funcTyp
	defer func() { r.currentFunc = enclosingFunc }()

	r.beginScope()
	defer r.endScope()

	for _, param := range fn.params {
		if err := r.declare(param); err != nil {
			return err
		}
		r.define(param)
	}

	return r.resolveStmts(fn.body)
}

func (r *Resolver) resolveExpr(expr Expr) error {
	switch e := expr.(type) {
	case *Literal:
		return nil

	case *Grouping:
		return r.resolveExpr(e.expression)

	case *Unary:
		return r.resolveExpr(e.rhs)

	case *Binary:
		if err := r.resolveExpr(e.lhs); err != nil {
			return err
		}
		return r.resolveExpr(e.rhs)

	case *Logical:
		if err := r.resolveExpr(e.lhs); err != nil {
			return err
		}
		return r.resolveExpr(e.rhs)

	case *Variable:
		if scope := r.innermost(); scope != nil {
			if defined, ok := scope[e.name.lexeme]; ok && !defined {
				return &ResolverError{
					Kind: ResErrNotInitialized,
					tok:  e.name,
					msg: fmt.Sprintf("Variable %s cannot be read before it is initialized",
						e.name.lexeme),
				}
			}
		}
		r.resolveLocal(e, e.name)
		return nil

	case *ThisExpr:
		if r.currentClass == classNone {
			return &ResolverError{
				Kind: ResErrInvalidThis,
				tok:  e.keyword,
				msg:  fmt.Sprintf("Invalid use of the this keyword in line %d", e.keyword.line),
			}
		}
		r.resolveLocal(e, e.keyword)
		return nil

	case *Assign:
		if err := r.resolveExpr(e.value); err != nil {
			return err
		}
		r.resolveLocal(e, e.name)
		return nil

	case *CallExpr:
		if err := r.resolveExpr(e.callee); err != nil {
			return err
		}
		for _, arg := range e.args {
			if err := r.resolveExpr(arg); err != nil {
				return err
			}
		}
		return nil

	case *GetExpr:
		return r.resolveExpr(e.object)

	case *SetExpr:
		if err := r.resolveExpr(e.object); err != nil {
			return err
		}
		return r.resolveExpr(e.value)

	default:
		panic(fmt.Sprintf("Unresolved Expression type: %T", e))
	}
}
