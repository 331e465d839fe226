package main

import (
	"fmt"
	"io"
	"os"
)

type RuntimeErrorKind byte

const (
	ErrWrongUnaryOperands RuntimeErrorKind = iota
	ErrWrongBinaryOperands
	ErrDivisionByZero
	ErrUndefinedVariable
	ErrNotACallable
	ErrWrongArity
	ErrNotAProperty
	ErrInvalidInstance
	ErrNotAClass
	ErrNotInLoop
	ErrNative
)

// RuntimeError is any fault raised during execution. It always carries the
// offending token so the report can name a source line.
type RuntimeError struct {
	Kind  RuntimeErrorKind
	tok   Token
	msg   string
	cause error // ErrNative only

	// ErrWrongArity only
	WantArity, GotArity int
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.msg, e.tok.line)
}

func (e *RuntimeError) Unwrap() error {
	return e.cause
}

func newWrongUnaryOperandsError(op Token, value any) *RuntimeError {
	return &RuntimeError{
		Kind: ErrWrongUnaryOperands,
		tok:  op,
		msg: fmt.Sprintf("The unary operation %s is not valid over operand %s",
			op.typ, Stringify(value)),
	}
}

func newWrongBinaryOperandsError(lhs any, op Token, rhs any) *RuntimeError {
	return &RuntimeError{
		Kind: ErrWrongBinaryOperands,
		tok:  op,
		msg: fmt.Sprintf("Operation of type %s cannot be applied over operands %s and %s",
			op.typ, Stringify(lhs), Stringify(rhs)),
	}
}

func newDivisionByZeroError(op Token) *RuntimeError {
	return &RuntimeError{Kind: ErrDivisionByZero, tok: op, msg: "Division by zero"}
}

func newUndefinedVariableError(name Token) *RuntimeError {
	return &RuntimeError{
		Kind: ErrUndefinedVariable,
		tok:  name,
		msg:  fmt.Sprintf("Variable %s is undefined", name.lexeme),
	}
}

func newNotACallableError(paren Token) *RuntimeError {
	return &RuntimeError{
		Kind: ErrNotACallable,
		tok:  paren,
		msg: fmt.Sprintf("Value %s at line %d is not a callable",
			paren.lexeme, paren.line),
	}
}

func newWrongArityError(paren Token, want, got int) *RuntimeError {
	return &RuntimeError{
		Kind: ErrWrongArity,
		tok:  paren,
		msg: fmt.Sprintf("Function %s called with %d arguments, but required %d",
			paren.lexeme, got, want),
		WantArity: want,
		GotArity:  got,
	}
}

func newNotAPropertyError(name Token, className string) *RuntimeError {
	return &RuntimeError{
		Kind: ErrNotAProperty,
		tok:  name,
		msg: fmt.Sprintf("Property %s is not defined for class %s",
			name.lexeme, className),
	}
}

func newInvalidInstanceError(name Token, value any) *RuntimeError {
	return &RuntimeError{
		Kind: ErrInvalidInstance,
		tok:  name,
		msg:  fmt.Sprintf("Value %s is not an instance", Stringify(value)),
	}
}

func newNotAClassError(name Token) *RuntimeError {
	return &RuntimeError{
		Kind: ErrNotAClass,
		tok:  name,
		msg:  "Superclass must be a class",
	}
}

func newNotInLoopError(keyword Token) *RuntimeError {
	return &RuntimeError{
		Kind: ErrNotInLoop,
		tok:  keyword,
		msg:  fmt.Sprintf("Used %s statement outside a loop", keyword.lexeme),
	}
}

func newNativeError(paren Token, cause error) *RuntimeError {
	return &RuntimeError{
		Kind:  ErrNative,
		tok:   paren,
		msg:   fmt.Sprintf("Native Error - %s", cause),
		cause: cause,
	}
}

// Interpreter executes resolved statements. env always points at the frame
// for the innermost scope being executed; globals is the root of every
// chain and the home of the native functions.
type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  map[Expr]int
	stdout  io.Writer
}

func NewInterpreter() *Interpreter {
	globals := NewEnvironment(nil)
	for _, native := range nativeFunctions() {
		globals.Define(native.name, native)
	}

	return &Interpreter{
		globals: globals,
		env:     globals,
		locals:  make(map[Expr]int),
		stdout:  os.Stdout,
	}
}

// Resolve records the scope distance for one variable or assignment
// expression. The resolver feeds its whole table through here before
// execution starts.
func (i *Interpreter) Resolve(expr Expr, depth int) {
	i.locals[expr] = depth
}

// Interpret runs a program, stopping at the first uncaught runtime fault.
func (i *Interpreter) Interpret(stmts []Stmt) error {
	for _, stmt := range stmts {
		if _, err := i.execute(stmt, false); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) execute(stmt Stmt, insideLoop bool) (ControlFlow, error) {
	switch s := stmt.(type) {
	case *ExprStmt:
		_, err := i.evaluate(s.expr)
		return normalFlow(), err

	case *PrintStmt:
		value, err := i.evaluate(s.expr)
		if err != nil {
			return normalFlow(), err
		}
		fmt.Fprintln(i.stdout, Stringify(value))
		return normalFlow(), nil

	case *VarDecl:
		var value any
		if s.initializer != nil {
			var err error
			value, err = i.evaluate(s.initializer)
			if err != nil {
				return normalFlow(), err
			}
		}
		i.env.Define(s.name.lexeme, value)
		return normalFlow(), nil

	case *FunDecl:
		i.env.Define(s.name.lexeme, &Function{s, i.env, false})
		return normalFlow(), nil

	case *ClassDecl:
		return normalFlow(), i.executeClassDecl(s)

	case *Block:
		return i.executeBlock(s.stmts, NewEnvironment(i.env), insideLoop)

	case *IfStmt:
		condition, err := i.evaluate(s.condition)
		if err != nil {
			return normalFlow(), err
		}
		if isTruthy(condition) {
			return i.execute(s.thenBranch, insideLoop)
		}
		if s.elseBranch != nil {
			return i.execute(s.elseBranch, insideLoop)
		}
		return normalFlow(), nil

	case *WhileStmt:
		return i.executeWhile(s)

	case *ForStmt:
		return i.executeFor(s)

	case *ReturnStmt:
		var value any
		if s.value != nil {
			var err error
			value, err = i.evaluate(s.value)
			if err != nil {
				return normalFlow(), err
			}
		}
		return returnFlow(value), nil

	case *BreakStmt:
		if !insideLoop {
			return normalFlow(), newNotInLoopError(s.keyword)
		}
		return breakFlow(), nil

	case *ContinueStmt:
		if !insideLoop {
			return normalFlow(), newNotInLoopError(s.keyword)
		}
		return continueFlow(), nil

	default:
		panic(fmt.Sprintf("Unimplemented Statement type: %T", s))
	}
}

func (i *Interpreter) executeBlock(stmts []Stmt, env *Environment, insideLoop bool) (ControlFlow, error) {
	prevEnv := i.env
	i.env = env
	defer func() { i.env = prevEnv }()

	for _, stmt := range stmts {
		flow, err := i.execute(stmt, insideLoop)
		if err != nil {
			return normalFlow(), err
		}
		if flow.kind != flowNormal {
			return flow, nil
		}
	}

	return normalFlow(), nil
}

func (i *Interpreter) executeWhile(s *WhileStmt) (ControlFlow, error) {
	for {
		condition, err := i.evaluate(s.condition)
		if err != nil {
			return normalFlow(), err
		}
		if !isTruthy(condition) {
			return normalFlow(), nil
		}

		flow, err := i.execute(s.body, true)
		if err != nil {
			return normalFlow(), err
		}
		switch flow.kind {
		case flowBreak:
			return normalFlow(), nil
		case flowReturn:
			return flow, nil
		}
		// flowContinue and flowNormal both just re-test the condition
	}
}

func (i *Interpreter) executeFor(s *ForStmt) (ControlFlow, error) {
	// The initializer gets its own scope; the resolver pushes a matching one.
	prevEnv := i.env
	i.env = NewEnvironment(prevEnv)
	defer func() { i.env = prevEnv }()

	if s.initializer != nil {
		if _, err := i.execute(s.initializer, false); err != nil {
			return normalFlow(), err
		}
	}

	for {
		if s.condition != nil {
			condition, err := i.evaluate(s.condition)
			if err != nil {
				return normalFlow(), err
			}
			if !isTruthy(condition) {
				return normalFlow(), nil
			}
		}

		flow, err := i.execute(s.body, true)
		if err != nil {
			return normalFlow(), err
		}
		switch flow.kind {
		case flowBreak:
			return normalFlow(), nil
		case flowReturn:
			return flow, nil
		}

		// A continue skips the rest of the body but the increment still
		// runs before the condition is re-tested.
		if s.increment != nil {
			if _, err := i.evaluate(s.increment); err != nil {
				return normalFlow(), err
			}
		}
	}
}

func (i *Interpreter) executeClassDecl(s *ClassDecl) error {
	var superclass *Class
	if s.superclass != nil {
		value, err := i.evaluate(s.superclass)
		if err != nil {
			return err
		}
		var ok bool
		if superclass, ok = value.(*Class); !ok {
			return newNotAClassError(s.superclass.name)
		}
	}

	// Two-step define-then-assign so the methods' closures see the class
	// name already bound when they are created.
	i.env.Define(s.name.lexeme, nil)

	methods := make(map[string]*Function, len(s.methods))
	for _, method := range s.methods {
		methods[method.name.lexeme] = &Function{
			decl:          method,
			closure:       i.env,
			isInitializer: method.name.lexeme == "init",
		}
	}

	class := &Class{s.name.lexeme, methods, superclass}
	i.env.AssignAt(s.name.lexeme, class, 0)

	return nil
}

func (i *Interpreter) evaluate(expr Expr) (any, error) {
	switch e := expr.(type) {
	case *Literal:
		return e.value, nil

	case *Grouping:
		return i.evaluate(e.expression)

	case *Unary:
		return i.evaluateUnary(e)

	case *Binary:
		return i.evaluateBinary(e)

	case *Logical:
		lhs, err := i.evaluate(e.lhs)
		if err != nil {
			return nil, err
		}
		// Short circuit: when the lhs decides, return it as-is. Otherwise
		// the rhs value is returned verbatim, never coerced to a boolean.
		if e.op.typ == OR {
			if isTruthy(lhs) {
				return lhs, nil
			}
		} else if !isTruthy(lhs) {
			return lhs, nil
		}
		return i.evaluate(e.rhs)

	case *Variable:
		return i.lookupVariable(e.name, e)

	case *ThisExpr:
		return i.lookupVariable(e.keyword, e)

	case *Assign:
		return i.evaluateAssign(e)

	case *CallExpr:
		return i.evaluateCall(e)

	case *GetExpr:
		object, err := i.evaluate(e.object)
		if err != nil {
			return nil, err
		}
		instance, ok := object.(*Instance)
		if !ok {
			return nil, newInvalidInstanceError(e.name, object)
		}
		return instance.Get(e.name)

	case *SetExpr:
		object, err := i.evaluate(e.object)
		if err != nil {
			return nil, err
		}
		instance, ok := object.(*Instance)
		if !ok {
			return nil, newInvalidInstanceError(e.name, object)
		}
		value, err := i.evaluate(e.value)
		if err != nil {
			return nil, err
		}
		instance.Set(e.name, value)
		return value, nil

	default:
		panic(fmt.Sprintf("Unimplemented Expression type: %T", e))
	}
}

// lookupVariable uses the resolved distance when the resolver recorded one;
// everything else is a global, read by name from the root frame.
func (i *Interpreter) lookupVariable(name Token, expr Expr) (any, error) {
	if distance, ok := i.locals[expr]; ok {
		value, ok := i.env.GetAt(name.lexeme, distance)
		if !ok {
			return nil, newUndefinedVariableError(name)
		}
		return value, nil
	}

	value, ok := i.globals.Get(name.lexeme)
	if !ok {
		return nil, newUndefinedVariableError(name)
	}
	return value, nil
}

func (i *Interpreter) evaluateAssign(e *Assign) (any, error) {
	value, err := i.evaluate(e.value)
	if err != nil {
		return nil, err
	}

	if distance, ok := i.locals[e]; ok {
		if !i.env.AssignAt(e.name.lexeme, value, distance) {
			return nil, newUndefinedVariableError(e.name)
		}
		return value, nil
	}

	if !i.globals.AssignAt(e.name.lexeme, value, 0) {
		return nil, newUndefinedVariableError(e.name)
	}
	return value, nil
}

func (i *Interpreter) evaluateCall(e *CallExpr) (any, error) {
	callee, err := i.evaluate(e.callee)
	if err != nil {
		return nil, err
	}

	args := make([]any, 0, len(e.args))
	for _, arg := range e.args {
		value, err := i.evaluate(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
	}

	return i.call(callee, args, e.paren)
}

// call dispatches over the closed Callable set. Arity is checked before
// any variant is invoked.
func (i *Interpreter) call(callee any, args []any, paren Token) (any, error) {
	callable, ok := callee.(Callable)
	if !ok {
		return nil, newNotACallableError(paren)
	}

	if callable.Arity() != len(args) {
		return nil, newWrongArityError(paren, callable.Arity(), len(args))
	}

	switch fn := callable.(type) {
	case *NativeFunction:
		result, err := fn.fn(args)
		if err != nil {
			// Native failures never escape raw; they become runtime
			// errors tied to the call site.
			return nil, newNativeError(paren, err)
		}
		return result, nil

	case *Function:
		return i.callFunction(fn, args)

	case *Class:
		instance := NewInstance(fn)
		if initializer := fn.FindMethod("init"); initializer != nil {
			// Run init for its side effects only; construction always
			// yields the instance.
			if _, err := i.callFunction(initializer.Bind(instance), args); err != nil {
				return nil, err
			}
		}
		return instance, nil

	default:
		return nil, newNotACallableError(paren)
	}
}

func (i *Interpreter) callFunction(fn *Function, args []any) (any, error) {
	env := NewEnvironment(fn.closure)
	for idx, param := range fn.decl.params {
		env.Define(param.lexeme, args[idx])
	}

	flow, err := i.executeBlock(fn.decl.body, env, false)
	if err != nil {
		return nil, err
	}

	// A bound initializer always yields this, whatever its body returned.
	if fn.isInitializer {
		this, _ := fn.closure.GetAt("this", 0)
		return this, nil
	}

	if flow.kind == flowReturn {
		return flow.returnValue, nil
	}
	return nil, nil
}

func (i *Interpreter) evaluateUnary(e *Unary) (any, error) {
	rhs, err := i.evaluate(e.rhs)
	if err != nil {
		return nil, err
	}

	switch e.op.typ {
	case MINUS:
		if num, ok := rhs.(float64); ok {
			return -num, nil
		}
	case BANG:
		switch v := rhs.(type) {
		case bool:
			return !v, nil
		case nil:
			return true, nil
		case float64:
			// Zero is falsy, every other number is truthy
			return v == 0, nil
		}
	}

	return nil, newWrongUnaryOperandsError(e.op, rhs)
}

func (i *Interpreter) evaluateBinary(e *Binary) (any, error) {
	lhs, err := i.evaluate(e.lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := i.evaluate(e.rhs)
	if err != nil {
		return nil, err
	}

	if a, ok := lhs.(float64); ok {
		if b, ok := rhs.(float64); ok {
			switch e.op.typ {
			case PLUS:
				return a + b, nil
			case MINUS:
				return a - b, nil
			case STAR:
				return a * b, nil
			case SLASH:
				if b == 0 {
					return nil, newDivisionByZeroError(e.op)
				}
				return a / b, nil
			case EQUAL_EQUAL:
				// IEEE-754: NaN is never equal to itself
				return a == b, nil
			case LESS:
				return a < b, nil
			case LESS_EQUAL:
				return a <= b, nil
			case GREATER:
				return a > b, nil
			case GREATER_EQUAL:
				return a >= b, nil
			}
		}
	}

	if s1, ok := lhs.(string); ok && e.op.typ == PLUS {
		if s2, ok := rhs.(string); ok {
			return s1 + s2, nil
		}
		// A string lhs concatenates the display form of anything
		return s1 + Stringify(rhs), nil
	}

	return nil, newWrongBinaryOperandsError(lhs, e.op, rhs)
}
