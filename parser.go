package main

import (
	"fmt"
	"slices"
)

const maxCallArgs = 255

type ParseError struct {
	tok Token
	msg string
}

func (e ParseError) Error() string {
	if e.tok.typ == EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", e.tok.line, e.msg)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.tok.line, e.tok.lexeme, e.msg)
}

type Parser struct {
	tokens  []Token
	current int
}

func NewParser(tokens []Token) *Parser {
	return &Parser{tokens, 0}
}

// program ::= declaration* EOF
func (p *Parser) Parse() ([]Stmt, []error) {
	stmts := make([]Stmt, 0)
	errs := make([]error, 0)
	for !p.IsAtEnd() {
		stmt, err := p.parseDeclaration()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts, errs
}

func (p *Parser) IsAtEnd() bool {
	return p.peekToken().typ == EOF
}

// peekToken never mutates the cursor; the bounds guard only matters if a
// caller somehow walks past the trailing EOF token.
func (p *Parser) peekToken() Token {
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) peekIsOneOf(types ...TokenType) bool {
	return slices.Contains(types, p.peekToken().typ)
}

func (p *Parser) advance() Token {
	tok := p.peekToken()
	if tok.typ != EOF {
		p.current++
	}
	return tok
}

func (p *Parser) consumeToken(typ TokenType, message string) Token {
	if tok := p.peekToken(); tok.typ == typ {
		p.current++
		return tok
	} else {
		panic(ParseError{tok, message})
	}
}

func (p *Parser) tryConsume(typ TokenType) bool {
	if p.peekToken().typ == typ {
		p.current++
		return true
	}

	return false
}

func (p *Parser) consumeOneOf(types ...TokenType) (Token, bool) {
	tok := p.peekToken()
	if slices.Contains(types, tok.typ) {
		p.current++
		return tok, true
	}

	return tok, false
}

// Skip forward to the next statement boundary after a parse error, so one
// bad statement doesn't cascade into nonsense reports for the rest.
func (p *Parser) synchronize() {
	for !p.IsAtEnd() {
		if p.advance().typ == SEMICOLON {
			return
		}

		if p.peekIsOneOf(CLASS, FUN, VAR, FOR, IF, WHILE, PRINT, RETURN) {
			return
		}
	}
}

// declaration ::= classDecl | funDecl | varDecl | statement
func (p *Parser) parseDeclaration() (stmt Stmt, err error) {
	defer func() {
		if r := recover(); r != nil {
			parseErr, ok := r.(ParseError)
			if !ok {
				panic(r) // real panic, let it crash
			}
			p.synchronize()
			stmt, err = nil, parseErr
		}
	}()

	switch p.peekToken().typ {
	case CLASS:
		stmt = p.parseClassDecl()
	case FUN:
		stmt = p.parseFunDecl()
	case VAR:
		stmt = p.parseVarDecl()
	default:
		stmt = p.parseStatement()
	}

	return stmt, nil
}

// classDecl ::= "class" IDENTIFIER ( "<" IDENTIFIER )? "{" function* "}"
func (p *Parser) parseClassDecl() Stmt {
	p.consumeToken(CLASS, "Expect 'class'.")
	name := p.consumeToken(IDENTIFIER, "Expect class name.")

	var superclass *Variable
	if p.tryConsume(LESS) {
		superName := p.consumeToken(IDENTIFIER, "Expect superclass name.")
		superclass = &Variable{superName}
	}

	p.consumeToken(LEFT_BRACE, "Expect '{' before class body.")

	methods := make([]*FunDecl, 0)
	for !p.peekIsOneOf(RIGHT_BRACE, EOF) {
		methods = append(methods, p.parseFunction("method"))
	}

	p.consumeToken(RIGHT_BRACE, "Expect '}' after class body.")

	return &ClassDecl{name, superclass, methods}
}

// funDecl ::= "fun" function
func (p *Parser) parseFunDecl() Stmt {
	p.consumeToken(FUN, "Expect 'fun'.")
	return p.parseFunction("function")
}

// function ::= IDENTIFIER "(" parameters? ")" block
func (p *Parser) parseFunction(kind string) *FunDecl {
	name := p.consumeToken(IDENTIFIER, "Expect "+kind+" name.")
	p.consumeToken(LEFT_PAREN, "Expect '(' after "+kind+" name.")

	params := make([]Token, 0)
	if !p.peekIsOneOf(RIGHT_PAREN) {
		for {
			if len(params) >= maxCallArgs {
				panic(ParseError{p.peekToken(),
					fmt.Sprintf("Can't have more than %d parameters.", maxCallArgs)})
			}
			params = append(params,
				p.consumeToken(IDENTIFIER, "Expect parameter name."))
			if !p.tryConsume(COMMA) {
				break
			}
		}
	}
	p.consumeToken(RIGHT_PAREN, "Expect ')' after parameters.")

	p.consumeToken(LEFT_BRACE, "Expect '{' before "+kind+" body.")
	body := p.parseBlockStmts()

	return &FunDecl{name, params, body}
}

// varDecl ::= "var" IDENTIFIER ( "=" expression )? ";"
func (p *Parser) parseVarDecl() Stmt {
	p.consumeToken(VAR, "Expect 'var'.")
	name := p.consumeToken(IDENTIFIER, "Expect variable name.")

	var initializer Expr
	if p.tryConsume(EQUAL) {
		initializer = p.parseExpression()
	}

	p.consumeToken(SEMICOLON, "Expect ';' after variable declaration.")

	return &VarDecl{name, initializer}
}

// statement ::= exprStmt | printStmt | ifStmt | whileStmt | forStmt
//
//	| returnStmt | breakStmt | continueStmt | block
func (p *Parser) parseStatement() Stmt {
	switch p.peekToken().typ {
	case PRINT:
		return p.parsePrintStmt()
	case IF:
		return p.parseIfStmt()
	case WHILE:
		return p.parseWhileStmt()
	case FOR:
		return p.parseForStmt()
	case RETURN:
		return p.parseReturnStmt()
	case BREAK:
		keyword := p.advance()
		p.consumeToken(SEMICOLON, "Expect ';' after 'break'.")
		return &BreakStmt{keyword}
	case CONTINUE:
		keyword := p.advance()
		p.consumeToken(SEMICOLON, "Expect ';' after 'continue'.")
		return &ContinueStmt{keyword}
	case LEFT_BRACE:
		p.advance()
		return &Block{p.parseBlockStmts()}
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseExprStmt() Stmt {
	expr := p.parseExpression()
	p.consumeToken(SEMICOLON, "Expect ';' after expression.")
	return &ExprStmt{expr}
}

// Caller has already consumed the opening brace.
func (p *Parser) parseBlockStmts() []Stmt {
	stmts := make([]Stmt, 0)
	for !p.peekIsOneOf(RIGHT_BRACE, EOF) {
		switch p.peekToken().typ {
		case CLASS:
			stmts = append(stmts, p.parseClassDecl())
		case FUN:
			stmts = append(stmts, p.parseFunDecl())
		case VAR:
			stmts = append(stmts, p.parseVarDecl())
		default:
			stmts = append(stmts, p.parseStatement())
		}
	}
	p.consumeToken(RIGHT_BRACE, "Expect '}' after block.")
	return stmts
}

func (p *Parser) parsePrintStmt() Stmt {
	p.consumeToken(PRINT, "Expect 'print'.")
	expr := p.parseExpression()
	p.consumeToken(SEMICOLON, "Expect ';' after value.")
	return &PrintStmt{expr}
}

func (p *Parser) parseIfStmt() Stmt {
	p.consumeToken(IF, "Expect 'if'.")
	p.consumeToken(LEFT_PAREN, "Expect '(' after 'if'.")
	condition := p.parseExpression()
	p.consumeToken(RIGHT_PAREN, "Expect ')' after if condition.")

	thenBranch := p.parseStatement()
	var elseBranch Stmt
	if p.tryConsume(ELSE) {
		elseBranch = p.parseStatement()
	}

	return &IfStmt{condition, thenBranch, elseBranch}
}

func (p *Parser) parseWhileStmt() Stmt {
	p.consumeToken(WHILE, "Expect 'while'.")
	p.consumeToken(LEFT_PAREN, "Expect '(' after 'while'.")
	condition := p.parseExpression()
	p.consumeToken(RIGHT_PAREN, "Expect ')' after condition.")

	return &WhileStmt{condition, p.parseStatement()}
}

// forStmt ::= "for" "(" ( varDecl | exprStmt | ";" )
//
//	expression? ";" expression? ")" statement
func (p *Parser) parseForStmt() Stmt {
	p.consumeToken(FOR, "Expect 'for'.")
	p.consumeToken(LEFT_PAREN, "Expect '(' after 'for'.")

	var initializer Stmt
	switch p.peekToken().typ {
	case SEMICOLON:
		p.advance()
	case VAR:
		initializer = p.parseVarDecl()
	default:
		initializer = p.parseExprStmt()
	}

	var condition Expr
	if !p.peekIsOneOf(SEMICOLON) {
		condition = p.parseExpression()
	}
	p.consumeToken(SEMICOLON, "Expect ';' after loop condition.")

	var increment Expr
	if !p.peekIsOneOf(RIGHT_PAREN) {
		increment = p.parseExpression()
	}
	p.consumeToken(RIGHT_PAREN, "Expect ')' after for clauses.")

	return &ForStmt{initializer, condition, increment, p.parseStatement()}
}

func (p *Parser) parseReturnStmt() Stmt {
	keyword := p.consumeToken(RETURN, "Expect 'return'.")

	var value Expr
	if !p.peekIsOneOf(SEMICOLON) {
		value = p.parseExpression()
	}
	p.consumeToken(SEMICOLON, "Expect ';' after return value.")

	return &ReturnStmt{keyword, value}
}

// expression ::= assignment
func (p *Parser) parseExpression() Expr {
	return p.parseAssignment()
}

// assignment ::= ( call "." )? IDENTIFIER "=" assignment | logicOr
func (p *Parser) parseAssignment() Expr {
	expr := p.parseLogicalOr()

	if p.tryConsume(EQUAL) {
		equals := p.previous()
		value := p.parseAssignment()

		switch target := expr.(type) {
		case *Variable:
			return &Assign{target.name, value}
		case *GetExpr:
			return &SetExpr{target.object, target.name, value}
		default:
			panic(ParseError{equals, "Invalid assignment target."})
		}
	}

	return expr
}

// logicOr ::= logicAnd ( "or" logicAnd )*
func (p *Parser) parseLogicalOr() Expr {
	expr := p.parseLogicalAnd()

	for p.peekIsOneOf(OR) {
		op := p.advance()
		expr = &Logical{expr, op, p.parseLogicalAnd()}
	}

	return expr
}

// logicAnd ::= equality ( "and" equality )*
func (p *Parser) parseLogicalAnd() Expr {
	expr := p.parseEquality()

	for p.peekIsOneOf(AND) {
		op := p.advance()
		expr = &Logical{expr, op, p.parseEquality()}
	}

	return expr
}

// equality ::= comparison ( ( "==" | "!=" ) comparison )*
func (p *Parser) parseEquality() Expr {
	expr := p.parseComparison()

	for {
		op, ok := p.consumeOneOf(EQUAL_EQUAL, BANG_EQUAL)
		if !ok {
			return expr
		}
		expr = &Binary{expr, op, p.parseComparison()}
	}
}

// comparison ::= term ( ( "<" | "<=" | ">" | ">=" ) term )*
func (p *Parser) parseComparison() Expr {
	expr := p.parseTerm()

	for {
		op, ok := p.consumeOneOf(LESS, LESS_EQUAL, GREATER, GREATER_EQUAL)
		if !ok {
			return expr
		}
		expr = &Binary{expr, op, p.parseTerm()}
	}
}

// term ::= factor ( ( "-" | "+" ) factor )*
func (p *Parser) parseTerm() Expr {
	expr := p.parseFactor()

	for {
		op, ok := p.consumeOneOf(MINUS, PLUS)
		if !ok {
			return expr
		}
		expr = &Binary{expr, op, p.parseFactor()}
	}
}

// factor ::= unary ( ( "/" | "*" ) unary )*
func (p *Parser) parseFactor() Expr {
	expr := p.parseUnary()

	for {
		op, ok := p.consumeOneOf(SLASH, STAR)
		if !ok {
			return expr
		}
		expr = &Binary{expr, op, p.parseUnary()}
	}
}

// unary ::= ( "!" | "-" ) unary | call
func (p *Parser) parseUnary() Expr {
	if op, ok := p.consumeOneOf(BANG, MINUS); ok {
		return &Unary{op, p.parseUnary()}
	}

	return p.parseCall()
}

// call ::= primary ( "(" arguments? ")" | "." IDENTIFIER )*
func (p *Parser) parseCall() Expr {
	expr := p.parsePrimary()

	for {
		switch {
		case p.tryConsume(LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.tryConsume(DOT):
			name := p.consumeToken(IDENTIFIER, "Expect property name after '.'.")
			expr = &GetExpr{expr, name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee Expr) Expr {
	args := make([]Expr, 0)
	if !p.peekIsOneOf(RIGHT_PAREN) {
		for {
			if len(args) >= maxCallArgs {
				panic(ParseError{p.peekToken(),
					fmt.Sprintf("Can't have more than %d arguments.", maxCallArgs)})
			}
			args = append(args, p.parseExpression())
			if !p.tryConsume(COMMA) {
				break
			}
		}
	}
	paren := p.consumeToken(RIGHT_PAREN, "Expect ')' after arguments.")

	return &CallExpr{callee, paren, args}
}

// primary ::= NUMBER | STRING | "true" | "false" | "nil" | "this"
//
//	| IDENTIFIER | "(" expression ")"
func (p *Parser) parsePrimary() Expr {
	tok := p.advance()
	switch tok.typ {
	case NUMBER, STRING:
		return &Literal{tok.literal}
	case TRUE:
		return &Literal{true}
	case FALSE:
		return &Literal{false}
	case NIL:
		return &Literal{nil}
	case THIS:
		return &ThisExpr{tok}
	case IDENTIFIER:
		return &Variable{tok}
	case LEFT_PAREN:
		expr := p.parseExpression()
		p.consumeToken(RIGHT_PAREN, "Expect ')' after expression.")
		return &Grouping{expr}
	default:
		panic(ParseError{tok, "Expect expression."})
	}
}
