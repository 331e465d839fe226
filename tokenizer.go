package main

import "strconv"

var keywords = map[string]TokenType{
	"and":      AND,
	"break":    BREAK,
	"class":    CLASS,
	"continue": CONTINUE,
	"else":     ELSE,
	"false":    FALSE,
	"for":      FOR,
	"fun":      FUN,
	"if":       IF,
	"nil":      NIL,
	"or":       OR,
	"print":    PRINT,
	"return":   RETURN,
	"super":    SUPER,
	"this":     THIS,
	"true":     TRUE,
	"var":      VAR,
	"while":    WHILE,
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

type ScanError struct {
	line    int
	message string
}

func (e *ScanError) Error() string {
	return "[line " + strconv.Itoa(e.line) + "] Error: " + e.message
}

type Tokenizer struct {
	source string
	tokens []Token

	start   int
	current int
	line    int
}

func (t *Tokenizer) Init(source string) {
	t.source = source
	t.tokens = make([]Token, 0)

	t.start = 0
	t.current = 0
	t.line = 1
}

func (t *Tokenizer) Tokenize() ([]Token, []error) {
	errs := make([]error, 0)
	srcLen := len(t.source)
	for t.current < srcLen {
		t.start = t.current
		err := t.scanToken()
		if err != nil {
			errs = append(errs, err)
		}
	}
	t.tokens = append(t.tokens, Token{EOF, "", nil, t.line})
	return t.tokens, errs
}

func (t *Tokenizer) scanToken() error {
	c := t.source[t.current]
	t.current++
	switch c {
	case ' ', '\r', '\t':
		; // pass
	case '\n':
		t.line++
	case '(':
		t.addToken(LEFT_PAREN, nil)
	case ')':
		t.addToken(RIGHT_PAREN, nil)
	case '{':
		t.addToken(LEFT_BRACE, nil)
	case '}':
		t.addToken(RIGHT_BRACE, nil)
	case ',':
		t.addToken(COMMA, nil)
	case '.':
		t.addToken(DOT, nil)
	case '-':
		t.addToken(MINUS, nil)
	case '+':
		t.addToken(PLUS, nil)
	case ';':
		t.addToken(SEMICOLON, nil)
	case '*':
		t.addToken(STAR, nil)
	case '/':
		if t.match('/') {
			// Line comment, no token
			for t.current < len(t.source) && t.peekChar() != '\n' {
				t.current++
			}
		} else {
			t.addToken(SLASH, nil)
		}
	case '!':
		if t.match('=') {
			t.addToken(BANG_EQUAL, nil)
		} else {
			t.addToken(BANG, nil)
		}
	case '=':
		if t.match('=') {
			t.addToken(EQUAL_EQUAL, nil)
		} else {
			t.addToken(EQUAL, nil)
		}
	case '<':
		if t.match('=') {
			t.addToken(LESS_EQUAL, nil)
		} else {
			t.addToken(LESS, nil)
		}
	case '>':
		if t.match('=') {
			t.addToken(GREATER_EQUAL, nil)
		} else {
			t.addToken(GREATER, nil)
		}
	case '"':
		return t.scanString()
	default:
		switch {
		case isDigit(c):
			return t.scanNumber()
		case isAlpha(c):
			t.scanIdentifierOrKeyword()
		default:
			return &ScanError{t.line, "Unexpected character."}
		}
	}
	return nil
}

func (t *Tokenizer) addToken(typ TokenType, literal any) {
	text := t.source[t.start:t.current]
	t.tokens = append(
		t.tokens,
		Token{
			typ:     typ,
			lexeme:  text,
			literal: literal,
			line:    t.line,
		},
	)
}

func (t *Tokenizer) match(expected byte) bool {
	if t.current >= len(t.source) {
		return false
	}
	if t.source[t.current] != expected {
		return false
	}
	t.current++
	return true
}

func (t *Tokenizer) peekChar() byte {
	if t.current >= len(t.source) {
		return 0
	}
	return t.source[t.current]
}

func (t *Tokenizer) peekNextChar() byte {
	if t.current+1 >= len(t.source) {
		return 0
	}
	return t.source[t.current+1]
}

func (t *Tokenizer) scanString() error {
	for t.current < len(t.source) && t.peekChar() != '"' {
		if t.peekChar() == '\n' {
			t.line++
		}
		t.current++
	}

	if t.current >= len(t.source) {
		return &ScanError{t.line, "Unterminated string."}
	}

	// Consume closing quote
	t.current++

	str := t.source[t.start+1 : t.current-1] // trim the surrounding ""
	t.addToken(STRING, str)

	return nil
}

func (t *Tokenizer) scanNumber() error {
	for isDigit(t.peekChar()) {
		t.current++
	}
	if t.peekChar() == '.' && isDigit(t.peekNextChar()) {
		t.current++ // consume the .
		for isDigit(t.peekChar()) {
			t.current++
		}
	}

	numStr := t.source[t.start:t.current]
	number, err := strconv.ParseFloat(numStr, 64)
	if err != nil {
		return &ScanError{t.line, "Invalid number."}
	}
	t.addToken(NUMBER, number)

	return nil
}

func (t *Tokenizer) scanIdentifierOrKeyword() {
	for isAlphaNumeric(t.peekChar()) {
		t.current++
	}
	text := t.source[t.start:t.current]
	typ, ok := keywords[text]
	if !ok {
		typ = IDENTIFIER
	}
	t.addToken(typ, nil)
}
