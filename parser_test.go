package main

import (
	"strings"
	"testing"
)

func parseWithErrors(t *testing.T, src string) ([]Stmt, []error) {
	t.Helper()

	tokenizer := new(Tokenizer)
	tokenizer.Init(src)
	tokens, scanErrs := tokenizer.Tokenize()
	if len(scanErrs) > 0 {
		t.Fatalf("scan errors: %v", scanErrs)
	}

	return NewParser(tokens).Parse()
}

// wantExprForm parses a single expression statement and checks the printed
// tree, which encodes grouping and therefore precedence.
func wantExprForm(t *testing.T, src, want string) {
	t.Helper()
	stmts := parseSource(t, src)
	if len(stmts) != 1 {
		t.Fatalf("want 1 statement, got %d", len(stmts))
	}
	if got := stmts[0].String(); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestPrecedence(t *testing.T) {
	wantExprForm(t, "1 + 2 * 3;", "(+ 1 (* 2 3));")
	wantExprForm(t, "1 * 2 + 3;", "(+ (* 1 2) 3);")
	wantExprForm(t, "-1 - 2;", "(- (- 1) 2);")
	wantExprForm(t, "!true == false;", "(== (! true) false);")
	wantExprForm(t, "1 < 2 == true;", "(== (< 1 2) true);")
	wantExprForm(t, "(1 + 2) * 3;", "(* (group (+ 1 2)) 3);")
}

func TestLogicalBindsLooserThanEquality(t *testing.T) {
	wantExprForm(t, "a or b and c;", "(or (a) (and (b) (c)));")
	wantExprForm(t, "a == b or c;", "(or (== (a) (b)) (c));")
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	wantExprForm(t, "a = b = 1;", "(assign a (assign b 1));")
}

func TestPropertyAndCallChains(t *testing.T) {
	wantExprForm(t, "a.b(1).c;", "(get c (call (get b (a)) 1));")
	wantExprForm(t, "f()();", "(call (call (f)));")
	wantExprForm(t, "a.b = 1;", "(set b (a) 1);")
}

func TestInvalidAssignmentTarget(t *testing.T) {
	for _, src := range []string{"1 = 2;", "a + b = c;", "f() = 1;"} {
		_, errs := parseWithErrors(t, src)
		if len(errs) != 1 {
			t.Fatalf("%s: want 1 error, got %v", src, errs)
		}
		if !strings.Contains(errs[0].Error(), "Invalid assignment target.") {
			t.Fatalf("%s: wrong error: %v", src, errs[0])
		}
	}
}

func TestErrorAtEndMentionsEnd(t *testing.T) {
	_, errs := parseWithErrors(t, "print 1")
	if len(errs) != 1 {
		t.Fatalf("want 1 error, got %v", errs)
	}
	if !strings.Contains(errs[0].Error(), "Error at end:") {
		t.Fatalf("wrong error: %v", errs[0])
	}
}

func TestSynchronizationAfterBadStatement(t *testing.T) {
	// The first declaration is broken; the parser must recover and still
	// deliver the two statements that follow.
	stmts, errs := parseWithErrors(t, `
var = 1;
var b = 2;
print b;
`)
	if len(errs) != 1 {
		t.Fatalf("want 1 error, got %v", errs)
	}
	if len(stmts) != 2 {
		t.Fatalf("want 2 recovered statements, got %d", len(stmts))
	}
}

func TestForClauseVariants(t *testing.T) {
	stmts := parseSource(t, "for (;;) break;")
	forStmt, ok := stmts[0].(*ForStmt)
	if !ok {
		t.Fatalf("want *ForStmt, got %T", stmts[0])
	}
	if forStmt.initializer != nil || forStmt.condition != nil || forStmt.increment != nil {
		t.Fatal("all three clauses should be absent")
	}

	stmts = parseSource(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	forStmt = stmts[0].(*ForStmt)
	if forStmt.initializer == nil || forStmt.condition == nil || forStmt.increment == nil {
		t.Fatal("all three clauses should be present")
	}
	if _, ok := forStmt.initializer.(*VarDecl); !ok {
		t.Fatalf("initializer should be a var declaration, got %T", forStmt.initializer)
	}
}

func TestClassDeclarations(t *testing.T) {
	stmts := parseSource(t, "class A { m() {} n(x, y) {} }")
	class, ok := stmts[0].(*ClassDecl)
	if !ok {
		t.Fatalf("want *ClassDecl, got %T", stmts[0])
	}
	if class.superclass != nil {
		t.Fatal("A should have no superclass")
	}
	if len(class.methods) != 2 || len(class.methods[1].params) != 2 {
		t.Fatalf("methods parsed wrong: %v", class.methods)
	}

	stmts = parseSource(t, "class B < A {}")
	class = stmts[0].(*ClassDecl)
	if class.superclass == nil || class.superclass.name.lexeme != "A" {
		t.Fatalf("superclass clause parsed wrong: %v", class)
	}
	if got := class.String(); got != "class B < A" {
		t.Fatalf("got %s", got)
	}
}

func TestBreakAndContinueNeedSemicolons(t *testing.T) {
	_, errs := parseWithErrors(t, "break")
	if len(errs) != 1 {
		t.Fatalf("break without ';' should fail: %v", errs)
	}
	_, errs = parseWithErrors(t, "continue")
	if len(errs) != 1 {
		t.Fatalf("continue without ';' should fail: %v", errs)
	}
}

func TestReturnWithAndWithoutValue(t *testing.T) {
	stmts := parseSource(t, "fun f() { return; return 1; }")
	body := stmts[0].(*FunDecl).body
	if body[0].(*ReturnStmt).value != nil {
		t.Fatal("bare return should carry no value")
	}
	if body[1].(*ReturnStmt).value == nil {
		t.Fatal("return 1 should carry a value")
	}
}

func TestTooManyArguments(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("f(")
	for i := 0; i <= maxCallArgs; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("1")
	}
	sb.WriteString(");")

	_, errs := parseWithErrors(t, sb.String())
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "Can't have more than") {
		t.Fatalf("want argument-count error, got %v", errs)
	}
}
