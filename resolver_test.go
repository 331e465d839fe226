package main

import (
	"errors"
	"testing"
)

func parseSource(t *testing.T, src string) []Stmt {
	t.Helper()

	tokenizer := new(Tokenizer)
	tokenizer.Init(src)
	tokens, scanErrs := tokenizer.Tokenize()
	if len(scanErrs) > 0 {
		t.Fatalf("scan errors: %v", scanErrs)
	}

	stmts, parseErrs := NewParser(tokens).Parse()
	if len(parseErrs) > 0 {
		t.Fatalf("parse errors: %v", parseErrs)
	}
	return stmts
}

func resolveSource(t *testing.T, src string) (map[Expr]int, error) {
	t.Helper()
	return NewResolver().Resolve(parseSource(t, src))
}

func wantResolverError(t *testing.T, src string, kind ResolverErrorKind) {
	t.Helper()
	_, err := resolveSource(t, src)
	if err == nil {
		t.Fatalf("expected resolver error, got none\nsource:\n%s", src)
	}
	var resErr *ResolverError
	if !errors.As(err, &resErr) {
		t.Fatalf("expected *ResolverError, got %T: %v", err, err)
	}
	if resErr.Kind != kind {
		t.Fatalf("wrong error kind: got %d want %d (%v)", resErr.Kind, kind, resErr)
	}
}

func TestSelfReferentialInitializer(t *testing.T) {
	wantResolverError(t, `
{
	var a = a;
}
`, ResErrNotInitialized)
}

func TestSelfReferenceWithOuterShadow(t *testing.T) {
	// Even with a legal outer binding, the inner initializer may not read
	// the name it is introducing.
	wantResolverError(t, `
var a = 1;
{
	var a = a;
}
`, ResErrNotInitialized)
}

func TestDuplicateDeclarationInSameScope(t *testing.T) {
	wantResolverError(t, `
{
	var a = 1;
	var a = 2;
}
`, ResErrVariableAlreadyExists)
}

func TestDuplicateParameter(t *testing.T) {
	wantResolverError(t, `fun f(a, a) {}`, ResErrVariableAlreadyExists)
}

func TestShadowingAtDifferentDepthsIsLegal(t *testing.T) {
	if _, err := resolveSource(t, `
var a = 1;
{
	var a = 2;
	{
		var a = 3;
	}
}
`); err != nil {
		t.Fatalf("shadowing should resolve cleanly: %v", err)
	}
}

func TestReturnAtTopLevel(t *testing.T) {
	wantResolverError(t, `return 1;`, ResErrReturnNotInFunction)
}

func TestReturnInsideFunctionIsLegal(t *testing.T) {
	if _, err := resolveSource(t, `
fun f() { return 1; }
`); err != nil {
		t.Fatalf("return inside function should resolve: %v", err)
	}
}

func TestReturnContextRestoredAfterNestedFunction(t *testing.T) {
	// The inner function must not leave the resolver thinking it is still
	// (or no longer) inside a function.
	if _, err := resolveSource(t, `
fun outer() {
	fun inner() { return 1; }
	return inner;
}
`); err != nil {
		t.Fatalf("nested returns should resolve: %v", err)
	}
}

func TestThisOutsideClass(t *testing.T) {
	wantResolverError(t, `print this;`, ResErrInvalidThis)
	wantResolverError(t, `
fun f() { print this; }
`, ResErrInvalidThis)
}

func TestThisInsideMethodIsLegal(t *testing.T) {
	if _, err := resolveSource(t, `
class C {
	m() { return this; }
}
`); err != nil {
		t.Fatalf("this inside method should resolve: %v", err)
	}
}

func TestClassContextRestoredAfterClassBody(t *testing.T) {
	wantResolverError(t, `
class C {
	m() {}
}
print this;
`, ResErrInvalidThis)
}

func TestReturnLegalInMethods(t *testing.T) {
	if _, err := resolveSource(t, `
class C {
	init(x) {
		this.x = x;
		return 99;
	}
}
`); err != nil {
		t.Fatalf("return inside init should resolve: %v", err)
	}
}

func TestBreakContinueNotResolverChecked(t *testing.T) {
	// Loop placement is a runtime concern; the resolver passes these
	// through untouched.
	if _, err := resolveSource(t, `break;`); err != nil {
		t.Fatalf("break should not be a resolver error: %v", err)
	}
	if _, err := resolveSource(t, `continue;`); err != nil {
		t.Fatalf("continue should not be a resolver error: %v", err)
	}
}

func TestGlobalsAreNotRecorded(t *testing.T) {
	locals, err := resolveSource(t, `
var a = 1;
print a;
a = 2;
`)
	if err != nil {
		t.Fatal(err)
	}
	if len(locals) != 0 {
		t.Fatalf("globals should get no distance records, got %d", len(locals))
	}
}

func TestDistancesCountEnclosingScopes(t *testing.T) {
	// One block scope between the read and its declaration: distance 1.
	// The read in the same block: distance 0.
	locals, err := resolveSource(t, `
{
	var a = 1;
	print a;
	{
		print a;
	}
}
`)
	if err != nil {
		t.Fatal(err)
	}

	var got []int
	for _, depth := range locals {
		got = append(got, depth)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 records, got %d", len(got))
	}
	if !(got[0] == 0 && got[1] == 1 || got[0] == 1 && got[1] == 0) {
		t.Fatalf("want distances {0, 1}, got %v", got)
	}
}

func TestFunctionParametersResolveAtDepthZero(t *testing.T) {
	locals, err := resolveSource(t, `
fun id(x) { return x; }
`)
	if err != nil {
		t.Fatal(err)
	}
	if len(locals) != 1 {
		t.Fatalf("want 1 record, got %d", len(locals))
	}
	for _, depth := range locals {
		if depth != 0 {
			t.Fatalf("parameter read should be depth 0, got %d", depth)
		}
	}
}

func TestThisResolvesThroughSyntheticScope(t *testing.T) {
	// Inside a method body, this sits one scope outside the parameters.
	locals, err := resolveSource(t, `
class C {
	m() { return this; }
}
`)
	if err != nil {
		t.Fatal(err)
	}
	if len(locals) != 1 {
		t.Fatalf("want 1 record, got %d", len(locals))
	}
	for expr, depth := range locals {
		if _, ok := expr.(*ThisExpr); !ok {
			t.Fatalf("expected the this expression, got %T", expr)
		}
		if depth != 1 {
			t.Fatalf("this should resolve at depth 1, got %d", depth)
		}
	}
}
