package main

// Function is a user-declared function or method: its declaration plus the
// environment chain that was active at the declaration site. The closure is
// held by pointer, so later definitions in that frame are visible to the
// function body.
type Function struct {
	decl          *FunDecl
	closure       *Environment
	isInitializer bool
}

func (f *Function) Arity() int {
	return len(f.decl.params)
}

func (f *Function) String() string {
	return "<fn " + f.decl.name.lexeme + ">"
}

// Bind wraps the function's closure in a fresh one-entry frame mapping
// "this" to the given instance. The frame is created per bind, never
// cached, so two instances of one class can't share a this binding.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return &Function{f.decl, env, f.isInitializer}
}
