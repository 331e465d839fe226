package main

// Environment is one lexical scope: a frame of name→value bindings plus a
// link to the frame it was created inside. Frames are shared by pointer:
// the call stack, any closure captured in it, and any bound method may all
// hold the same frame, and a Define through one holder is visible to all.
type Environment struct {
	enclosing *Environment
	values    map[string]any
}

func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{enclosing, make(map[string]any)}
}

// Define inserts or overwrites unconditionally. Redefining a name in the
// same frame is legal (e.g. re-running `var x = ...;` on a REPL line).
func (e *Environment) Define(name string, value any) {
	e.values[name] = value
}

// Get walks outward through the chain. Only used for names the resolver
// left unrecorded, i.e. globals.
func (e *Environment) Get(name string) (any, bool) {
	for env := e; env != nil; env = env.enclosing {
		if val, ok := env.values[name]; ok {
			return val, true
		}
	}
	return nil, false
}

// GetAt reads name after walking exactly distance enclosing links.
// Distance 0 is this frame. A distance that overruns the chain reports a
// miss; a correct resolver never produces one.
func (e *Environment) GetAt(name string, distance int) (any, bool) {
	env := e.ancestor(distance)
	if env == nil {
		return nil, false
	}
	val, ok := env.values[name]
	return val, ok
}

// AssignAt overwrites name in the frame distance links away, but only if
// the binding already exists there: assignment never creates a binding.
func (e *Environment) AssignAt(name string, value any, distance int) bool {
	env := e.ancestor(distance)
	if env == nil {
		return false
	}
	if _, ok := env.values[name]; !ok {
		return false
	}
	env.values[name] = value
	return true
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		if env == nil {
			return nil
		}
		env = env.enclosing
	}
	return env
}
