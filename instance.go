package main

// Instance holds a reference to its class (shared, never mutated after
// construction) and its own mutable field map, populated lazily by set.
type Instance struct {
	class  *Class
	fields map[string]any
}

func NewInstance(class *Class) *Instance {
	return &Instance{class, make(map[string]any)}
}

// Get reads a property: own fields shadow class methods. A method hit is
// bound to this instance freshly on every access.
func (i *Instance) Get(name Token) (any, error) {
	if value, ok := i.fields[name.lexeme]; ok {
		return value, nil
	}

	if method := i.class.FindMethod(name.lexeme); method != nil {
		return method.Bind(i), nil
	}

	return nil, newNotAPropertyError(name, i.class.Name)
}

// Set always writes into the field map, even when a method of the same
// name exists. The method table itself is never writable.
func (i *Instance) Set(name Token, value any) {
	i.fields[name.lexeme] = value
}

func (i *Instance) String() string {
	return "instanceof(" + i.class.Name + ")"
}
