package main

// Class doubles as the constructor callable: calling the class value
// allocates an instance and runs its init method, if any.
type Class struct {
	Name       string
	Methods    map[string]*Function
	Superclass *Class
}

// FindMethod looks up own methods first, then recurses into the superclass
// chain. Returns nil when no class in the chain defines the name.
func (c *Class) FindMethod(name string) *Function {
	if method, ok := c.Methods[name]; ok {
		return method
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

func (c *Class) Arity() int {
	if initializer := c.FindMethod("init"); initializer != nil {
		return initializer.Arity()
	}
	return 0
}

func (c *Class) String() string {
	return c.Name
}
