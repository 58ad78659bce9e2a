package managed

import "slices"

// ObjectClassName is the root of every class hierarchy.
const ObjectClassName = "java/lang/Object"

// FieldDecl declares one typed field of a class.
type FieldDecl struct {
	Name string
	Kind Kind
}

// Class describes a managed class. Classes are created through
// Runtime.DefineClass and never change afterwards.
type Class struct {
	name     string
	super    *Class
	declared []FieldDecl
}

func (c *Class) Name() string { return c.name }

// Super returns the superclass, or nil for the root class.
func (c *Class) Super() *Class { return c.super }

// DeclaredFields returns the fields declared by c itself, in declaration order.
func (c *Class) DeclaredFields() []FieldDecl {
	return slices.Clone(c.declared)
}

// Fields returns every field visible on c, superclass fields first.
func (c *Class) Fields() []FieldDecl {
	var chain []*Class
	for k := c; k != nil; k = k.super {
		chain = append(chain, k)
	}
	var out []FieldDecl
	for i := len(chain) - 1; i >= 0; i-- {
		out = append(out, chain[i].declared...)
	}
	return out
}

// Field looks name up on c and its superclasses.
func (c *Class) Field(name string) (FieldDecl, bool) {
	for k := c; k != nil; k = k.super {
		for _, f := range k.declared {
			if f.Name == name {
				return f, true
			}
		}
	}
	return FieldDecl{}, false
}

// HasField reports whether c or one of its superclasses declares name.
func (c *Class) HasField(name string) bool {
	_, ok := c.Field(name)
	return ok
}

// IsSubclassOf reports whether c is other or extends it.
func (c *Class) IsSubclassOf(other *Class) bool {
	if other == nil {
		return false
	}
	for k := c; k != nil; k = k.super {
		if k == other {
			return true
		}
	}
	return false
}

// sameSchema reports whether c matches a redefinition request.
func (c *Class) sameSchema(super *Class, fields []FieldDecl) bool {
	return c.super == super && slices.Equal(c.declared, fields)
}
