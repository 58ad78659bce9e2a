package managed

import (
	"maps"
	"strings"
)

// Object is an instance of a managed class. Every field visible on the class
// holds a value; objects cannot be modified after construction.
type Object struct {
	class  *Class
	fields map[string]Value
}

func (o *Object) Class() *Class { return o.class }

// IsInstanceOf reports whether o's class is c or a subclass of c.
func (o *Object) IsInstanceOf(c *Class) bool {
	return o != nil && o.class.IsSubclassOf(c)
}

// Field returns the raw value of a field without kind checking.
func (o *Object) Field(name string) (Value, bool) {
	v, ok := o.fields[name]
	return v, ok
}

// Fields returns a copy of the field values.
func (o *Object) Fields() map[string]Value {
	return maps.Clone(o.fields)
}

// String renders the object as "class{field=value, ...}" in declaration order.
func (o *Object) String() string {
	if o == nil {
		return "null"
	}
	var b strings.Builder
	b.WriteString(o.class.name)
	b.WriteByte('{')
	for i, f := range o.class.Fields() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteByte('=')
		b.WriteString(o.fields[f.Name].String())
	}
	b.WriteByte('}')
	return b.String()
}
