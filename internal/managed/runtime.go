package managed

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Sentinel errors returned (wrapped) by the Env protocol.
var (
	ErrClassNotFound   = errors.New("class not found")
	ErrClassConflict   = errors.New("class already defined with a different schema")
	ErrNoSuchField     = errors.New("no such field")
	ErrFieldKind       = errors.New("field kind mismatch")
	ErrUndeclaredField = errors.New("undeclared field")
	ErrNilObject       = errors.New("nil object")
	ErrNilClass        = errors.New("nil class")
)

// Env is the field-access and object-construction protocol of the managed
// runtime. The boundary translator only talks to managed objects through it.
type Env interface {
	FindClass(name string) (*Class, error)
	GetField(obj *Object, name string, kind Kind) (Value, error)
	NewObject(class *Class, fields map[string]Value) (*Object, error)
}

// Runtime is the in-process Env implementation. The class registry is safe
// for concurrent use.
type Runtime struct {
	mu      sync.RWMutex
	classes map[string]*Class
}

var _ Env = (*Runtime)(nil)

// NewRuntime returns a runtime holding only the root class.
func NewRuntime() *Runtime {
	root := &Class{name: ObjectClassName}
	return &Runtime{classes: map[string]*Class{ObjectClassName: root}}
}

// DefineClass registers a class. An empty superName extends the root class.
//
// Defining a class twice with an identical schema returns the existing class;
// any difference fails with ErrClassConflict. Field names must be unique
// across the superclass chain.
func (r *Runtime) DefineClass(name, superName string, fields ...FieldDecl) (*Class, error) {
	if name == "" || strings.ContainsAny(name, " .") {
		return nil, fmt.Errorf("define class: invalid class name %q", name)
	}
	if superName == "" {
		superName = ObjectClassName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	super, ok := r.classes[superName]
	if !ok {
		return nil, fmt.Errorf("define class %s: %w: %s", name, ErrClassNotFound, superName)
	}

	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("define class %s: empty field name", name)
		}
		if !f.Kind.Valid() {
			return nil, fmt.Errorf("define class %s: field %s: invalid kind %d", name, f.Name, int(f.Kind))
		}
		if seen[f.Name] || super.HasField(f.Name) {
			return nil, fmt.Errorf("define class %s: duplicate field %s", name, f.Name)
		}
		seen[f.Name] = true
	}

	if existing, ok := r.classes[name]; ok {
		if existing.sameSchema(super, fields) {
			return existing, nil
		}
		return nil, fmt.Errorf("define class %s: %w", name, ErrClassConflict)
	}

	c := &Class{name: name, super: super, declared: slices.Clone(fields)}
	r.classes[name] = c
	return c, nil
}

// FindClass resolves a registered class by name.
func (r *Runtime) FindClass(name string) (*Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, name)
	}
	return c, nil
}

// stage returns a runtime holding a copy of r's registry. Classes defined on
// the copy are not visible in r until commit.
func (r *Runtime) stage() *Runtime {
	r.mu.RLock()
	defer r.mu.RUnlock()
	classes := make(map[string]*Class, len(r.classes))
	for name, c := range r.classes {
		classes[name] = c
	}
	return &Runtime{classes: classes}
}

// commit registers the classes defined on staged since stage. A class
// registered in r in the meantime under the same name fails with
// ErrClassConflict and nothing is committed.
func (r *Runtime) commit(staged *Runtime) error {
	staged.mu.RLock()
	defer staged.mu.RUnlock()
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, c := range staged.classes {
		if existing, ok := r.classes[name]; ok && existing != c {
			return fmt.Errorf("define class %s: %w", name, ErrClassConflict)
		}
	}
	for name, c := range staged.classes {
		r.classes[name] = c
	}
	return nil
}

// Classes returns every registered class sorted by name.
func (r *Runtime) Classes() []*Class {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Class, 0, len(r.classes))
	for _, c := range r.classes {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *Class) int { return strings.Compare(a.name, b.name) })
	return out
}

// GetField reads a typed field from obj.
func (r *Runtime) GetField(obj *Object, name string, kind Kind) (Value, error) {
	if obj == nil {
		return nil, fmt.Errorf("get field %s: %w", name, ErrNilObject)
	}
	decl, ok := obj.class.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrNoSuchField, obj.class.name, name)
	}
	if decl.Kind != kind {
		return nil, fmt.Errorf("%w: %s.%s is %s, requested %s",
			ErrFieldKind, obj.class.name, name, decl.Kind, kind)
	}
	return obj.fields[name], nil
}

// NewObject constructs an instance of class. Every supplied field must be
// declared with a matching kind; omitted fields take their zero value.
func (r *Runtime) NewObject(class *Class, fields map[string]Value) (*Object, error) {
	if class == nil {
		return nil, fmt.Errorf("new object: %w", ErrNilClass)
	}

	r.mu.RLock()
	registered := r.classes[class.name] == class
	r.mu.RUnlock()
	if !registered {
		return nil, fmt.Errorf("new object: %w: %s", ErrClassNotFound, class.name)
	}

	for name, v := range fields {
		decl, ok := class.Field(name)
		if !ok {
			return nil, fmt.Errorf("new object %s: %w: %s", class.name, ErrUndeclaredField, name)
		}
		if v == nil || v.Kind() != decl.Kind {
			return nil, fmt.Errorf("new object %s: %w: %s is %s", class.name, ErrFieldKind, name, decl.Kind)
		}
	}

	all := class.Fields()
	values := make(map[string]Value, len(all))
	for _, f := range all {
		if v, ok := fields[f.Name]; ok {
			values[f.Name] = v
		} else {
			values[f.Name] = Zero(f.Kind)
		}
	}
	return &Object{class: class, fields: values}, nil
}
