package managed

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// Document is the serialized form of a managed object. Classes lists any
// class declarations the object needs beyond those already registered.
type Document struct {
	Classes []ClassDocument `json:"classes,omitempty" yaml:"classes,omitempty"`
	Class   string          `json:"class" yaml:"class"`
	Fields  map[string]any  `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// ClassDocument is the serialized form of a class declaration.
type ClassDocument struct {
	Name   string          `json:"name" yaml:"name"`
	Super  string          `json:"super,omitempty" yaml:"super,omitempty"`
	Fields []FieldDocument `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// FieldDocument declares one field; Kind is a kind name or type descriptor.
type FieldDocument struct {
	Name string `json:"name" yaml:"name"`
	Kind string `json:"kind" yaml:"kind"`
}

// DecodeError reports a document that cannot be resolved against a runtime.
type DecodeError struct {
	Class   string
	Field   string
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("decode %s.%s: %s", e.Class, e.Field, e.Message)
	case e.Class != "":
		return fmt.Sprintf("decode %s: %s", e.Class, e.Message)
	default:
		return "decode: " + e.Message
	}
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DefineClasses registers the class declarations of docs in order.
func DefineClasses(rt *Runtime, docs []ClassDocument) error {
	for _, cd := range docs {
		fields := make([]FieldDecl, 0, len(cd.Fields))
		for _, fd := range cd.Fields {
			k, err := ParseKind(fd.Kind)
			if err != nil {
				return &DecodeError{Class: cd.Name, Field: fd.Name, Message: err.Error(), Err: err}
			}
			fields = append(fields, FieldDecl{Name: fd.Name, Kind: k})
		}
		if _, err := rt.DefineClass(cd.Name, cd.Super, fields...); err != nil {
			return &DecodeError{Class: cd.Name, Message: err.Error(), Err: err}
		}
	}
	return nil
}

// Decode resolves doc against rt and constructs the object it describes.
// The document's class declarations are registered on rt only once the
// object has decoded, so a failed Decode leaves rt unchanged.
func Decode(rt *Runtime, doc Document) (*Object, error) {
	if len(doc.Classes) == 0 {
		return decodeObject(rt, doc)
	}

	staged := rt.stage()
	if err := DefineClasses(staged, doc.Classes); err != nil {
		return nil, err
	}
	obj, err := decodeObject(staged, doc)
	if err != nil {
		return nil, err
	}
	if err := rt.commit(staged); err != nil {
		return nil, &DecodeError{Class: doc.Class, Message: err.Error(), Err: err}
	}
	return obj, nil
}

func decodeObject(rt *Runtime, doc Document) (*Object, error) {
	if doc.Class == "" {
		return nil, &DecodeError{Message: "class is required"}
	}
	class, err := rt.FindClass(doc.Class)
	if err != nil {
		return nil, &DecodeError{Class: doc.Class, Message: err.Error(), Err: err}
	}

	fields := make(map[string]Value, len(doc.Fields))
	for name, raw := range doc.Fields {
		decl, ok := class.Field(name)
		if !ok {
			return nil, &DecodeError{Class: doc.Class, Field: name, Message: "field not declared", Err: ErrUndeclaredField}
		}
		v, err := Coerce(decl.Kind, raw)
		if err != nil {
			return nil, &DecodeError{Class: doc.Class, Field: name, Message: err.Error(), Err: ErrFieldKind}
		}
		fields[name] = v
	}

	obj, err := rt.NewObject(class, fields)
	if err != nil {
		return nil, &DecodeError{Class: doc.Class, Message: err.Error(), Err: err}
	}
	return obj, nil
}

// Encode converts obj into a document carrying every field value.
// Class declarations are not included.
func Encode(obj *Object) Document {
	doc := Document{Class: obj.class.name, Fields: make(map[string]any, len(obj.fields))}
	for name, v := range obj.fields {
		doc.Fields[name] = Native(v)
	}
	return doc
}

// Native converts a managed value to the plain Go value used in documents.
func Native(v Value) any {
	switch val := v.(type) {
	case Int:
		return int64(val)
	case Long:
		return int64(val)
	case Double:
		return float64(val)
	case Char:
		return string(rune(val))
	case Boolean:
		return bool(val)
	case String:
		return string(val)
	default:
		return nil
	}
}

// Coerce converts a decoded document value (YAML, JSON or CUE) into a value
// of kind k. Integral floats are accepted for int and long; integers are
// accepted for double; a one-character string is accepted for char.
func Coerce(k Kind, raw any) (Value, error) {
	switch k {
	case KindInt:
		n, err := toInt64(raw)
		if err != nil {
			return nil, err
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, fmt.Errorf("%d overflows int", n)
		}
		return Int(n), nil
	case KindLong:
		n, err := toInt64(raw)
		if err != nil {
			return nil, err
		}
		return Long(n), nil
	case KindDouble:
		switch val := raw.(type) {
		case float64:
			return Double(val), nil
		case float32:
			return Double(val), nil
		}
		n, err := toInt64(raw)
		if err != nil {
			return nil, fmt.Errorf("expected double, got %T", raw)
		}
		return Double(n), nil
	case KindChar:
		s, ok := raw.(string)
		if !ok || utf8.RuneCountInString(s) != 1 {
			return nil, fmt.Errorf("expected single character, got %v", raw)
		}
		r, _ := utf8.DecodeRuneInString(s)
		return Char(r), nil
	case KindBoolean:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("expected boolean, got %T", raw)
		}
		return Boolean(b), nil
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", raw)
		}
		return String(s), nil
	default:
		return nil, fmt.Errorf("invalid kind %d", int(k))
	}
}

func toInt64(raw any) (int64, error) {
	switch val := raw.(type) {
	case int:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case int64:
		return val, nil
	case uint64:
		if val > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows long", val)
		}
		return int64(val), nil
	case float64:
		if val != math.Trunc(val) || math.IsInf(val, 0) || val < math.MinInt64 || val >= math.MaxInt64 {
			return 0, fmt.Errorf("expected integer, got %v", val)
		}
		return int64(val), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", raw)
	}
}
