// Package cuesource reads managed objects from CUE documents and renders
// managed objects back as CUE.
//
// A document has the same shape as managed.Document:
//
//	class: "geotrans3/coordinates/GeodeticCoordinates"
//	fields: {
//		coordinateType: 21
//		longitude:      -77.0365
//		latitude:       38.8977
//		height:         17
//	}
//
// An optional classes list declares classes the object needs. Several
// documents can share one file under different labels; Load selects one by
// path.
package cuesource

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/format"
	"cuelang.org/go/cue/token"

	"github.com/roach88/ccsbridge/internal/managed"
)

// DecodeError reports a CUE document that does not describe a valid
// managed object.
type DecodeError struct {
	Field   string
	Message string
	Pos     token.Pos
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// File is a compiled CUE file.
type File struct {
	value cue.Value
}

// LoadFile compiles the CUE file at path.
func LoadFile(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Compile(path, src)
}

// Compile compiles CUE source. filename is used in error positions.
func Compile(filename string, src []byte) (*File, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return &File{value: v}, nil
}

// Labels returns the top-level labels of the file in source order.
func (f *File) Labels() ([]string, error) {
	iter, err := f.value.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var labels []string
	for iter.Next() {
		labels = append(labels, iter.Label())
	}
	return labels, nil
}

// Object decodes the document at path, or the whole file when path is
// empty, into a managed object of rt.
func (f *File) Object(rt *managed.Runtime, path string) (*managed.Object, error) {
	v := f.value
	if path != "" {
		v = v.LookupPath(cue.ParsePath(path))
		if !v.Exists() {
			return nil, &DecodeError{Field: path, Message: "no such document", Pos: f.value.Pos()}
		}
	}
	return Decode(rt, v)
}

// Decode converts a CUE document value into a managed object, defining any
// classes the document declares first.
func Decode(rt *managed.Runtime, v cue.Value) (*managed.Object, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	if err := defineClasses(rt, v); err != nil {
		return nil, err
	}

	classVal := v.LookupPath(cue.ParsePath("class"))
	if !classVal.Exists() {
		return nil, &DecodeError{Field: "class", Message: "class is required", Pos: v.Pos()}
	}
	className, err := classVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	class, err := rt.FindClass(className)
	if err != nil {
		return nil, &DecodeError{Field: "class", Message: err.Error(), Pos: classVal.Pos(), Err: err}
	}

	fields := make(map[string]managed.Value)
	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if fieldsVal.Exists() {
		iter, err := fieldsVal.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			name := iter.Label()
			fv := iter.Value()
			decl, ok := class.Field(name)
			if !ok {
				return nil, &DecodeError{
					Field:   "fields." + name,
					Message: fmt.Sprintf("field not declared by %s", className),
					Pos:     fv.Pos(),
					Err:     managed.ErrUndeclaredField,
				}
			}
			raw, err := scalar(fv)
			if err != nil {
				return nil, err
			}
			val, err := managed.Coerce(decl.Kind, raw)
			if err != nil {
				return nil, &DecodeError{Field: "fields." + name, Message: err.Error(), Pos: fv.Pos(), Err: err}
			}
			fields[name] = val
		}
	}

	obj, err := rt.NewObject(class, fields)
	if err != nil {
		return nil, &DecodeError{Field: "fields", Message: err.Error(), Pos: v.Pos(), Err: err}
	}
	return obj, nil
}

func defineClasses(rt *managed.Runtime, v cue.Value) error {
	classesVal := v.LookupPath(cue.ParsePath("classes"))
	if !classesVal.Exists() {
		return nil
	}
	iter, err := classesVal.List()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		cv := iter.Value()
		var cd managed.ClassDocument
		if err := cv.Decode(&cd); err != nil {
			return formatCUEError(err)
		}
		if err := managed.DefineClasses(rt, []managed.ClassDocument{cd}); err != nil {
			return &DecodeError{Field: "classes", Message: err.Error(), Pos: cv.Pos(), Err: err}
		}
	}
	return nil
}

// scalar extracts a concrete scalar for managed.Coerce.
func scalar(v cue.Value) (any, error) {
	switch v.IncompleteKind() {
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return n, nil
	case cue.FloatKind, cue.NumberKind:
		f, err := v.Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return f, nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return s, nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return b, nil
	default:
		return nil, &DecodeError{
			Field:   v.Path().String(),
			Message: fmt.Sprintf("unsupported value kind: %v", v.IncompleteKind()),
			Pos:     v.Pos(),
		}
	}
}

// Format renders obj as a CUE document.
func Format(obj *managed.Object) ([]byte, error) {
	doc := managed.Encode(obj)
	ctx := cuecontext.New()
	v := ctx.Encode(map[string]any{
		"class":  doc.Class,
		"fields": doc.Fields,
	})
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	out, err := format.Node(v.Syntax())
	if err != nil {
		return nil, fmt.Errorf("format cue: %w", err)
	}
	return out, nil
}

// formatCUEError returns the first CUE error with its position.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &DecodeError{Field: "cue", Message: first.Error(), Pos: positions[0], Err: err}
	}
	return err
}
