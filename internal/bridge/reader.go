package bridge

import (
	"errors"

	"github.com/roach88/ccsbridge/internal/managed"
)

// fieldReader reads typed fields through an Env and keeps the first failure.
// Once a read fails every later read returns the zero value, so a variant
// reader can list its fields straight through and check err once.
type fieldReader struct {
	env   managed.Env
	obj   *managed.Object
	op    Operation
	class string

	// missing is the code reported when the object's class does not declare
	// a requested field.
	missing ErrorCode

	err error
}

func newFieldReader(env managed.Env, obj *managed.Object, op Operation, missing ErrorCode) *fieldReader {
	return &fieldReader{env: env, obj: obj, op: op, class: obj.Class().Name(), missing: missing}
}

func (r *fieldReader) get(name string, kind managed.Kind) managed.Value {
	if r.err != nil {
		return nil
	}
	v, err := r.env.GetField(r.obj, name, kind)
	if err != nil {
		code := CodeBoundaryFault
		msg := "field access failed"
		if errors.Is(err, managed.ErrNoSuchField) {
			code = r.missing
			msg = "required field is absent"
		}
		r.fail(code, name, msg, err)
		return nil
	}
	if v == nil || v.Kind() != kind {
		r.fail(CodeBoundaryFault, name, "field returned a value of the wrong kind", nil)
		return nil
	}
	return v
}

func (r *fieldReader) fail(code ErrorCode, field, msg string, err error) {
	if r.err != nil {
		return
	}
	r.err = &TranslationError{Code: code, Op: r.op, Class: r.class, Field: field, Message: msg, Err: err}
}

func (r *fieldReader) intField(name string) int32 {
	if v, ok := r.get(name, managed.KindInt).(managed.Int); ok {
		return int32(v)
	}
	return 0
}

func (r *fieldReader) longField(name string) int64 {
	if v, ok := r.get(name, managed.KindLong).(managed.Long); ok {
		return int64(v)
	}
	return 0
}

func (r *fieldReader) doubleField(name string) float64 {
	if v, ok := r.get(name, managed.KindDouble).(managed.Double); ok {
		return float64(v)
	}
	return 0
}

func (r *fieldReader) charField(name string) rune {
	if v, ok := r.get(name, managed.KindChar).(managed.Char); ok {
		return rune(v)
	}
	return 0
}

func (r *fieldReader) stringField(name string) string {
	if v, ok := r.get(name, managed.KindString).(managed.String); ok {
		return string(v)
	}
	return ""
}

// construct resolves className through env and builds an instance.
func construct(env managed.Env, op Operation, className string, fields map[string]managed.Value) (*managed.Object, error) {
	class, err := env.FindClass(className)
	if err != nil {
		return nil, &TranslationError{
			Code: CodeConstructionFailure, Op: op, Class: className,
			Message: "target class is not available", Err: err,
		}
	}
	obj, err := env.NewObject(class, fields)
	if err != nil {
		return nil, &TranslationError{
			Code: CodeConstructionFailure, Op: op, Class: className,
			Message: "managed runtime could not construct object", Err: err,
		}
	}
	return obj, nil
}

func checkInput(env managed.Env, obj *managed.Object, op Operation) error {
	if env == nil {
		return newError(CodeBoundaryFault, op, "", "", "nil env")
	}
	if obj == nil {
		return &TranslationError{Code: CodeBoundaryFault, Op: op, Message: "nil managed object", Err: managed.ErrNilObject}
	}
	return nil
}

// checkRoot fails with CodeBoundaryFault unless obj is an instance of root.
func checkRoot(env managed.Env, obj *managed.Object, op Operation, root string) error {
	class, err := env.FindClass(root)
	if err != nil {
		return &TranslationError{Code: CodeBoundaryFault, Op: op, Class: root, Message: "class lookup failed", Err: err}
	}
	if !obj.IsInstanceOf(class) {
		return newError(CodeBoundaryFault, op, obj.Class().Name(), "", "class is not a %s", root)
	}
	return nil
}
