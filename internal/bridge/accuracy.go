package bridge

import (
	"errors"

	"github.com/roach88/ccsbridge/internal/ccs"
	"github.com/roach88/ccsbridge/internal/managed"
)

// AccuracyFromManaged reads a managed accuracy object.
//
// Instances of CircularAccuracy translate to ccs.CircularAccuracy and
// instances of Accuracy to ccs.ThreeAxisAccuracy. A circular object whose
// class also declares linear or spherical error fields is ambiguous and is
// rejected with CodeUnsupportedAccuracyShape, as is any other class.
func AccuracyFromManaged(env managed.Env, obj *managed.Object) (ccs.Accuracy, error) {
	const op = OpAccuracyFromManaged
	if err := checkInput(env, obj, op); err != nil {
		return nil, err
	}

	circular, err := lookupClass(env, op, ClassCircularAccuracy)
	if err != nil {
		return nil, err
	}
	threeAxis, err := lookupClass(env, op, ClassAccuracy)
	if err != nil {
		return nil, err
	}

	r := newFieldReader(env, obj, op, CodeBoundaryFault)
	class := obj.Class()

	switch {
	case circular != nil && obj.IsInstanceOf(circular):
		if class.HasField(FieldLinearError90) || class.HasField(FieldSphericalError90) {
			return nil, newError(CodeUnsupportedAccuracyShape, op, r.class, "",
				"object carries both circular and three-axis error fields")
		}
		a := ccs.CircularAccuracy{CE90: r.doubleField(FieldCircularError90)}
		if r.err != nil {
			return nil, r.err
		}
		return a, nil

	case threeAxis != nil && obj.IsInstanceOf(threeAxis):
		a := ccs.ThreeAxisAccuracy{
			CE90: r.doubleField(FieldCircularError90),
			LE90: r.doubleField(FieldLinearError90),
			SE90: r.doubleField(FieldSphericalError90),
		}
		if r.err != nil {
			return nil, r.err
		}
		return a, nil

	default:
		return nil, newError(CodeUnsupportedAccuracyShape, op, r.class, "",
			"class is neither %s nor %s", ClassCircularAccuracy, ClassAccuracy)
	}
}

// lookupClass resolves an accuracy class. A class the runtime has never
// loaded cannot have instances, so it resolves to nil without error.
func lookupClass(env managed.Env, op Operation, name string) (*managed.Class, error) {
	c, err := env.FindClass(name)
	if errors.Is(err, managed.ErrClassNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &TranslationError{Code: CodeBoundaryFault, Op: op, Class: name, Message: "class lookup failed", Err: err}
	}
	return c, nil
}

// AccuracyToManaged constructs a managed accuracy object of the class
// matching a's shape. All axes of a are written.
func AccuracyToManaged(env managed.Env, a ccs.Accuracy) (*managed.Object, error) {
	const op = OpAccuracyToManaged
	if env == nil {
		return nil, newError(CodeBoundaryFault, op, "", "", "nil env")
	}

	switch v := a.(type) {
	case ccs.CircularAccuracy:
		return construct(env, op, ClassCircularAccuracy, map[string]managed.Value{
			FieldCircularError90: managed.Double(v.CE90),
		})
	case ccs.ThreeAxisAccuracy:
		return construct(env, op, ClassAccuracy, map[string]managed.Value{
			FieldCircularError90:  managed.Double(v.CE90),
			FieldLinearError90:    managed.Double(v.LE90),
			FieldSphericalError90: managed.Double(v.SE90),
		})
	default:
		return nil, newError(CodeUnsupportedAccuracyShape, op, "", "", "unsupported accuracy type %T", a)
	}
}
