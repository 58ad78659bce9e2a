// Package managed models the caller-side object runtime that the boundary
// translator reads from and writes to.
//
// A Runtime holds a registry of classes. Each class has a slash-separated
// name ("geotrans3/coordinates/Accuracy"), an optional superclass and a list
// of typed field declarations. Objects are instances of registered classes and
// are immutable once constructed.
//
// Access goes through the Env protocol:
//
//	FindClass(name)               resolve a class by name
//	GetField(obj, name, kind)     read one typed field
//	NewObject(class, fields)      construct an instance
//
// Field kinds follow the primitive types of the managed runtime: int, long,
// double, char, boolean and String. A field that is not supplied at
// construction time holds the zero value of its kind. Reading a field the
// class does not declare fails with ErrNoSuchField; reading it as the wrong
// kind fails with ErrFieldKind.
//
// Documents (Document, ClassDocument) are the serialized form used by the
// CLI and the conformance harness. Decode resolves a document against a
// Runtime, declaring any classes it carries; Encode is the inverse for
// objects.
package managed
