package managed

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the declared type of a managed field.
type Kind int

const (
	KindInt Kind = iota + 1
	KindLong
	KindDouble
	KindChar
	KindBoolean
	KindString
)

var kindNames = map[Kind]string{
	KindInt:     "int",
	KindLong:    "long",
	KindDouble:  "double",
	KindChar:    "char",
	KindBoolean: "boolean",
	KindString:  "String",
}

var kindSignatures = map[Kind]string{
	KindInt:     "I",
	KindLong:    "J",
	KindDouble:  "D",
	KindChar:    "C",
	KindBoolean: "Z",
	KindString:  "Ljava/lang/String;",
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Signature returns the type descriptor used in field lookups, e.g. "D".
func (k Kind) Signature() string {
	return kindSignatures[k]
}

// ParseKind accepts a kind name ("double", "String") or a type descriptor ("D").
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) || s == kindSignatures[k] {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown field kind %q", s)
}

// Value is a sealed interface over managed field values.
// Only Int, Long, Double, Char, Boolean and String implement it.
type Value interface {
	Kind() Kind
	String() string
	managedValue() // Sealed
}

// Int is a 32-bit managed int.
type Int int32

func (Int) Kind() Kind       { return KindInt }
func (v Int) String() string { return strconv.FormatInt(int64(v), 10) }
func (Int) managedValue()    {}

// Long is a 64-bit managed long.
type Long int64

func (Long) Kind() Kind       { return KindLong }
func (v Long) String() string { return strconv.FormatInt(int64(v), 10) }
func (Long) managedValue()    {}

// Double is a managed double.
type Double float64

func (Double) Kind() Kind       { return KindDouble }
func (v Double) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (Double) managedValue()    {}

// Char is a managed char.
type Char rune

func (Char) Kind() Kind       { return KindChar }
func (v Char) String() string { return strconv.QuoteRune(rune(v)) }
func (Char) managedValue()    {}

// Boolean is a managed boolean.
type Boolean bool

func (Boolean) Kind() Kind       { return KindBoolean }
func (v Boolean) String() string { return strconv.FormatBool(bool(v)) }
func (Boolean) managedValue()    {}

// String is a managed java.lang.String.
type String string

func (String) Kind() Kind       { return KindString }
func (v String) String() string { return strconv.Quote(string(v)) }
func (String) managedValue()    {}

// Zero returns the default value of a field of kind k.
func Zero(k Kind) Value {
	switch k {
	case KindInt:
		return Int(0)
	case KindLong:
		return Long(0)
	case KindDouble:
		return Double(0)
	case KindChar:
		return Char(0)
	case KindBoolean:
		return Boolean(false)
	case KindString:
		return String("")
	default:
		return nil
	}
}
