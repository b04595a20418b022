package symtab

import "strings"

// ValType is a bitmask describing what an identifier denotes: a primitive
// base type, optionally an array of it, optionally a callable returning it.
type ValType uint8

const (
	TypeNone     ValType = 0
	TypeArray    ValType = 1 << 0
	TypeBoolean  ValType = 1 << 1
	TypeCallable ValType = 1 << 2
	TypeInteger  ValType = 1 << 3
)

// IsVariable reports whether the type denotes a storage variable: it has a
// primitive base type and is not callable.
func (t ValType) IsVariable() bool {
	return t&(TypeBoolean|TypeInteger) != 0 && t&TypeCallable == 0
}

// IsCallable reports whether the type denotes a function or procedure.
func (t ValType) IsCallable() bool {
	return t&TypeCallable != 0
}

func (t ValType) String() string {
	var b strings.Builder
	switch {
	case t&TypeBoolean != 0:
		b.WriteString("boolean")
	case t&TypeInteger != 0:
		b.WriteString("integer")
	default:
		if t.IsCallable() {
			return "procedure"
		}
		return "none"
	}
	if t&TypeArray != 0 {
		b.WriteString(" array")
	}
	if t.IsCallable() {
		b.WriteString(" function")
	}
	return b.String()
}

// Properties is the record stored per identifier.
type Properties struct {
	Type ValType

	// Offset is the storage slot within the declaring scope's frame.
	// Assigned by Declare for variables only.
	Offset int

	// Params holds the parameter types of a callable, in order.
	Params []ValType
}
