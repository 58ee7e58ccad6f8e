// Package types implements the ordinal type model of the language.
//
// A Type packs a base kind, array-ness and pointer depth into one int:
//
//	base          = t % 4   (int, float, bool, char)
//	is array      = (t / 4) % 2
//	pointer depth = t / 8
//
// Every derivation of one type from another goes through this package.
package types

import (
	"fmt"
	"strings"

	"github.com/grailbio/base/errors"
)

// Type is a type ordinal. Negative values are Undefined.
type Type int

// Builtin types
const (
	Undefined Type = -1

	Int   Type = 0
	Float Type = 1
	Bool  Type = 2
	Char  Type = 3

	arrayStep   = 4
	pointerStep = 8
)

// Word is the type of a double-quoted literal, a char array.
const Word = Char + arrayStep

var (
	// ErrNotAnArray is wrapped by ElementOf failures.
	ErrNotAnArray = errors.New("not an array")
	// ErrNotAPointer is wrapped by Dereference failures.
	ErrNotAPointer = errors.New("not a pointer")
)

var (
	shortNames   = [...]string{"int", "float", "bool", "char"}
	verboseNames = [...]string{"integer", "float", "boolean", "character"}
)

// Valid reports whether t is a real type rather than the error marker.
func (t Type) Valid() bool { return t >= 0 }

// Base returns the primitive kind of t with array-ness and pointers removed.
func (t Type) Base() Type {
	if !t.Valid() {
		return Undefined
	}
	return t % arrayStep
}

// IsArray reports whether t is an array type.
func (t Type) IsArray() bool {
	return t.Valid() && (t/arrayStep)%2 == 1
}

// PointerDepth returns how many reference levels t carries.
func (t Type) PointerDepth() int {
	if !t.Valid() {
		return 0
	}
	return int(t / pointerStep)
}

// ArrayOf returns the array type whose elements are t. Arrays are single
// level, so the array of an array is Undefined.
func (t Type) ArrayOf() Type {
	if !t.Valid() || t.IsArray() {
		return Undefined
	}
	return t + arrayStep
}

// ElementOf returns the element type of the array type t.
func (t Type) ElementOf() (Type, error) {
	if !t.IsArray() {
		return Undefined, errors.E(errors.Invalid, fmt.Sprintf("element of %s", t), ErrNotAnArray)
	}
	return t - arrayStep, nil
}

// PointerTo returns the type of the address of a value of type t.
func (t Type) PointerTo() Type {
	if !t.Valid() {
		return Undefined
	}
	return t + pointerStep
}

// Dereference returns the type t points to.
func (t Type) Dereference() (Type, error) {
	if t.PointerDepth() == 0 {
		return Undefined, errors.E(errors.Invalid, fmt.Sprintf("dereference of %s", t), ErrNotAPointer)
	}
	return t - pointerStep, nil
}

// Name renders t the way the language spells it (short) or the way
// diagnostics describe it.
func (t Type) Name(short bool) string {
	if !t.Valid() {
		return "undefined"
	}
	names, ptr := verboseNames, " pointer"
	if short {
		names, ptr = shortNames, " ref"
	}

	var sb strings.Builder
	sb.WriteString(names[t.Base()])
	for i := 0; i < t.PointerDepth(); i++ {
		sb.WriteString(ptr)
	}
	if t.IsArray() {
		sb.WriteString(" array")
	}
	return sb.String()
}

// String returns the verbose name of t.
func (t Type) String() string {
	return t.Name(false)
}

// Keyword returns the source keyword of the base of t.
func (t Type) Keyword() string {
	if !t.Valid() {
		return "undefined"
	}
	return shortNames[t.Base()]
}

// Lookup maps a type keyword to its base type.
func Lookup(keyword string) (Type, bool) {
	for i, name := range shortNames {
		if name == keyword {
			return Type(i), true
		}
	}
	return Undefined, false
}

// NotAnArray reports whether err came from ElementOf on a non-array.
func NotAnArray(err error) bool { return wraps(err, ErrNotAnArray) }

// NotAPointer reports whether err came from Dereference on a non-pointer.
func NotAPointer(err error) bool { return wraps(err, ErrNotAPointer) }

// wraps walks the errors.E chain looking for target. Both failures share the
// Invalid kind, so errors.Is cannot tell them apart.
func wraps(err, target error) bool {
	for err != nil {
		if err == target {
			return true
		}
		e, ok := err.(*errors.Error)
		if !ok {
			return false
		}
		err = e.Err
	}
	return false
}
