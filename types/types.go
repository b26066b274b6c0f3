// This file is part of libqasm-sub003.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package types implements the cQASM type lattice: the set of scalar and
// fixed-size array types, type equality, and the promotion relation.
package types

import "fmt"

// Kind discriminates the scalar types. Array types pair a Kind with a size.
type Kind int

const (
	Qubit Kind = iota
	Bit
	Bool
	Int
	Float
	Complex
	String
	Axis
)

func (k Kind) String() string {
	switch k {
	case Qubit:
		return "qubit"
	case Bit:
		return "bit"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case Complex:
		return "complex"
	case String:
		return "string"
	case Axis:
		return "axis"
	default:
		return "<unknown kind>"
	}
}

// isArrayable reports whether a Kind may be the element type of an array.
func isArrayable(k Kind) bool {
	switch k {
	case Qubit, Bit, Bool, Int, Float:
		return true
	default:
		return false
	}
}

// Type is a scalar type, or an array of a scalar type with a fixed positive
// size. The zero Type is not a valid type: use Scalar or ArrayOf to build one.
type Type struct {
	Element    Kind
	Array      bool
	Size       int  // only meaningful when Array is true
	Assignable bool // true for lvalues: declared variables and their indexations
}

// Scalar builds a scalar Type.
func Scalar(k Kind) Type {
	return Type{Element: k}
}

// ArrayOf builds an array Type of the given element kind and size. Panics if
// the element kind cannot be arrayed or size is not positive: callers are
// expected to have already validated the declaration (see the analyzer,
// which reports a Diagnostic instead of constructing an invalid Type).
func ArrayOf(k Kind, size int) Type {
	if !isArrayable(k) {
		panic(fmt.Sprintf("types: %s cannot be an array element", k))
	}
	if size <= 0 {
		panic("types: array size must be positive")
	}
	return Type{Element: k, Array: true, Size: size}
}

// AsAssignable returns t with the Assignable flag set.
func (t Type) AsAssignable() Type {
	t.Assignable = true
	return t
}

// AsValue returns t with the Assignable flag cleared.
func (t Type) AsValue() Type {
	t.Assignable = false
	return t
}

// IsArray reports whether t is an array type.
func (t Type) IsArray() bool { return t.Array }

// String renders t the way cQASM source spells it, e.g. "qubit", "int[4]".
func (t Type) String() string {
	if !t.Array {
		return t.Element.String()
	}
	return fmt.Sprintf("%s[%d]", t.Element, t.Size)
}

// Equal reports whether a and b denote the same type, ignoring Assignable.
func Equal(a, b Type) bool {
	return a.Element == b.Element && a.Array == b.Array && (!a.Array || a.Size == b.Size)
}

// ElementType returns the scalar element type of an array type. Panics if t
// is not an array type; callers must check IsArray first.
func ElementType(t Type) Kind {
	if !t.Array {
		panic("types: ElementType of a non-array type")
	}
	return t.Element
}

// SizeOf returns the declared positive size of an array type. Panics if t is
// not an array type.
func SizeOf(t Type) int {
	if !t.Array {
		panic("types: SizeOf of a non-array type")
	}
	return t.Size
}

// numericRank orders the numeric promotion chain Bool ⊑ Int ⊑ Float ⊑ Complex.
// Returns -1 for kinds outside the chain.
func numericRank(k Kind) int {
	switch k {
	case Bool:
		return 0
	case Int:
		return 1
	case Float:
		return 2
	case Complex:
		return 3
	default:
		return -1
	}
}

// PromoteType reports whether src can be implicitly promoted to dst, per
// the promotion lattice: identity for any scalar T ⊑ T; Bool ⊑ Int ⊑ Float ⊑
// Complex; a scalar T ⊑ Array(T, n) only when the caller explicitly allows
// replication (see allowReplication); an array type is never promoted to
// another array type unless element types match and sizes are equal
// (i.e. only to itself). Axis is never part of the numeric chain.
func PromoteType(src, dst Type, allowReplication bool) bool {
	if Equal(src, dst) {
		return true
	}
	if !src.Array && dst.Array && allowReplication {
		return promoteScalarKind(src.Element, dst.Element)
	}
	if src.Array || dst.Array {
		return false
	}
	return promoteScalarKind(src.Element, dst.Element)
}

func promoteScalarKind(src, dst Kind) bool {
	if src == dst {
		return true
	}
	sr, dr := numericRank(src), numericRank(dst)
	if sr < 0 || dr < 0 {
		return false
	}
	return sr <= dr
}
