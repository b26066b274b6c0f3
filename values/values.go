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

// Package values implements the cQASM value lattice: constants, variable
// and index references, and symbolic/resolved function calls, together with
// type_of/range_of and the promotion machinery that ties values to the
// types package's lattice.
package values

import (
	"fmt"

	"github.com/QuTech-Delft/libqasm-sub003/location"
	"github.com/QuTech-Delft/libqasm-sub003/types"
)

// Value is anything that can appear as an operand in the semantic tree.
type Value interface {
	// TypeOf returns this value's type. Total and deterministic.
	TypeOf() types.Type
	// RangeOf returns 1 for scalars, n for any array-typed or index-ref value.
	RangeOf() int
}

// --- constants ---------------------------------------------------------

type ConstBool bool

func (ConstBool) TypeOf() types.Type { return types.Scalar(types.Bool) }
func (ConstBool) RangeOf() int       { return 1 }

type ConstInt int64

func (ConstInt) TypeOf() types.Type { return types.Scalar(types.Int) }
func (ConstInt) RangeOf() int       { return 1 }

type ConstReal float64

func (ConstReal) TypeOf() types.Type { return types.Scalar(types.Float) }
func (ConstReal) RangeOf() int       { return 1 }

type ConstComplex complex128

func (ConstComplex) TypeOf() types.Type { return types.Scalar(types.Complex) }
func (ConstComplex) RangeOf() int       { return 1 }

type ConstString string

func (ConstString) TypeOf() types.Type { return types.Scalar(types.String) }
func (ConstString) RangeOf() int       { return 1 }

// ConstAxis is a fixed 3-component real axis literal.
type ConstAxis [3]float64

func (ConstAxis) TypeOf() types.Type { return types.Scalar(types.Axis) }
func (ConstAxis) RangeOf() int       { return 1 }

type ConstBoolArray []bool

func (a ConstBoolArray) TypeOf() types.Type { return types.ArrayOf(types.Bool, len(a)) }
func (a ConstBoolArray) RangeOf() int       { return len(a) }

type ConstIntArray []int64

func (a ConstIntArray) TypeOf() types.Type { return types.ArrayOf(types.Int, len(a)) }
func (a ConstIntArray) RangeOf() int       { return len(a) }

type ConstRealArray []float64

func (a ConstRealArray) TypeOf() types.Type { return types.ArrayOf(types.Float, len(a)) }
func (a ConstRealArray) RangeOf() int       { return len(a) }

// ConstRealMatrix is a rectangular real matrix literal (parameter code 'm').
type ConstRealMatrix struct {
	Rows, Cols int
	Data       []float64 // row-major, len == Rows*Cols
}

func (m ConstRealMatrix) TypeOf() types.Type { return types.ArrayOf(types.Float, len(m.Data)) }
func (m ConstRealMatrix) RangeOf() int       { return len(m.Data) }

// At returns the element at (row, col).
func (m ConstRealMatrix) At(row, col int) float64 { return m.Data[row*m.Cols+col] }

// ConstComplexMatrix is a rectangular complex matrix literal (parameter
// codes 'n', or 'u' when square).
type ConstComplexMatrix struct {
	Rows, Cols int
	Data       []complex128
}

func (m ConstComplexMatrix) TypeOf() types.Type { return types.ArrayOf(types.Complex, len(m.Data)) }
func (m ConstComplexMatrix) RangeOf() int       { return len(m.Data) }

func (m ConstComplexMatrix) At(row, col int) complex128 { return m.Data[row*m.Cols+col] }

// IsUnitarySquare reports whether m is square, which is all the 'u'
// parameter code checks syntactically (full unitarity is not verified
// numerically, only the matrix shape).
func (m ConstComplexMatrix) IsUnitarySquare() bool { return m.Rows == m.Cols && m.Rows > 0 }

// IsConstant reports whether v is one of the constant value kinds (as
// opposed to a VariableRef, IndexRef, or symbolic FunctionCall). Used by
// Promote to decide whether a numeric cast applies, and by the function
// registry to decide whether a call can be constant-folded.
func IsConstant(v Value) bool {
	return isConstant(v)
}

// isConstant marks the constant value kinds, used by Promote to decide
// whether a numeric cast applies.
func isConstant(v Value) bool {
	switch v.(type) {
	case ConstBool, ConstInt, ConstReal, ConstComplex, ConstString, ConstAxis,
		ConstBoolArray, ConstIntArray, ConstRealArray, ConstRealMatrix, ConstComplexMatrix:
		return true
	default:
		return false
	}
}

// --- variables and references ------------------------------------------

// Variable binds a name to a type, with an optional declaration site. It is
// created once by a declaration and never mutated afterwards.
type Variable struct {
	Name string
	Type types.Type
	Loc  location.Span
	Has  bool
}

func (v *Variable) Location() (location.Span, bool) { return v.Loc, v.Has }

// VariableRef is a value standing for a whole variable.
type VariableRef struct {
	Var *Variable
}

func (r VariableRef) TypeOf() types.Type { return r.Var.Type.AsAssignable() }
func (r VariableRef) RangeOf() int {
	if r.Var.Type.IsArray() {
		return types.SizeOf(r.Var.Type)
	}
	return 1
}

// IndexRef is a value standing for one or more indexed elements of a
// declared array variable. Indices are already bounds-checked against the
// variable's declared size by the time an IndexRef is constructed.
type IndexRef struct {
	Var     *Variable
	Indices []int
}

func (r IndexRef) TypeOf() types.Type {
	return types.Scalar(types.ElementType(r.Var.Type)).AsAssignable()
}
func (r IndexRef) RangeOf() int { return len(r.Indices) }

// --- function calls ------------------------------------------------------

// FunctionCall is a value kept symbolic because at least one argument is
// not constant. Once every argument is constant, the function registry
// folds it into a constant Value instead of constructing this type.
type FunctionCall struct {
	Name       string
	Args       []Value
	ResultType types.Type
}

func (c FunctionCall) TypeOf() types.Type { return c.ResultType }
func (c FunctionCall) RangeOf() int {
	if c.ResultType.IsArray() {
		return types.SizeOf(c.ResultType)
	}
	return 1
}

// --- promotion -----------------------------------------------------------

// CheckPromote reports whether src can promote to dst, without touching any
// value. allowReplication enables the scalar-into-array replication leg of
// the lattice for call sites that explicitly opt into it - the analyser's
// default assignment/operand promotion path does not.
func CheckPromote(src, dst types.Type, allowReplication bool) bool {
	return types.PromoteType(src, dst, allowReplication)
}

// Promote returns v promoted to target, or (nil, false) if impossible.
func Promote(v Value, target types.Type, allowReplication bool) (Value, bool) {
	src := v.TypeOf()
	if types.Equal(src, target) {
		return v, true
	}
	if !CheckPromote(src, target, allowReplication) {
		return nil, false
	}
	if !src.Array && target.Array {
		return replicate(v, target)
	}
	if isConstant(v) {
		return castConstant(v, target)
	}
	// Non-constant references only promote on exact type match, already
	// handled by the Equal check above.
	return nil, false
}

func replicate(v Value, target types.Type) (Value, bool) {
	if !isConstant(v) {
		return nil, false
	}
	n := types.SizeOf(target)
	switch target.Element {
	case types.Bool:
		b, ok := castToBool(v)
		if !ok {
			return nil, false
		}
		out := make(ConstBoolArray, n)
		for i := range out {
			out[i] = bool(b)
		}
		return out, true
	case types.Int:
		c, ok := castToInt(v)
		if !ok {
			return nil, false
		}
		out := make(ConstIntArray, n)
		for i := range out {
			out[i] = int64(c)
		}
		return out, true
	case types.Float:
		f, ok := castToFloat(v)
		if !ok {
			return nil, false
		}
		out := make(ConstRealArray, n)
		for i := range out {
			out[i] = float64(f)
		}
		return out, true
	default:
		return nil, false
	}
}

func castConstant(v Value, target types.Type) (Value, bool) {
	if target.Array {
		return nil, false
	}
	switch target.Element {
	case types.Int:
		r, ok := castToInt(v)
		return r, ok
	case types.Float:
		r, ok := castToFloat(v)
		return r, ok
	case types.Complex:
		r, ok := castToComplex(v)
		return r, ok
	default:
		return nil, false
	}
}

func castToBool(v Value) (ConstBool, bool) {
	if b, ok := v.(ConstBool); ok {
		return b, true
	}
	return false, false
}

func castToInt(v Value) (ConstInt, bool) {
	switch x := v.(type) {
	case ConstBool:
		if x {
			return 1, true
		}
		return 0, true
	case ConstInt:
		return x, true
	default:
		return 0, false
	}
}

func castToFloat(v Value) (ConstReal, bool) {
	switch x := v.(type) {
	case ConstBool:
		if x {
			return 1, true
		}
		return 0, true
	case ConstInt:
		return ConstReal(x), true
	case ConstReal:
		return x, true
	default:
		return 0, false
	}
}

func castToComplex(v Value) (ConstComplex, bool) {
	switch x := v.(type) {
	case ConstBool:
		if x {
			return 1, true
		}
		return 0, true
	case ConstInt:
		return ConstComplex(complex(float64(x), 0)), true
	case ConstReal:
		return ConstComplex(complex(float64(x), 0)), true
	case ConstComplex:
		return x, true
	default:
		return 0, false
	}
}

// CheckAllOfArrayValues folds predicate across every element of a constant
// array-shaped value (an array constant, a matrix constant, or Axis, which
// is a fixed 3-element scalar type). It reports whether predicate holds for
// every element; callers invert the result for "none of" style checks (for
// example axis-all-zero: check that not every component satisfies IsZero).
func CheckAllOfArrayValues(v Value, predicate func(Value) bool) bool {
	switch x := v.(type) {
	case ConstAxis:
		for _, f := range x {
			if !predicate(ConstReal(f)) {
				return false
			}
		}
		return true
	case ConstBoolArray:
		for _, b := range x {
			if !predicate(ConstBool(b)) {
				return false
			}
		}
		return true
	case ConstIntArray:
		for _, n := range x {
			if !predicate(ConstInt(n)) {
				return false
			}
		}
		return true
	case ConstRealArray:
		for _, f := range x {
			if !predicate(ConstReal(f)) {
				return false
			}
		}
		return true
	case ConstRealMatrix:
		for _, f := range x.Data {
			if !predicate(ConstReal(f)) {
				return false
			}
		}
		return true
	case ConstComplexMatrix:
		for _, c := range x.Data {
			if !predicate(ConstComplex(c)) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("values: CheckAllOfArrayValues on non-array value %T", v))
	}
}

// IsZero is a predicate suitable for CheckAllOfArrayValues: reports whether
// a scalar constant is numerically zero.
func IsZero(v Value) bool {
	switch x := v.(type) {
	case ConstBool:
		return !bool(x)
	case ConstInt:
		return x == 0
	case ConstReal:
		return x == 0
	case ConstComplex:
		return complex128(x) == 0
	default:
		return false
	}
}
