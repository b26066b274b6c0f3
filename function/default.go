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

package function

import (
	"math"
	"math/cmplx"

	"github.com/QuTech-Delft/libqasm-sub003/types"
	"github.com/QuTech-Delft/libqasm-sub003/values"
)

// DefaultRegistry returns the built-in function table: the arithmetic and
// comparison operators (registered under their `operator...` names, the way
// the analyser rewrites binary/unary expressions), plus the named
// mathematical and complex-number functions.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	addArithmetic(r)
	addComparison(r)
	addMath(r)
	addComplexBuiltins(r)
	addTernary(r)
	return r
}

func addArithmetic(r *Registry) {
	for _, kind := range []types.Kind{types.Int, types.Float, types.Complex} {
		addBinaryNumeric(r, "operator+", kind, func(a, b complex128) complex128 { return a + b })
		addBinaryNumeric(r, "operator-", kind, func(a, b complex128) complex128 { return a - b })
		addBinaryNumeric(r, "operator*", kind, func(a, b complex128) complex128 { return a * b })
		addBinaryNumeric(r, "operator/", kind, func(a, b complex128) complex128 { return a / b })
	}

	r.Add(Signature{
		Name: "operator+", Params: "ss", Result: types.Scalar(types.String),
		Impl: func(args []values.Value) (values.Value, error) {
			return Fold("operator+", types.Scalar(types.String), args, func(a []values.Value) (values.Value, error) {
				return a[0].(values.ConstString) + a[1].(values.ConstString), nil
			})
		},
	})

	for _, kind := range []types.Kind{types.Int, types.Float, types.Complex} {
		k := kind
		r.Add(Signature{
			Name: "operator-", Params: string(paramCode(k)), Result: types.Scalar(k),
			Impl: func(args []values.Value) (values.Value, error) {
				return Fold("operator-", types.Scalar(k), args, func(a []values.Value) (values.Value, error) {
					return negate(k, a[0])
				})
			},
		})
	}
}

func addBinaryNumeric(r *Registry, name string, kind types.Kind, op func(a, b complex128) complex128) {
	code := paramCode(kind)
	params := string([]byte{code, code})
	r.Add(Signature{
		Name: name, Params: params, Result: types.Scalar(kind),
		Impl: func(args []values.Value) (values.Value, error) {
			return Fold(name, types.Scalar(kind), args, func(a []values.Value) (values.Value, error) {
				x, y := asComplex(a[0]), asComplex(a[1])
				return fromComplex(kind, op(x, y)), nil
			})
		},
	})
}

func addComparison(r *Registry) {
	ops := map[string]func(a, b complex128) bool{
		"operator<":  func(a, b complex128) bool { return real(a) < real(b) },
		"operator<=": func(a, b complex128) bool { return real(a) <= real(b) },
		"operator>":  func(a, b complex128) bool { return real(a) > real(b) },
		"operator>=": func(a, b complex128) bool { return real(a) >= real(b) },
	}
	for name, cmp := range ops {
		for _, kind := range []types.Kind{types.Int, types.Float} {
			code := paramCode(kind)
			n, c := name, cmp
			r.Add(Signature{
				Name: n, Params: string([]byte{code, code}), Result: types.Scalar(types.Bool),
				Impl: func(args []values.Value) (values.Value, error) {
					return Fold(n, types.Scalar(types.Bool), args, func(a []values.Value) (values.Value, error) {
						return values.ConstBool(c(asComplex(a[0]), asComplex(a[1]))), nil
					})
				},
			})
		}
	}

	for _, kind := range []types.Kind{types.Bool, types.Int, types.Float, types.Complex, types.String} {
		k := kind
		code := paramCode(k)
		r.Add(Signature{
			Name: "operator==", Params: string([]byte{code, code}), Result: types.Scalar(types.Bool),
			Impl: func(args []values.Value) (values.Value, error) {
				return Fold("operator==", types.Scalar(types.Bool), args, func(a []values.Value) (values.Value, error) {
					return values.ConstBool(equalValues(k, a[0], a[1])), nil
				})
			},
		})
		r.Add(Signature{
			Name: "operator!=", Params: string([]byte{code, code}), Result: types.Scalar(types.Bool),
			Impl: func(args []values.Value) (values.Value, error) {
				return Fold("operator!=", types.Scalar(types.Bool), args, func(a []values.Value) (values.Value, error) {
					return values.ConstBool(!equalValues(k, a[0], a[1])), nil
				})
			},
		})
	}
}

func equalValues(kind types.Kind, a, b values.Value) bool {
	switch kind {
	case types.Bool:
		return a.(values.ConstBool) == b.(values.ConstBool)
	case types.String:
		return a.(values.ConstString) == b.(values.ConstString)
	default:
		return asComplex(a) == asComplex(b)
	}
}

func addMath(r *Registry) {
	unary := map[string]func(float64) float64{
		"sin": math.Sin, "cos": math.Cos, "tan": math.Tan,
		"arcsin": math.Asin, "arccos": math.Acos, "arctan": math.Atan,
		"sqrt": math.Sqrt, "exp": math.Exp, "log": math.Log,
	}
	for name, fn := range unary {
		n, f := name, fn
		r.Add(Signature{
			Name: n, Params: "f", Result: types.Scalar(types.Float),
			Impl: func(args []values.Value) (values.Value, error) {
				return Fold(n, types.Scalar(types.Float), args, func(a []values.Value) (values.Value, error) {
					return values.ConstReal(f(float64(a[0].(values.ConstReal)))), nil
				})
			},
		})
	}

	complexTrig := map[string]func(complex128) complex128{
		"sin": cmplx.Sin, "cos": cmplx.Cos, "tan": cmplx.Tan,
		"arcsin": cmplx.Asin, "arccos": cmplx.Acos, "arctan": cmplx.Atan,
		"sqrt": cmplx.Sqrt, "exp": cmplx.Exp, "log": cmplx.Log,
	}
	for name, fn := range complexTrig {
		n, f := name, fn
		r.Add(Signature{
			Name: n, Params: "c", Result: types.Scalar(types.Complex),
			Impl: func(args []values.Value) (values.Value, error) {
				return Fold(n, types.Scalar(types.Complex), args, func(a []values.Value) (values.Value, error) {
					return values.ConstComplex(f(complex128(a[0].(values.ConstComplex)))), nil
				})
			},
		})
	}

	r.Add(Signature{
		Name: "pow", Params: "ff", Result: types.Scalar(types.Float),
		Impl: func(args []values.Value) (values.Value, error) {
			return Fold("pow", types.Scalar(types.Float), args, func(a []values.Value) (values.Value, error) {
				return values.ConstReal(math.Pow(float64(a[0].(values.ConstReal)), float64(a[1].(values.ConstReal)))), nil
			})
		},
	})

	for _, kind := range []types.Kind{types.Int, types.Float} {
		k := kind
		code := paramCode(k)
		r.Add(Signature{
			Name: "abs", Params: string(code), Result: types.Scalar(k),
			Impl: func(args []values.Value) (values.Value, error) {
				return Fold("abs", types.Scalar(k), args, func(a []values.Value) (values.Value, error) {
					if k == types.Int {
						n := int64(a[0].(values.ConstInt))
						if n < 0 {
							n = -n
						}
						return values.ConstInt(n), nil
					}
					return values.ConstReal(math.Abs(float64(a[0].(values.ConstReal)))), nil
				})
			},
		})
	}
}

func addComplexBuiltins(r *Registry) {
	r.Add(Signature{
		Name: "complex", Params: "ff", Result: types.Scalar(types.Complex),
		Impl: func(args []values.Value) (values.Value, error) {
			return Fold("complex", types.Scalar(types.Complex), args, func(a []values.Value) (values.Value, error) {
				re := float64(a[0].(values.ConstReal))
				im := float64(a[1].(values.ConstReal))
				return values.ConstComplex(complex(re, im)), nil
			})
		},
	})
	r.Add(Signature{
		Name: "polar", Params: "ff", Result: types.Scalar(types.Complex),
		Impl: func(args []values.Value) (values.Value, error) {
			return Fold("polar", types.Scalar(types.Complex), args, func(a []values.Value) (values.Value, error) {
				rho := float64(a[0].(values.ConstReal))
				theta := float64(a[1].(values.ConstReal))
				return values.ConstComplex(cmplx.Rect(rho, theta)), nil
			})
		},
	})
	r.Add(Signature{
		Name: "real", Params: "c", Result: types.Scalar(types.Float),
		Impl: func(args []values.Value) (values.Value, error) {
			return Fold("real", types.Scalar(types.Float), args, func(a []values.Value) (values.Value, error) {
				return values.ConstReal(real(complex128(a[0].(values.ConstComplex)))), nil
			})
		},
	})
	r.Add(Signature{
		Name: "imag", Params: "c", Result: types.Scalar(types.Float),
		Impl: func(args []values.Value) (values.Value, error) {
			return Fold("imag", types.Scalar(types.Float), args, func(a []values.Value) (values.Value, error) {
				return values.ConstReal(imag(complex128(a[0].(values.ConstComplex)))), nil
			})
		},
	})
	r.Add(Signature{
		Name: "arg", Params: "c", Result: types.Scalar(types.Float),
		Impl: func(args []values.Value) (values.Value, error) {
			return Fold("arg", types.Scalar(types.Float), args, func(a []values.Value) (values.Value, error) {
				return values.ConstReal(cmplx.Phase(complex128(a[0].(values.ConstComplex)))), nil
			})
		},
	})
	r.Add(Signature{
		Name: "norm", Params: "c", Result: types.Scalar(types.Float),
		Impl: func(args []values.Value) (values.Value, error) {
			return Fold("norm", types.Scalar(types.Float), args, func(a []values.Value) (values.Value, error) {
				return values.ConstReal(cmplx.Abs(complex128(a[0].(values.ConstComplex)))), nil
			})
		},
	})
	r.Add(Signature{
		Name: "conj", Params: "c", Result: types.Scalar(types.Complex),
		Impl: func(args []values.Value) (values.Value, error) {
			return Fold("conj", types.Scalar(types.Complex), args, func(a []values.Value) (values.Value, error) {
				return values.ConstComplex(cmplx.Conj(complex128(a[0].(values.ConstComplex)))), nil
			})
		},
	})
}

// addTernary registers `operator?:`, the rewrite target for `cond ? a : b`
// expressions. The analyser passes both branches as written; overload
// resolution picks the branch type needing the fewest promotions and
// promotes both branches to it, so the selected branch is returned
// already in that common type.
func addTernary(r *Registry) {
	for _, kind := range []types.Kind{types.Bool, types.Int, types.Float, types.Complex, types.String} {
		k := kind
		code := paramCode(k)
		r.Add(Signature{
			Name: "operator?:", Params: string([]byte{'b', code, code}), Result: types.Scalar(k),
			Impl: func(args []values.Value) (values.Value, error) {
				return Fold("operator?:", types.Scalar(k), args, func(a []values.Value) (values.Value, error) {
					if bool(a[0].(values.ConstBool)) {
						return a[1], nil
					}
					return a[2], nil
				})
			},
		})
	}
}

func paramCode(kind types.Kind) byte {
	switch kind {
	case types.Bool:
		return 'b'
	case types.Int:
		return 'i'
	case types.Float:
		return 'f'
	case types.Complex:
		return 'c'
	case types.String:
		return 's'
	case types.Axis:
		return 'a'
	default:
		panic("function: no parameter code for kind " + kind.String())
	}
}

func asComplex(v values.Value) complex128 {
	switch x := v.(type) {
	case values.ConstInt:
		return complex(float64(x), 0)
	case values.ConstReal:
		return complex(float64(x), 0)
	case values.ConstComplex:
		return complex128(x)
	default:
		panic("function: value is not numeric")
	}
}

func fromComplex(kind types.Kind, c complex128) values.Value {
	switch kind {
	case types.Int:
		return values.ConstInt(int64(real(c)))
	case types.Float:
		return values.ConstReal(real(c))
	case types.Complex:
		return values.ConstComplex(c)
	default:
		panic("function: kind is not numeric")
	}
}

func negate(kind types.Kind, v values.Value) (values.Value, error) {
	switch kind {
	case types.Int:
		return values.ConstInt(-int64(v.(values.ConstInt))), nil
	case types.Float:
		return values.ConstReal(-float64(v.(values.ConstReal))), nil
	case types.Complex:
		return values.ConstComplex(-complex128(v.(values.ConstComplex))), nil
	default:
		panic("function: kind is not numeric")
	}
}
