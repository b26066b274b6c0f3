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

// Package function implements the named constant-folding function
// registry used both for built-in functions (sin, sqrt, complex, ...) and
// for the operators the analyser rewrites to function calls
// (operator+, operator==, operator?:, ...).
package function

import (
	"fmt"

	"github.com/QuTech-Delft/libqasm-sub003/types"
	"github.com/QuTech-Delft/libqasm-sub003/values"
)

// Impl is a pure callback from already-promoted arguments to a value. It is
// never given an empty value to return: use Fold to build one that honours
// the constant-folding contract.
type Impl func(args []values.Value) (values.Value, error)

// Signature is one registered overload.
type Signature struct {
	Name   string
	Params string
	Result types.Type
	Impl   Impl
}

// Registry is a multimap of function name to registered overloads.
type Registry struct {
	entries map[string][]Signature
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string][]Signature)}
}

// Add registers sig, replacing any earlier overload with the same
// Name+Params (mirrors instruction.Registry.Add).
func (r *Registry) Add(sig Signature) {
	list := r.entries[sig.Name]
	for i, existing := range list {
		if existing.Params == sig.Params {
			list[i] = sig
			return
		}
	}
	r.entries[sig.Name] = append(list, sig)
}

type UnknownFunctionError struct{ Name string }

func (e *UnknownFunctionError) Error() string { return "undefined function `" + e.Name + "`" }

type NoMatchingOverloadError struct{ Name string }

func (e *NoMatchingOverloadError) Error() string {
	return "no matching overload for function `" + e.Name + "`"
}

type AmbiguousOverloadError struct{ Name string }

func (e *AmbiguousOverloadError) Error() string {
	return "ambiguous overload for function `" + e.Name + "`"
}

// Resolve picks an overload of name viable for args (after promotion) using
// the same fewest-promotions algorithm as instruction.Registry.Resolve, then
// invokes its Impl. A tie is reported as AmbiguousOverloadError.
func (r *Registry) Resolve(name string, args []values.Value) (values.Value, error) {
	candidates, ok := r.entries[name]
	if !ok || len(candidates) == 0 {
		return nil, &UnknownFunctionError{Name: name}
	}

	type viable struct {
		sig        Signature
		promoted   []values.Value
		promotions int
	}
	var best []viable
	for _, sig := range candidates {
		promoted, promotions, ok := tryBind(sig.Params, args)
		if !ok {
			continue
		}
		best = append(best, viable{sig, promoted, promotions})
	}

	switch len(best) {
	case 0:
		return nil, &NoMatchingOverloadError{Name: name}
	case 1:
		return invoke(best[0].sig, best[0].promoted)
	default:
		min := best[0].promotions
		for _, v := range best {
			if v.promotions < min {
				min = v.promotions
			}
		}
		var winner viable
		count := 0
		for _, v := range best {
			if v.promotions == min {
				count++
				winner = v
			}
		}
		if count != 1 {
			return nil, &AmbiguousOverloadError{Name: name}
		}
		return invoke(winner.sig, winner.promoted)
	}
}

func invoke(sig Signature, args []values.Value) (values.Value, error) {
	v, err := sig.Impl(args)
	if err != nil {
		return nil, err
	}
	if v == nil {
		panic(fmt.Sprintf("function: implementation of %q returned an empty value", sig.Name))
	}
	return v, nil
}

func tryBind(params string, args []values.Value) ([]values.Value, int, bool) {
	if len(params) != len(args) {
		return nil, 0, false
	}
	out := make([]values.Value, len(args))
	promotions := 0
	for i, code := range []byte(params) {
		v, exact, ok := matchParam(code, args[i])
		if !ok {
			return nil, 0, false
		}
		out[i] = v
		if !exact {
			promotions++
		}
	}
	return out, promotions, true
}

// matchParam binds one argument to one parameter code. Functions only ever
// take scalar or matrix operands (never qubit/bit codes).
func matchParam(code byte, v values.Value) (values.Value, bool, bool) {
	switch code {
	case 'b':
		return promoteScalar(v, types.Bool)
	case 'i':
		return promoteScalar(v, types.Int)
	case 'f':
		return promoteScalar(v, types.Float)
	case 'c':
		return promoteScalar(v, types.Complex)
	case 's':
		return promoteScalar(v, types.String)
	case 'a':
		return promoteScalar(v, types.Axis)
	case 'j':
		return promoteScalar(v, types.String)
	case 'm':
		_, ok := v.(values.ConstRealMatrix)
		return v, true, ok
	case 'n':
		_, ok := v.(values.ConstComplexMatrix)
		return v, true, ok
	case 'u':
		m, ok := v.(values.ConstComplexMatrix)
		if !ok || !m.IsUnitarySquare() {
			return nil, false, false
		}
		return v, true, true
	default:
		return nil, false, false
	}
}

func promoteScalar(v values.Value, kind types.Kind) (values.Value, bool, bool) {
	target := types.Scalar(kind)
	exact := types.Equal(v.TypeOf(), target)
	promoted, ok := values.Promote(v, target, false)
	return promoted, exact, ok
}

// Fold implements the constant-folding contract for a single Impl: if
// every argument is constant, constFn computes the constant result;
// otherwise the call is kept symbolic as a values.FunctionCall carrying
// the (already promoted) arguments.
func Fold(name string, result types.Type, args []values.Value, constFn func([]values.Value) (values.Value, error)) (values.Value, error) {
	for _, a := range args {
		if !values.IsConstant(a) {
			return values.FunctionCall{Name: name, Args: args, ResultType: result}, nil
		}
	}
	return constFn(args)
}
