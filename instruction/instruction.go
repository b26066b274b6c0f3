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

// Package instruction implements the registry of overloadable instruction
// signatures (gates, measure, reset) and resolves a (name, operand values)
// call site to one registered overload, promoting operands along the way.
//
// Parameter-type code set (one character per expected operand):
//
//	code	type
//	b	Bool
//	i	Int
//	f	Float
//	c	Complex
//	s	String
//	a	Axis
//	Q	Qubit or QubitArray
//	B	Bit or BitArray
//	V	QubitArray only
//	W	BitArray only
//	u	unitary matrix (square Complex)
//	m	real matrix
//	n	complex matrix
//	j	JSON string
package instruction

import (
	"github.com/QuTech-Delft/libqasm-sub003/types"
	"github.com/QuTech-Delft/libqasm-sub003/values"
)

// Flags describes per-instruction behavioural toggles.
type Flags uint8

const (
	FlagConditional Flags = 1 << iota
	FlagParallel
	FlagReusedQubitsAllowed
	FlagIndexSizeMustMatch
)

func (f Flags) has(bit Flags) bool { return f&bit != 0 }

// Signature is one registered overload: a name, a parameter-type-string
// (one code per operand, from the table above), and flags. An empty
// Params string denotes zero operands.
type Signature struct {
	Name   string
	Params string
	Flags  Flags
}

// Registry is a multimap of instruction name to registered overloads.
type Registry struct {
	entries map[string][]Signature
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string][]Signature)}
}

// Add registers sig. A later call with the same Name+Params replaces the
// earlier overload.
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

// Resolved is a call site bound to one overload, with operands already
// promoted to that overload's parameter types.
type Resolved struct {
	Signature Signature
	Operands  []values.Value
}

// Error kinds returned by Resolve, distinguished by type so callers (the
// analyser) can render a specific message.
type UnknownInstructionError struct{ Name string }

func (e *UnknownInstructionError) Error() string { return "unknown instruction `" + e.Name + "`" }

type NoMatchingOverloadError struct{ Name string }

func (e *NoMatchingOverloadError) Error() string {
	return "no matching overload for instruction `" + e.Name + "`"
}

type AmbiguousOverloadError struct{ Name string }

func (e *AmbiguousOverloadError) Error() string {
	return "ambiguous overload for instruction `" + e.Name + "`"
}

type ReusedQubitError struct {
	Name  string
	Index int
}

func (e *ReusedQubitError) Error() string {
	return "instruction `" + e.Name + "` reuses qubit index"
}

type IndexSizeMismatchError struct {
	Name           string
	QubitCount     int
	BitCount       int
}

func (e *IndexSizeMismatchError) Error() string {
	return "instruction `" + e.Name + "` requires matching qubit and bit operand counts"
}

// Resolve gathers every entry under name, keeps the ones every operand
// promotes into, and picks the one needing fewest implicit promotions.
// A tie is reported as an AmbiguousOverloadError (see DESIGN.md's
// open-question decision for why ties are rejected at resolution time
// rather than broken by registration order).
func (r *Registry) Resolve(name string, operands []values.Value) (*Resolved, error) {
	candidates, ok := r.entries[name]
	if !ok || len(candidates) == 0 {
		return nil, &UnknownInstructionError{Name: name}
	}

	type viable struct {
		sig        Signature
		promoted   []values.Value
		promotions int
	}
	var best []viable

	for _, sig := range candidates {
		promoted, promotions, ok := tryBind(sig.Params, operands)
		if !ok {
			continue
		}
		best = append(best, viable{sig, promoted, promotions})
	}

	switch len(best) {
	case 0:
		return nil, &NoMatchingOverloadError{Name: name}
	case 1:
		if err := postChecks(best[0].sig, best[0].promoted); err != nil {
			return nil, err
		}
		return &Resolved{Signature: best[0].sig, Operands: best[0].promoted}, nil
	default:
		min := best[0].promotions
		minCount := 0
		var winner viable
		for _, v := range best {
			if v.promotions < min {
				min = v.promotions
			}
		}
		for _, v := range best {
			if v.promotions == min {
				minCount++
				winner = v
			}
		}
		if minCount != 1 {
			return nil, &AmbiguousOverloadError{Name: name}
		}
		if err := postChecks(winner.sig, winner.promoted); err != nil {
			return nil, err
		}
		return &Resolved{Signature: winner.sig, Operands: winner.promoted}, nil
	}
}

// tryBind attempts to bind every operand to params in order. Returns the
// promoted operand list, the number of operands that required an actual
// (non-identity) promotion, and whether binding succeeded.
func tryBind(params string, operands []values.Value) ([]values.Value, int, bool) {
	if len(params) != len(operands) {
		return nil, 0, false
	}
	out := make([]values.Value, len(operands))
	promotions := 0
	for i, code := range []byte(params) {
		v, exact, ok := matchParam(code, operands[i])
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

// matchParam binds one operand to one parameter code, returning the
// (possibly promoted) value, whether the match was exact (no promotion
// needed), and whether it succeeded at all.
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
	case 'Q':
		t := v.TypeOf()
		if t.Element == types.Qubit {
			// Exact only for a scalar qubit: a qubit array also binds here
			// (so single/array overloads of the same name both stay
			// viable), but counted as a promotion so a dedicated 'V'
			// overload for that same call site wins the tie.
			return v, !t.Array, true
		}
		return nil, false, false
	case 'B':
		t := v.TypeOf()
		if t.Element == types.Bit {
			return v, !t.Array, true
		}
		return nil, false, false
	case 'V':
		t := v.TypeOf()
		if t.Element == types.Qubit && t.Array {
			return v, true, true
		}
		return nil, false, false
	case 'W':
		t := v.TypeOf()
		if t.Element == types.Bit && t.Array {
			return v, true, true
		}
		return nil, false, false
	case 'u':
		m, ok := v.(values.ConstComplexMatrix)
		if !ok || !m.IsUnitarySquare() {
			return nil, false, false
		}
		return v, true, true
	case 'm':
		_, ok := v.(values.ConstRealMatrix)
		return v, true, ok
	case 'n':
		_, ok := v.(values.ConstComplexMatrix)
		return v, true, ok
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

// postChecks runs the independent, instruction-specific predicates
// (reused-qubit rejection, qubit/bit index-size matching) once an
// overload has been chosen.
func postChecks(sig Signature, operands []values.Value) error {
	if !sig.Flags.has(FlagReusedQubitsAllowed) {
		if idx, dup := firstReusedQubit(sig.Params, operands); dup {
			return &ReusedQubitError{Name: sig.Name, Index: idx}
		}
	}
	if sig.Flags.has(FlagIndexSizeMustMatch) {
		qc, bc := qubitBitCounts(sig.Params, operands)
		if qc != bc {
			return &IndexSizeMismatchError{Name: sig.Name, QubitCount: qc, BitCount: bc}
		}
	}
	return nil
}

type qubitSite struct {
	variable interface{}
	index    int
}

// firstReusedQubit scans every qubit-typed operand (codes Q, V) for a
// physical qubit index used more than once.
func firstReusedQubit(params string, operands []values.Value) (int, bool) {
	seen := make(map[qubitSite]bool)
	for i, code := range []byte(params) {
		if code != 'Q' && code != 'V' {
			continue
		}
		for _, site := range qubitSitesOf(operands[i]) {
			if seen[site] {
				return site.index, true
			}
			seen[site] = true
		}
	}
	return 0, false
}

func qubitSitesOf(v values.Value) []qubitSite {
	switch x := v.(type) {
	case values.VariableRef:
		if !x.Var.Type.IsArray() {
			return []qubitSite{{x.Var, 0}}
		}
		n := types.SizeOf(x.Var.Type)
		sites := make([]qubitSite, n)
		for i := range sites {
			sites[i] = qubitSite{x.Var, i}
		}
		return sites
	case values.IndexRef:
		sites := make([]qubitSite, len(x.Indices))
		for i, idx := range x.Indices {
			sites[i] = qubitSite{x.Var, idx}
		}
		return sites
	default:
		return nil
	}
}

// qubitBitCounts sums RangeOf over qubit-typed (Q, V) vs bit-typed (B, W)
// operands, per their declared parameter code rather than their own type.
func qubitBitCounts(params string, operands []values.Value) (qubits, bits int) {
	for i, code := range []byte(params) {
		switch code {
		case 'Q', 'V':
			qubits += operands[i].RangeOf()
		case 'B', 'W':
			bits += operands[i].RangeOf()
		}
	}
	return
}
