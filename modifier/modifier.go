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

// Package modifier implements the three gate modifiers (inv, pow, ctrl) and
// the lowering of a modified gate into a composite-gate record: the
// underlying instruction name, the ordered modifier list (innermost first),
// and the operand list after every modifier's arity transformation.
package modifier

import (
	"github.com/QuTech-Delft/libqasm-sub003/types"
	"github.com/QuTech-Delft/libqasm-sub003/values"
)

// Kind discriminates the three gate modifiers.
type Kind int

const (
	Inv Kind = iota
	Pow
	Ctrl
)

func (k Kind) String() string {
	switch k {
	case Inv:
		return "inv"
	case Pow:
		return "pow"
	case Ctrl:
		return "ctrl"
	default:
		return "<unknown modifier>"
	}
}

// Modifier is one modifier as recorded in a lowered CompositeGate.
type Modifier struct {
	Kind  Kind
	Param values.Value // the pow exponent; unused for Inv and Ctrl
}

// Application is one modifier as written at a call site, outermost first:
// ctrl(pow(H, e)) is []Application{{Ctrl, controlQubit}, {Pow, e}}.
// Operand holds the pow exponent (for Pow) or the prepended control qubit
// (for Ctrl); it is unused for Inv.
type Application struct {
	Kind    Kind
	Operand values.Value
}

// CompositeGate is the lowered form of a (possibly) modified gate.
type CompositeGate struct {
	InstructionName string
	Modifiers       []Modifier // innermost first
	Operands        []values.Value
}

// ControlTargetNotDistinctError reports that two qubit operands of a
// modified gate refer to the same physical qubit.
type ControlTargetNotDistinctError struct {
	Name string
}

func (e *ControlTargetNotDistinctError) Error() string {
	return "control and target qubits of `" + e.Name + "` must be pairwise distinct"
}

// InvalidControlOperandError reports that a ctrl modifier was not given a
// qubit-typed operand.
type InvalidControlOperandError struct {
	Name string
}

func (e *InvalidControlOperandError) Error() string {
	return "`ctrl` modifier of `" + e.Name + "` requires a qubit operand"
}

// Lower applies applications (outermost first) to a gate named name with
// base operand list baseOperands, producing the composite-gate record.
// inv(G): operand/parameter lists unchanged.
// pow(G, e): operand list unchanged; attaches e as a float parameter.
// ctrl(G): prepends app.Operand (one qubit) to the operand list; control
// and target qubits must end up pairwise distinct.
func Lower(name string, applications []Application, baseOperands []values.Value) (*CompositeGate, error) {
	operands := append([]values.Value(nil), baseOperands...)
	mods := make([]Modifier, 0, len(applications))

	for i := len(applications) - 1; i >= 0; i-- {
		app := applications[i]
		switch app.Kind {
		case Inv:
			mods = append(mods, Modifier{Kind: Inv})
		case Pow:
			mods = append(mods, Modifier{Kind: Pow, Param: app.Operand})
		case Ctrl:
			if !isQubitOperand(app.Operand) {
				return nil, &InvalidControlOperandError{Name: name}
			}
			operands = append([]values.Value{app.Operand}, operands...)
			mods = append(mods, Modifier{Kind: Ctrl})
		}
	}

	if !allQubitsDistinct(operands) {
		return nil, &ControlTargetNotDistinctError{Name: name}
	}

	return &CompositeGate{InstructionName: name, Modifiers: mods, Operands: operands}, nil
}

func isQubitOperand(v values.Value) bool {
	return v.TypeOf().Element == types.Qubit
}

type qubitSite struct {
	variable interface{}
	index    int
}

func allQubitsDistinct(operands []values.Value) bool {
	seen := make(map[qubitSite]bool)
	for _, v := range operands {
		if v.TypeOf().Element != types.Qubit {
			continue
		}
		for _, site := range qubitSitesOf(v) {
			if seen[site] {
				return false
			}
			seen[site] = true
		}
	}
	return true
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
