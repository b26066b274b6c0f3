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

package instruction

// unitaryGates is the set of single-qubit gates taking one Qubit operand
// and no parameter.
var unitaryGates = []string{
	"H", "I", "X", "Y", "Z", "S", "Sdag", "T", "Tdag", "X90", "mX90", "Y90", "mY90",
}

// parametricGates is the set of single-qubit gates taking one Qubit
// operand plus one Float parameter.
var parametricGates = []string{"Rx", "Ry", "Rz"}

// DefaultRegistry returns the registry of the default cQASM 3.0
// instruction set: the single-qubit unitaries and their parametric
// variants, the two-qubit unitaries (each overloaded across
// scalar/array qubit operands), the parametric two-qubit gates, and
// the non-unitary measure/reset instructions.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	for _, name := range unitaryGates {
		r.Add(Signature{Name: name, Params: "Q"})
	}
	for _, name := range parametricGates {
		r.Add(Signature{Name: name, Params: "Qf"})
	}

	for _, name := range []string{"CNOT", "CZ"} {
		r.Add(Signature{Name: name, Params: "QQ"})
		r.Add(Signature{Name: name, Params: "QV"})
		r.Add(Signature{Name: name, Params: "VQ"})
		r.Add(Signature{Name: name, Params: "VV"})
	}

	r.Add(Signature{Name: "CR", Params: "QQf"})
	r.Add(Signature{Name: "CRk", Params: "QQi"})

	r.Add(Signature{Name: "measure", Params: "BQ", Flags: FlagIndexSizeMustMatch})
	r.Add(Signature{Name: "measure", Params: "WV", Flags: FlagIndexSizeMustMatch})
	r.Add(Signature{Name: "measure", Params: "BV", Flags: FlagIndexSizeMustMatch})
	r.Add(Signature{Name: "measure", Params: "WQ", Flags: FlagIndexSizeMustMatch})

	r.Add(Signature{Name: "reset", Params: ""})
	r.Add(Signature{Name: "reset", Params: "Q"})
	r.Add(Signature{Name: "reset", Params: "V"})

	return r
}
