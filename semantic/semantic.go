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

// Package semantic defines the resolved tree the analyser produces: a
// version triple, a flat list of declared variables, and a flat ordered
// list of statements, each node carrying a resolved types.Type and/or
// values.Value plus an optional source span.
package semantic

import (
	"github.com/QuTech-Delft/libqasm-sub003/instruction"
	"github.com/QuTech-Delft/libqasm-sub003/location"
	"github.com/QuTech-Delft/libqasm-sub003/modifier"
	"github.com/QuTech-Delft/libqasm-sub003/values"
	"github.com/QuTech-Delft/libqasm-sub003/version"
)

// Program is the root of a successfully (or partially) analysed tree.
type Program struct {
	Version    version.Triple
	Variables  []*values.Variable
	Statements []Statement
}

// Statement is any resolved top-level construct.
type Statement interface {
	statementNode()
}

// DeclarationStatement records that a variable came into scope; its
// optional initializer is represented as a separate AssignmentStatement
// immediately following it in Program.Statements.
type DeclarationStatement struct {
	location.Node
	Variable *values.Variable
}

func (*DeclarationStatement) statementNode() {}

// AssignmentStatement binds a new right-hand-side value to an
// already-declared, assignable left-hand side.
type AssignmentStatement struct {
	location.Node
	LHS values.Value // VariableRef or IndexRef
	RHS values.Value
}

func (*AssignmentStatement) statementNode() {}

// GateStatement is a resolved (and modifier-lowered) gate application.
type GateStatement struct {
	location.Node
	Gate *modifier.CompositeGate
}

func (*GateStatement) statementNode() {}

// InstructionStatement is a resolved non-gate instruction (measure,
// reset).
type InstructionStatement struct {
	location.Node
	Resolved *instruction.Resolved
}

func (*InstructionStatement) statementNode() {}
