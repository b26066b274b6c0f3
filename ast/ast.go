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

// Package ast defines the syntactic tree the parser produces: one node
// type per surface construct of the cQASM 3.0 grammar (version header,
// variable declaration, assignment, gate/measure/reset statement, and the
// literal/identifier/index/call/unary/binary/ternary/matrix expression
// forms). Every node embeds location.Node so the analyser can attach a
// source span to any diagnostic it raises while visiting that node.
package ast

import "github.com/QuTech-Delft/libqasm-sub003/location"

// Program is the root of a parsed source file.
type Program struct {
	location.Node
	VersionMajor int
	VersionMinor int
	Statements   []Statement
}

// Statement is any top-level or block-level construct the parser produces.
type Statement interface {
	statementNode()
}

// VariableDeclaration is `<type>[<size>] <name> [= <initializer>]`.
type VariableDeclaration struct {
	location.Node
	TypeName    string
	SizeExpr    Expression // nil when the type is a bare scalar
	Name        string
	Initializer Expression // nil when there is no initializer
}

func (*VariableDeclaration) statementNode() {}

// Assignment is `<lhs> = <rhs>` written directly by the programmer
// (distinct from the synthetic assignment a declaration's initializer
// lowers to).
type Assignment struct {
	location.Node
	LHS Expression
	RHS Expression
}

func (*Assignment) statementNode() {}

// Modifier is one modifier application as written at a call site,
// outermost first: `ctrl(pow(H, e))` is [{Name: "ctrl"}, {Name: "pow", Arg: e}].
type Modifier struct {
	Name string
	Arg  Expression // nil for inv and ctrl's operand is carried on the call instead
}

// GateStatement is a (possibly modified) gate applied to operands, e.g.
// `ctrl(H) q[0], q[1]`.
type GateStatement struct {
	location.Node
	Name      string
	Modifiers []Modifier
	Operands  []Expression
}

func (*GateStatement) statementNode() {}

// InstructionStatement is a non-gate instruction call: `measure` or
// `reset`.
type InstructionStatement struct {
	location.Node
	Name     string
	Operands []Expression
}

func (*InstructionStatement) statementNode() {}

// Expression is any value-producing syntax form.
type Expression interface {
	expressionNode()
}

// Literal is a scalar or array/matrix literal as written in source.
type Literal struct {
	location.Node
	Kind  LiteralKind
	Bool  bool
	Int   int64
	Float float64
	Str   string
	Rows  [][]Expression // array/matrix literal rows; a flat array is one row
}

// LiteralKind discriminates Literal's payload.
type LiteralKind int

const (
	LiteralBool LiteralKind = iota
	LiteralInt
	LiteralFloat
	LiteralString
	LiteralMatrix
)

func (*Literal) expressionNode() {}

// Identifier is a bare name reference.
type Identifier struct {
	location.Node
	Name string
}

func (*Identifier) expressionNode() {}

// IndexEntry is one entry of an index list: either a single index
// expression or an inclusive range.
type IndexEntry struct {
	Single Expression // non-nil for a single-index entry
	First  Expression // non-nil for a range entry
	Last   Expression
}

// IndexExpr is `<base>[<entries>]`.
type IndexExpr struct {
	location.Node
	Base    Expression
	Entries []IndexEntry
}

func (*IndexExpr) expressionNode() {}

// CallExpr is a named function call `<name>(<args>)`.
type CallExpr struct {
	location.Node
	Name string
	Args []Expression
}

func (*CallExpr) expressionNode() {}

// UnaryExpr is a prefix operator applied to one operand, e.g. `-e`.
type UnaryExpr struct {
	location.Node
	Op      string
	Operand Expression
}

func (*UnaryExpr) expressionNode() {}

// BinaryExpr is an infix operator applied to two operands.
type BinaryExpr struct {
	location.Node
	Op    string
	Left  Expression
	Right Expression
}

func (*BinaryExpr) expressionNode() {}

// TernaryExpr is `<cond> ? <then> : <else>`.
type TernaryExpr struct {
	location.Node
	Cond Expression
	Then Expression
	Else Expression
}

func (*TernaryExpr) expressionNode() {}
