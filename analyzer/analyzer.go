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

// Package analyzer implements the semantic analyser: a depth-first walk of
// an ast.Program that produces a semantic.Program, orchestrating the scope
// stack, the type and value lattices, and the instruction/modifier/function
// registries. Every visit method recovers from the errors its own construct
// can raise, records them, and keeps walking; only a true tree-shape
// violation aborts the remainder of the walk.
package analyzer

import (
	"fmt"
	"math"

	"github.com/QuTech-Delft/libqasm-sub003/ast"
	"github.com/QuTech-Delft/libqasm-sub003/diagnostics"
	"github.com/QuTech-Delft/libqasm-sub003/function"
	"github.com/QuTech-Delft/libqasm-sub003/instruction"
	"github.com/QuTech-Delft/libqasm-sub003/location"
	"github.com/QuTech-Delft/libqasm-sub003/modifier"
	"github.com/QuTech-Delft/libqasm-sub003/scope"
	"github.com/QuTech-Delft/libqasm-sub003/semantic"
	"github.com/QuTech-Delft/libqasm-sub003/types"
	"github.com/QuTech-Delft/libqasm-sub003/values"
	"github.com/QuTech-Delft/libqasm-sub003/version"
)

// Option configures an Analyzer at construction time, mirroring vm.Option.
type Option func(*Analyzer) error

// WithInstructions overrides the default instruction registry.
func WithInstructions(reg *instruction.Registry) Option {
	return func(a *Analyzer) error {
		a.instructions = reg
		return nil
	}
}

// WithFunctions overrides the default function registry.
func WithFunctions(reg *function.Registry) Option {
	return func(a *Analyzer) error {
		a.functions = reg
		return nil
	}
}

// Analyzer translates a parsed ast.Program into a semantic.Program.
type Analyzer struct {
	apiVersion   version.Triple
	scopes       *scope.Stack
	instructions *instruction.Registry
	functions    *function.Registry
	variables    []*values.Variable
	errs         diagnostics.List
}

// New builds an Analyzer bound to apiVersion, seeding the global scope with
// the predefined constants (pi, eu, tau, im) and the default
// instruction/function registries unless an Option overrides them.
func New(apiVersion version.Triple, opts ...Option) (*Analyzer, error) {
	a := &Analyzer{apiVersion: apiVersion, scopes: scope.New()}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	if a.instructions == nil {
		a.instructions = instruction.DefaultRegistry()
	}
	if a.functions == nil {
		a.functions = function.DefaultRegistry()
	}
	seedConstants(a.scopes)
	return a, nil
}

func seedConstants(s *scope.Stack) {
	constants := []struct {
		name string
		v    values.Value
	}{
		{"pi", values.ConstReal(math.Pi)},
		{"eu", values.ConstReal(math.E)},
		{"tau", values.ConstReal(2 * math.Pi)},
		{"im", values.ConstComplex(complex(0, 1))},
	}
	for _, c := range constants {
		if err := s.AddMapping(c.name, c.v); err != nil {
			panic(fmt.Sprintf("analyzer: predefined constant %q could not be seeded: %v", c.name, err))
		}
	}
}

// Analyze walks prog and returns the resulting semantic tree together with
// every diagnostic raised along the way. A declared version exceeding the
// analyser's API version short-circuits with a single error and an empty
// root.
func (a *Analyzer) Analyze(prog *ast.Program) (result *semantic.Program, errs diagnostics.List) {
	declared := version.Triple{Major: prog.VersionMajor, Minor: prog.VersionMinor}

	if declared.Compare(a.apiVersion) > 0 {
		a.errs = a.errs.Append(diagnostics.New(fmt.Sprintf(
			"program declares version %s, which exceeds the analyser's supported version %s",
			declared, a.apiVersion)))
		return &semantic.Program{Version: declared}, a.errs
	}

	defer func() {
		if r := recover(); r != nil {
			a.errs = a.errs.Append(diagnostics.New(fmt.Sprintf("internal analyser error: %v", r)))
			result = &semantic.Program{Version: declared, Variables: a.variables, Statements: a.statementsSoFar()}
			errs = a.errs
		}
	}()

	for _, stmt := range prog.Statements {
		a.visitStatement(stmt)
	}

	return &semantic.Program{
		Version:    declared,
		Variables:  a.variables,
		Statements: a.statementsSoFar(),
	}, a.errs
}

func (a *Analyzer) statementsSoFar() []semantic.Statement {
	block := a.scopes.CurrentBlock()
	out := make([]semantic.Statement, 0, len(block.Statements))
	for _, s := range block.Statements {
		out = append(out, s.(semantic.Statement))
	}
	return out
}

// fail records err as a diagnostic, attaching node's source location when
// node carries one and the diagnostic does not already have one.
func (a *Analyzer) fail(err error, node interface{}) {
	d := diagnostics.New(err.Error())
	if carrier, ok := node.(location.Carrier); ok {
		d.Context(carrier)
	}
	a.errs = a.errs.Append(d)
}

// locatable is implemented by every semantic.Statement (they all embed
// location.Node), used by emit to stamp a location without a type switch
// over every concrete statement type.
type locatable interface {
	SetLocation(location.Span)
}

// emit appends stmt to the current scope's block, widening its span, and
// stamps stmt's own location from node when node carries one.
func (a *Analyzer) emit(stmt semantic.Statement, node ast.Statement) {
	carrier, ok := node.(location.Carrier)
	if !ok {
		a.scopes.AddStatement(stmt, location.Span{}, false)
		return
	}
	loc, has := carrier.Location()
	if has {
		if lv, ok := stmt.(locatable); ok {
			lv.SetLocation(loc)
		}
	}
	a.scopes.AddStatement(stmt, loc, has)
}

// --- statements ----------------------------------------------------------

func (a *Analyzer) visitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VariableDeclaration:
		a.visitDeclaration(s)
	case *ast.Assignment:
		a.visitAssignment(s)
	case *ast.GateStatement:
		a.visitGate(s)
	case *ast.InstructionStatement:
		a.visitInstruction(s)
	default:
		panic(fmt.Sprintf("analyzer: unhandled statement node %T", stmt))
	}
}

// visitDeclaration implements initialiser-lowering: the initialiser is
// evaluated before the name is registered, so `int i = i`
// is rejected as an undefined name; the declaration is still recorded even
// when the initialiser fails, so later statements can still refer to it.
func (a *Analyzer) visitDeclaration(decl *ast.VariableDeclaration) {
	kind, ok := kindOf(decl.TypeName)
	if !ok {
		a.fail(fmt.Errorf("unknown type `%s`", decl.TypeName), decl)
		return
	}

	semType := types.Scalar(kind)
	if decl.SizeExpr != nil {
		sizeVal, err := a.evalExpression(decl.SizeExpr)
		if err != nil {
			a.fail(err, decl)
			return
		}
		size, ok := asPositiveInt(sizeVal)
		if !ok {
			a.fail(fmt.Errorf("array size must be a positive integer constant"), decl)
			return
		}
		switch kind {
		case types.Qubit, types.Bit, types.Bool, types.Int, types.Float:
		default:
			a.fail(fmt.Errorf("type `%s` cannot be an array element", decl.TypeName), decl)
			return
		}
		semType = types.ArrayOf(kind, size)
	}

	var initVal values.Value
	haveInit := false
	if decl.Initializer != nil {
		v, err := a.evalExpression(decl.Initializer)
		if err != nil {
			a.fail(err, decl)
		} else {
			initVal, haveInit = v, true
		}
	}

	variable := &values.Variable{Name: decl.Name, Type: semType.AsAssignable()}
	if loc, has := decl.Location(); has {
		variable.Loc, variable.Has = loc, has
	}

	if err := a.scopes.AddMapping(decl.Name, values.VariableRef{Var: variable}); err != nil {
		a.fail(err, decl)
		return
	}
	a.variables = append(a.variables, variable)
	a.emit(&semantic.DeclarationStatement{Variable: variable}, decl)

	if !haveInit {
		return
	}
	promoted, err := a.applyAssignment(values.VariableRef{Var: variable}, initVal)
	if err != nil {
		a.fail(err, decl)
		return
	}
	a.emit(&semantic.AssignmentStatement{LHS: values.VariableRef{Var: variable}, RHS: promoted}, decl)
}

func (a *Analyzer) visitAssignment(stmt *ast.Assignment) {
	lhs, err := a.evalExpression(stmt.LHS)
	if err != nil {
		a.fail(err, stmt)
		return
	}
	rhs, err := a.evalExpression(stmt.RHS)
	if err != nil {
		a.fail(err, stmt)
		return
	}
	promoted, err := a.applyAssignment(lhs, rhs)
	if err != nil {
		a.fail(err, stmt)
		return
	}
	a.emit(&semantic.AssignmentStatement{LHS: lhs, RHS: promoted}, stmt)
}

// applyAssignment implements the common assignment rule, shared by a
// declaration's synthetic initialiser assignment and an explicit
// ast.Assignment: assignability, range match, promotion, and the
// axis-all-zero rejection.
func (a *Analyzer) applyAssignment(lhs, rhs values.Value) (values.Value, error) {
	target := lhs.TypeOf()
	if !target.Assignable {
		return nil, fmt.Errorf("left-hand side is not assignable")
	}

	if target.Element == types.Axis && !target.Array {
		if axis, ok := toAxis(rhs); ok {
			rhs = axis
		}
	}

	if lhs.RangeOf() != rhs.RangeOf() {
		return nil, fmt.Errorf("size mismatch: left-hand side has range %d, right-hand side has range %d",
			lhs.RangeOf(), rhs.RangeOf())
	}

	promoted, ok := values.Promote(rhs, target, false)
	if !ok {
		return nil, fmt.Errorf("cannot assign a value of type %s to a variable of type %s", rhs.TypeOf(), target)
	}

	if target.Element == types.Axis && values.IsConstant(promoted) {
		if values.CheckAllOfArrayValues(promoted, values.IsZero) {
			return nil, fmt.Errorf("an axis value may not have all three components zero")
		}
	}

	return promoted, nil
}

// visitGate implements gate-modifier lowering: the leading N operands
// (N = number of ctrl modifiers) are peeled off as the
// ctrl applications' operands, outermost modifier claiming the first
// operand, and the remainder is resolved against the instruction registry
// under the gate's own name before modifier.Lower applies every modifier.
func (a *Analyzer) visitGate(stmt *ast.GateStatement) {
	operands, err := a.evalOperands(stmt.Operands)
	if err != nil {
		a.fail(err, stmt)
		return
	}

	ctrlCount := 0
	for _, m := range stmt.Modifiers {
		if m.Name == "ctrl" {
			ctrlCount++
		}
	}
	if ctrlCount > len(operands) {
		a.fail(fmt.Errorf("`%s` has fewer operands than its `ctrl` modifiers require", stmt.Name), stmt)
		return
	}
	controlOperands, baseOperands := operands[:ctrlCount], operands[ctrlCount:]

	applications := make([]modifier.Application, 0, len(stmt.Modifiers))
	ctrlIdx := 0
	for _, m := range stmt.Modifiers {
		switch m.Name {
		case "inv":
			applications = append(applications, modifier.Application{Kind: modifier.Inv})
		case "pow":
			argVal, err := a.evalExpression(m.Arg)
			if err != nil {
				a.fail(err, stmt)
				return
			}
			promoted, ok := values.Promote(argVal, types.Scalar(types.Float), false)
			if !ok {
				a.fail(fmt.Errorf("`pow` modifier parameter must be a float"), stmt)
				return
			}
			applications = append(applications, modifier.Application{Kind: modifier.Pow, Operand: promoted})
		case "ctrl":
			applications = append(applications, modifier.Application{Kind: modifier.Ctrl, Operand: controlOperands[ctrlIdx]})
			ctrlIdx++
		default:
			a.fail(fmt.Errorf("unknown gate modifier `%s`", m.Name), stmt)
			return
		}
	}

	resolved, err := a.instructions.Resolve(stmt.Name, baseOperands)
	if err != nil {
		a.fail(err, stmt)
		return
	}

	gate, err := modifier.Lower(stmt.Name, applications, resolved.Operands)
	if err != nil {
		a.fail(err, stmt)
		return
	}

	a.emit(&semantic.GateStatement{Gate: gate}, stmt)
}

func (a *Analyzer) visitInstruction(stmt *ast.InstructionStatement) {
	operands, err := a.evalOperands(stmt.Operands)
	if err != nil {
		a.fail(err, stmt)
		return
	}
	resolved, err := a.instructions.Resolve(stmt.Name, operands)
	if err != nil {
		a.fail(err, stmt)
		return
	}
	a.emit(&semantic.InstructionStatement{Resolved: resolved}, stmt)
}

func (a *Analyzer) evalOperands(exprs []ast.Expression) ([]values.Value, error) {
	out := make([]values.Value, len(exprs))
	for i, e := range exprs {
		v, err := a.evalExpression(e)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// --- expressions -----------------------------------------------------------

func (a *Analyzer) evalExpression(expr ast.Expression) (values.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return a.evalLiteral(e)
	case *ast.Identifier:
		return a.scopes.Resolve(e.Name)
	case *ast.IndexExpr:
		return a.evalIndex(e)
	case *ast.CallExpr:
		return a.evalCall(e)
	case *ast.UnaryExpr:
		return a.evalUnary(e)
	case *ast.BinaryExpr:
		return a.evalBinary(e)
	case *ast.TernaryExpr:
		return a.evalTernary(e)
	default:
		panic(fmt.Sprintf("analyzer: unhandled expression node %T", expr))
	}
}

func (a *Analyzer) evalLiteral(lit *ast.Literal) (values.Value, error) {
	switch lit.Kind {
	case ast.LiteralBool:
		return values.ConstBool(lit.Bool), nil
	case ast.LiteralInt:
		return values.ConstInt(lit.Int), nil
	case ast.LiteralFloat:
		return values.ConstReal(lit.Float), nil
	case ast.LiteralString:
		return values.ConstString(lit.Str), nil
	case ast.LiteralMatrix:
		return a.evalMatrixLiteral(lit)
	default:
		panic(fmt.Sprintf("analyzer: unhandled literal kind %v", lit.Kind))
	}
}

// evalIndex implements index-list semantics: the base must resolve to
// an array-typed variable reference; each entry folds to
// constant Int indices bounds-checked against the declared size, with a
// range entry expanding to its inclusive enumeration. Order is preserved
// and duplicates are left for the instruction's reused-qubit check.
func (a *Analyzer) evalIndex(expr *ast.IndexExpr) (values.Value, error) {
	baseVal, err := a.evalExpression(expr.Base)
	if err != nil {
		return nil, err
	}
	ref, ok := baseVal.(values.VariableRef)
	if !ok || !ref.Var.Type.IsArray() {
		return nil, fmt.Errorf("indexation requires an array-typed variable reference")
	}
	size := types.SizeOf(ref.Var.Type)

	var indices []int
	for _, entry := range expr.Entries {
		if entry.Single != nil {
			idx, err := a.evalConstIndex(entry.Single, size)
			if err != nil {
				return nil, err
			}
			indices = append(indices, idx)
			continue
		}
		first, err := a.evalConstIndex(entry.First, size)
		if err != nil {
			return nil, err
		}
		last, err := a.evalConstIndex(entry.Last, size)
		if err != nil {
			return nil, err
		}
		if first > last {
			return nil, fmt.Errorf("range start %d exceeds range end %d", first, last)
		}
		for i := first; i <= last; i++ {
			indices = append(indices, i)
		}
	}
	return values.IndexRef{Var: ref.Var, Indices: indices}, nil
}

func (a *Analyzer) evalConstIndex(expr ast.Expression, size int) (int, error) {
	v, err := a.evalExpression(expr)
	if err != nil {
		return 0, err
	}
	ci, ok := v.(values.ConstInt)
	if !ok {
		return 0, fmt.Errorf("index must be a constant integer")
	}
	n := int(ci)
	if n < 0 || n >= size {
		return 0, fmt.Errorf("index %d out of range [0, %d)", n, size)
	}
	return n, nil
}

func (a *Analyzer) evalCall(expr *ast.CallExpr) (values.Value, error) {
	args, err := a.evalOperands(expr.Args)
	if err != nil {
		return nil, err
	}
	return a.functions.Resolve(expr.Name, args)
}

func (a *Analyzer) evalUnary(expr *ast.UnaryExpr) (values.Value, error) {
	v, err := a.evalExpression(expr.Operand)
	if err != nil {
		return nil, err
	}
	return a.functions.Resolve("operator"+expr.Op, []values.Value{v})
}

func (a *Analyzer) evalBinary(expr *ast.BinaryExpr) (values.Value, error) {
	l, err := a.evalExpression(expr.Left)
	if err != nil {
		return nil, err
	}
	r, err := a.evalExpression(expr.Right)
	if err != nil {
		return nil, err
	}
	return a.functions.Resolve("operator"+expr.Op, []values.Value{l, r})
}

func (a *Analyzer) evalTernary(expr *ast.TernaryExpr) (values.Value, error) {
	c, err := a.evalExpression(expr.Cond)
	if err != nil {
		return nil, err
	}
	t, err := a.evalExpression(expr.Then)
	if err != nil {
		return nil, err
	}
	e, err := a.evalExpression(expr.Else)
	if err != nil {
		return nil, err
	}
	return a.functions.Resolve("operator?:", []values.Value{c, t, e})
}

// evalMatrixLiteral requires rectangularity and a homogeneous element
// type, preferring Real over Complex when both
// would type-check. A one-row literal ([a, b, c]) produces a flat array
// constant, except that complex elements produce a one-row complex matrix
// constant; more than one row produces a matrix constant.
func (a *Analyzer) evalMatrixLiteral(lit *ast.Literal) (values.Value, error) {
	rows := make([][]values.Value, len(lit.Rows))
	for i, row := range lit.Rows {
		vals := make([]values.Value, len(row))
		for j, e := range row {
			v, err := a.evalExpression(e)
			if err != nil {
				return nil, err
			}
			if !values.IsConstant(v) {
				return nil, fmt.Errorf("array/matrix literal elements must be constant")
			}
			vals[j] = v
		}
		rows[i] = vals
	}
	return buildArrayOrMatrix(rows)
}

// --- literal helpers ---------------------------------------------------

func kindOf(name string) (types.Kind, bool) {
	switch name {
	case "qubit":
		return types.Qubit, true
	case "bit":
		return types.Bit, true
	case "bool":
		return types.Bool, true
	case "int":
		return types.Int, true
	case "float":
		return types.Float, true
	case "complex":
		return types.Complex, true
	case "string":
		return types.String, true
	case "axis":
		return types.Axis, true
	default:
		return 0, false
	}
}

func asPositiveInt(v values.Value) (int, bool) {
	ci, ok := v.(values.ConstInt)
	if !ok || ci <= 0 {
		return 0, false
	}
	return int(ci), true
}

// toAxis converts a 3-element real/int array constant into a ConstAxis,
// the form a literal `[x, y, z]` takes on once assigned to an Axis
// variable.
func toAxis(v values.Value) (values.ConstAxis, bool) {
	switch x := v.(type) {
	case values.ConstRealArray:
		if len(x) != 3 {
			return values.ConstAxis{}, false
		}
		return values.ConstAxis{x[0], x[1], x[2]}, true
	case values.ConstIntArray:
		if len(x) != 3 {
			return values.ConstAxis{}, false
		}
		return values.ConstAxis{float64(x[0]), float64(x[1]), float64(x[2])}, true
	default:
		return values.ConstAxis{}, false
	}
}

func numericRank(k types.Kind) int {
	switch k {
	case types.Bool:
		return 0
	case types.Int:
		return 1
	case types.Float:
		return 2
	case types.Complex:
		return 3
	default:
		return -1
	}
}

// commonNumericKind finds the narrowest kind in Bool<=Int<=Float<=Complex
// that every value in vals promotes into, or reports failure when one of
// them falls outside the numeric chain (String, Axis, or an array).
func commonNumericKind(vals []values.Value) (types.Kind, bool) {
	if len(vals) == 0 {
		return 0, false
	}
	best := types.Bool
	for _, v := range vals {
		t := v.TypeOf()
		if t.Array {
			return 0, false
		}
		if numericRank(t.Element) < 0 {
			return 0, false
		}
		if numericRank(t.Element) > numericRank(best) {
			best = t.Element
		}
	}
	return best, true
}

func buildArrayOrMatrix(rows [][]values.Value) (values.Value, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("array/matrix literal must not be empty")
	}
	cols := len(rows[0])
	for _, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("array/matrix literal is not rectangular")
		}
	}
	if len(rows) == 1 {
		return buildFlatArray(rows[0])
	}
	return buildMatrix(rows)
}

func buildFlatArray(row []values.Value) (values.Value, error) {
	kind, ok := commonNumericKind(row)
	if !ok {
		return nil, fmt.Errorf("array literal elements must share a common scalar type")
	}
	switch kind {
	case types.Bool:
		out := make(values.ConstBoolArray, len(row))
		for i, v := range row {
			out[i] = bool(v.(values.ConstBool))
		}
		return out, nil
	case types.Int:
		out := make(values.ConstIntArray, len(row))
		for i, v := range row {
			p, ok := values.Promote(v, types.Scalar(types.Int), false)
			if !ok {
				return nil, fmt.Errorf("cannot unify array literal element types")
			}
			out[i] = int64(p.(values.ConstInt))
		}
		return out, nil
	case types.Float:
		out := make(values.ConstRealArray, len(row))
		for i, v := range row {
			p, ok := values.Promote(v, types.Scalar(types.Float), false)
			if !ok {
				return nil, fmt.Errorf("cannot unify array literal element types")
			}
			out[i] = float64(p.(values.ConstReal))
		}
		return out, nil
	default: // Complex
		data := make([]complex128, len(row))
		for i, v := range row {
			p, ok := values.Promote(v, types.Scalar(types.Complex), false)
			if !ok {
				return nil, fmt.Errorf("cannot unify array literal element types")
			}
			data[i] = complex128(p.(values.ConstComplex))
		}
		return values.ConstComplexMatrix{Rows: 1, Cols: len(data), Data: data}, nil
	}
}

func buildMatrix(rows [][]values.Value) (values.Value, error) {
	flat := make([]values.Value, 0, len(rows)*len(rows[0]))
	for _, row := range rows {
		flat = append(flat, row...)
	}
	kind, ok := commonNumericKind(flat)
	if !ok || kind == types.Bool {
		return nil, fmt.Errorf("matrix literal elements must share a common real or complex scalar type")
	}

	nrows, ncols := len(rows), len(rows[0])
	if kind == types.Complex {
		data := make([]complex128, 0, nrows*ncols)
		for _, row := range rows {
			for _, v := range row {
				p, ok := values.Promote(v, types.Scalar(types.Complex), false)
				if !ok {
					return nil, fmt.Errorf("cannot unify matrix literal element types")
				}
				data = append(data, complex128(p.(values.ConstComplex)))
			}
		}
		return values.ConstComplexMatrix{Rows: nrows, Cols: ncols, Data: data}, nil
	}

	data := make([]float64, 0, nrows*ncols)
	for _, row := range rows {
		for _, v := range row {
			p, ok := values.Promote(v, types.Scalar(types.Float), false)
			if !ok {
				return nil, fmt.Errorf("cannot unify matrix literal element types")
			}
			data = append(data, float64(p.(values.ConstReal)))
		}
	}
	return values.ConstRealMatrix{Rows: nrows, Cols: ncols, Data: data}, nil
}
