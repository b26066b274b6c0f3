package ast_test

import (
	"testing"

	"github.com/QuTech-Delft/libqasm-sub003/ast"
	"github.com/QuTech-Delft/libqasm-sub003/location"
)

func TestStatementNodesImplementStatement(t *testing.T) {
	var stmts []ast.Statement
	stmts = append(stmts,
		&ast.VariableDeclaration{},
		&ast.Assignment{},
		&ast.GateStatement{},
		&ast.InstructionStatement{},
	)
	if len(stmts) != 4 {
		t.Fatalf("got %d", len(stmts))
	}
}

func TestExpressionNodesImplementExpression(t *testing.T) {
	var exprs []ast.Expression
	exprs = append(exprs,
		&ast.Literal{},
		&ast.Identifier{},
		&ast.IndexExpr{},
		&ast.CallExpr{},
		&ast.UnaryExpr{},
		&ast.BinaryExpr{},
		&ast.TernaryExpr{},
	)
	if len(exprs) != 7 {
		t.Fatalf("got %d", len(exprs))
	}
}

func TestNodeCarriesLocation(t *testing.T) {
	id := &ast.Identifier{Name: "q"}
	span := location.AtPoint("f.cq", true, location.Point{Line: 2, Column: 1})
	id.SetLocation(span)
	got, ok := id.Location()
	if !ok || got != span {
		t.Fatalf("got %+v, %v", got, ok)
	}
}

func TestProgramHoldsStatements(t *testing.T) {
	p := &ast.Program{
		VersionMajor: 3,
		Statements: []ast.Statement{
			&ast.GateStatement{Name: "H", Operands: []ast.Expression{&ast.Identifier{Name: "q"}}},
		},
	}
	if len(p.Statements) != 1 {
		t.Fatalf("got %d statements", len(p.Statements))
	}
	gate := p.Statements[0].(*ast.GateStatement)
	if gate.Name != "H" {
		t.Fatalf("got %q", gate.Name)
	}
}
