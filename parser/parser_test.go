package parser_test

import (
	"testing"

	"github.com/QuTech-Delft/libqasm-sub003/ast"
	"github.com/QuTech-Delft/libqasm-sub003/parser"
)

func TestParseMinimalAccept(t *testing.T) {
	prog, errs := parser.Parse("version 3.0\n", "t.cq", true)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if prog.VersionMajor != 3 || prog.VersionMinor != 0 {
		t.Fatalf("got version %d.%d", prog.VersionMajor, prog.VersionMinor)
	}
	if len(prog.Statements) != 0 {
		t.Fatalf("got %d statements, want 0", len(prog.Statements))
	}
}

func TestParseHadamardOnQubit(t *testing.T) {
	prog, errs := parser.Parse("version 3.0\nqubit q\nH q\n", "t.cq", true)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(prog.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(prog.Statements))
	}
	decl, ok := prog.Statements[0].(*ast.VariableDeclaration)
	if !ok || decl.TypeName != "qubit" || decl.Name != "q" {
		t.Fatalf("got %+v", prog.Statements[0])
	}
	gate, ok := prog.Statements[1].(*ast.GateStatement)
	if !ok || gate.Name != "H" || len(gate.Operands) != 1 {
		t.Fatalf("got %+v", prog.Statements[1])
	}
	id, ok := gate.Operands[0].(*ast.Identifier)
	if !ok || id.Name != "q" {
		t.Fatalf("got %+v", gate.Operands[0])
	}
}

func TestParseArrayDeclarationAndIndexedOperand(t *testing.T) {
	prog, errs := parser.Parse("version 3.0\nqubit[2] q\nH q[5]\n", "t.cq", true)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	sizeLit := decl.SizeExpr.(*ast.Literal)
	if sizeLit.Int != 2 {
		t.Fatalf("got size %d", sizeLit.Int)
	}
	gate := prog.Statements[1].(*ast.GateStatement)
	idx := gate.Operands[0].(*ast.IndexExpr)
	if len(idx.Entries) != 1 || idx.Entries[0].Single == nil {
		t.Fatalf("got %+v", idx)
	}
}

func TestParseAssignment(t *testing.T) {
	prog, errs := parser.Parse("version 3.0\nint i = 1\ni = i + 1\n", "t.cq", true)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(prog.Statements) != 2 {
		t.Fatalf("got %d statements", len(prog.Statements))
	}
	assign, ok := prog.Statements[1].(*ast.Assignment)
	if !ok {
		t.Fatalf("got %+v, want *ast.Assignment", prog.Statements[1])
	}
	bin, ok := assign.RHS.(*ast.BinaryExpr)
	if !ok || bin.Op != "+" {
		t.Fatalf("got %+v", assign.RHS)
	}
}

func TestParseCtrlModifier(t *testing.T) {
	prog, errs := parser.Parse("version 3.0\nqubit[3] q\nctrl(H) q[0], q[1]\n", "t.cq", true)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	gate := prog.Statements[1].(*ast.GateStatement)
	if gate.Name != "H" || len(gate.Modifiers) != 1 || gate.Modifiers[0].Name != "ctrl" {
		t.Fatalf("got %+v", gate)
	}
	if len(gate.Operands) != 2 {
		t.Fatalf("got %d operands", len(gate.Operands))
	}
}

func TestParsePowModifierCarriesArgument(t *testing.T) {
	prog, errs := parser.Parse("version 3.0\nqubit q\npow(Rx, 0.5) q\n", "t.cq", true)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	gate := prog.Statements[1].(*ast.GateStatement)
	if gate.Name != "Rx" || gate.Modifiers[0].Name != "pow" {
		t.Fatalf("got %+v", gate)
	}
	arg := gate.Modifiers[0].Arg.(*ast.Literal)
	if arg.Float != 0.5 {
		t.Fatalf("got %v", arg.Float)
	}
}

func TestParseNestedModifiers(t *testing.T) {
	prog, errs := parser.Parse("version 3.0\nqubit[3] q\nctrl(ctrl(H)) q[0], q[1], q[2]\n", "t.cq", true)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	gate := prog.Statements[1].(*ast.GateStatement)
	if gate.Name != "H" || len(gate.Modifiers) != 2 {
		t.Fatalf("got %+v", gate)
	}
}

func TestParseAxisLiteral(t *testing.T) {
	prog, errs := parser.Parse("version 3.0\naxis a = [0.0, 0.0, 0.0]\n", "t.cq", true)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	lit := decl.Initializer.(*ast.Literal)
	if lit.Kind != ast.LiteralMatrix || len(lit.Rows) != 1 || len(lit.Rows[0]) != 3 {
		t.Fatalf("got %+v", lit)
	}
}

func TestParseMeasureAndReset(t *testing.T) {
	prog, errs := parser.Parse("version 3.0\nqubit q\nbit b\nmeasure b, q\nreset\n", "t.cq", true)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	measure := prog.Statements[2].(*ast.InstructionStatement)
	if measure.Name != "measure" || len(measure.Operands) != 2 {
		t.Fatalf("got %+v", measure)
	}
	reset := prog.Statements[3].(*ast.InstructionStatement)
	if reset.Name != "reset" || len(reset.Operands) != 0 {
		t.Fatalf("got %+v", reset)
	}
}

func TestParseResetWithOperand(t *testing.T) {
	prog, errs := parser.Parse("version 3.0\nqubit q\nreset q\n", "t.cq", true)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	instr := prog.Statements[1].(*ast.InstructionStatement)
	if instr.Name != "reset" || len(instr.Operands) != 1 {
		t.Fatalf("got %+v", instr)
	}
}

func TestParseComments(t *testing.T) {
	prog, errs := parser.Parse("version 3.0 # header\n# a comment line\nqubit q # trailing\nH q\n", "t.cq", true)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(prog.Statements) != 2 {
		t.Fatalf("got %d statements", len(prog.Statements))
	}
}

func TestParseMissingVersionHeaderIsError(t *testing.T) {
	_, errs := parser.Parse("qubit q\n", "t.cq", true)
	if len(errs) == 0 {
		t.Fatal("expected a parse error for a missing version header")
	}
}

func TestParseSemicolonSeparatesStatements(t *testing.T) {
	prog, errs := parser.Parse("version 3.0\nqubit q; H q\n", "t.cq", true)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(prog.Statements) != 2 {
		t.Fatalf("got %d statements", len(prog.Statements))
	}
}

func TestParseTernaryExpression(t *testing.T) {
	prog, errs := parser.Parse("version 3.0\nint i = true ? 1 : 2\n", "t.cq", true)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	tern, ok := decl.Initializer.(*ast.TernaryExpr)
	if !ok {
		t.Fatalf("got %+v", decl.Initializer)
	}
	if _, ok := tern.Cond.(*ast.Literal); !ok {
		t.Fatalf("got %+v", tern.Cond)
	}
}

func TestParseFunctionCall(t *testing.T) {
	prog, errs := parser.Parse("version 3.0\nfloat f = sin(1.5)\n", "t.cq", true)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	decl := prog.Statements[0].(*ast.VariableDeclaration)
	call, ok := decl.Initializer.(*ast.CallExpr)
	if !ok || call.Name != "sin" || len(call.Args) != 1 {
		t.Fatalf("got %+v", decl.Initializer)
	}
}
