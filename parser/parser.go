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

package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/QuTech-Delft/libqasm-sub003/ast"
	"github.com/QuTech-Delft/libqasm-sub003/diagnostics"
	"github.com/QuTech-Delft/libqasm-sub003/location"
)

// maxErrors bounds how many parse errors accumulate before giving up on
// the rest of the file, mirroring asm/parser.go's maxErrors threshold.
const maxErrors = 10

var typeKeywords = map[string]bool{
	"qubit": true, "bit": true, "bool": true, "int": true,
	"float": true, "complex": true, "string": true, "axis": true,
}

var binaryPrecedence = map[string]int{
	"==": 1, "!=": 1,
	"<": 2, "<=": 2, ">": 2, ">=": 2,
	"+": 3, "-": 3,
	"*": 4, "/": 4,
}

type parser struct {
	toks     []Token
	pos      int
	errs     diagnostics.List
	fileName string
	hasFile  bool
}

// Parse tokenizes and parses src into an ast.Program. Parse errors are
// returned as a diagnostics.List (empty when parsing succeeded); the
// returned Program may still be partially populated when errors are
// present, for whatever prefix parsed cleanly.
func Parse(src string, fileName string, hasFile bool) (prog *ast.Program, errs diagnostics.List) {
	toks, err := tokenize(strings.NewReader(src), fileName, hasFile)
	if err != nil {
		errs = errs.Append(diagnostics.New("internal error: " + err.Error()))
		return &ast.Program{}, errs
	}

	p := &parser{toks: toks, fileName: fileName, hasFile: hasFile}
	defer func() {
		if r := recover(); r != nil {
			p.errs = p.errs.Append(diagnostics.New(fmt.Sprintf("internal parser error: %v", r)))
			prog = &ast.Program{Statements: nil}
			errs = p.errs
		}
	}()

	prog = p.parseProgram()
	errs = p.errs
	return prog, errs
}

func (p *parser) cur() Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF sentinel
	}
	return p.toks[p.pos]
}

func (p *parser) advance() Token {
	t := p.cur()
	if t.Kind != TokEOF {
		p.pos++
	}
	return t
}

func (p *parser) atEnd() bool {
	t := p.cur()
	return t.Kind == TokEOF
}

func (p *parser) atStatementEnd() bool {
	t := p.cur()
	return t.Kind == TokNewline || t.Kind == TokEOF || (t.Kind == TokSymbol && t.Text == ";")
}

func (p *parser) span(pt location.Point) location.Span {
	return location.AtPoint(p.fileName, p.hasFile, pt)
}

func (p *parser) errorf(pt location.Point, format string, args ...interface{}) {
	p.errs = p.errs.Append(diagnostics.At(fmt.Sprintf(format, args...), p.span(pt)))
}

func (p *parser) abort() bool { return len(p.errs) >= maxErrors }

func (p *parser) skipSeparators() {
	for {
		t := p.cur()
		if t.Kind == TokNewline || (t.Kind == TokSymbol && t.Text == ";") {
			p.advance()
			continue
		}
		break
	}
}

// skipToNextStatement discards tokens until the next statement separator
// or EOF, the recovery strategy after a parse error inside one statement.
func (p *parser) skipToNextStatement() {
	for !p.atStatementEnd() {
		p.advance()
	}
	p.skipSeparators()
}

func (p *parser) expectSymbol(sym string) bool {
	t := p.cur()
	if t.Kind == TokSymbol && t.Text == sym {
		p.advance()
		return true
	}
	p.errorf(t.Pos, "expected %q, found %q", sym, tokenDescription(t))
	return false
}

func tokenDescription(t Token) string {
	if t.Kind == TokEOF {
		return "<end of file>"
	}
	if t.Kind == TokNewline {
		return "<newline>"
	}
	return t.Text
}

func (p *parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	p.skipSeparators()

	if t := p.cur(); t.Kind == TokIdent && t.Text == "version" {
		start := t.Pos
		p.advance()
		major, minor, ok := p.parseVersionNumber()
		if ok {
			prog.VersionMajor, prog.VersionMinor = major, minor
			prog.SetLocation(p.span(start))
		}
		if !p.atStatementEnd() {
			p.errorf(p.cur().Pos, "unexpected token %q after version header", tokenDescription(p.cur()))
		}
		p.skipSeparators()
	} else {
		p.errorf(t.Pos, "expected a \"version\" header, found %q", tokenDescription(t))
	}

	for !p.atEnd() && !p.abort() {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		p.skipSeparators()
	}
	return prog
}

func (p *parser) parseVersionNumber() (int, int, bool) {
	t := p.cur()
	if t.Kind != TokInt && t.Kind != TokFloat {
		p.errorf(t.Pos, "expected a version number, found %q", tokenDescription(t))
		return 0, 0, false
	}
	p.advance()
	if t.Kind == TokInt {
		n, err := strconv.Atoi(t.Text)
		if err != nil {
			p.errorf(t.Pos, "invalid version number %q", t.Text)
			return 0, 0, false
		}
		return n, 0, true
	}
	// scanner.Float lexed "M.m" as one token.
	var major, minor int
	if _, err := fmt.Sscanf(t.Text, "%d.%d", &major, &minor); err != nil {
		p.errorf(t.Pos, "invalid version number %q", t.Text)
		return 0, 0, false
	}
	return major, minor, true
}

func (p *parser) parseStatement() ast.Statement {
	t := p.cur()
	if t.Kind != TokIdent {
		p.errorf(t.Pos, "expected a statement, found %q", tokenDescription(t))
		p.skipToNextStatement()
		return nil
	}

	var stmt ast.Statement
	switch {
	case typeKeywords[t.Text]:
		stmt = p.parseDeclaration()
	case t.Text == "measure" || t.Text == "reset":
		stmt = p.parseInstructionStatement()
	default:
		stmt = p.parseAssignmentOrGate()
	}

	if stmt != nil && !p.atStatementEnd() {
		p.errorf(p.cur().Pos, "unexpected token %q at end of statement", tokenDescription(p.cur()))
		p.skipToNextStatement()
		return stmt
	}
	return stmt
}

func (p *parser) parseDeclaration() ast.Statement {
	start := p.cur().Pos
	typeName := p.advance().Text

	var sizeExpr ast.Expression
	if t := p.cur(); t.Kind == TokSymbol && t.Text == "[" {
		p.advance()
		sizeExpr = p.parseExpression()
		p.expectSymbol("]")
	}

	nameTok := p.cur()
	if nameTok.Kind != TokIdent {
		p.errorf(nameTok.Pos, "expected a variable name, found %q", tokenDescription(nameTok))
		p.skipToNextStatement()
		return nil
	}
	p.advance()

	var initializer ast.Expression
	if t := p.cur(); t.Kind == TokSymbol && t.Text == "=" {
		p.advance()
		initializer = p.parseExpression()
	}

	decl := &ast.VariableDeclaration{
		TypeName:    typeName,
		SizeExpr:    sizeExpr,
		Name:        nameTok.Text,
		Initializer: initializer,
	}
	decl.SetLocation(p.span(start))
	return decl
}

func (p *parser) parseInstructionStatement() ast.Statement {
	start := p.cur().Pos
	name := p.advance().Text
	var ops []ast.Expression
	if !p.atStatementEnd() {
		ops = p.parseOperandList()
	}
	stmt := &ast.InstructionStatement{Name: name, Operands: ops}
	stmt.SetLocation(p.span(start))
	return stmt
}

func (p *parser) parseAssignmentOrGate() ast.Statement {
	start := p.cur().Pos
	save := p.pos

	nameTok := p.advance()
	var lhs ast.Expression = p.identifierNode(nameTok)
	if t := p.cur(); t.Kind == TokSymbol && t.Text == "[" {
		lhs = p.parseIndexSuffix(lhs)
	}

	if t := p.cur(); t.Kind == TokSymbol && t.Text == "=" {
		p.advance()
		rhs := p.parseExpression()
		assign := &ast.Assignment{LHS: lhs, RHS: rhs}
		assign.SetLocation(p.span(start))
		return assign
	}

	// Not an assignment: rewind and reparse as a (possibly modified) gate
	// statement, since a gate name is never itself indexed.
	p.pos = save
	return p.parseGateStatement()
}

func (p *parser) identifierNode(t Token) *ast.Identifier {
	id := &ast.Identifier{Name: t.Text}
	id.SetLocation(p.span(t.Pos))
	return id
}

func (p *parser) parseGateStatement() ast.Statement {
	start := p.cur().Pos
	name, mods, ok := p.parseModifierChain()
	if !ok {
		p.skipToNextStatement()
		return nil
	}
	var ops []ast.Expression
	if !p.atStatementEnd() {
		ops = p.parseOperandList()
	}
	stmt := &ast.GateStatement{Name: name, Modifiers: mods, Operands: ops}
	stmt.SetLocation(p.span(start))
	return stmt
}

// parseModifierChain parses `inv(...)`, `pow(..., f)` and `ctrl(...)`
// wrapping a bare gate name, outermost modifier first, e.g.
// `ctrl(pow(H, 0.5))` yields ("H", [{ctrl}, {pow, 0.5}]).
func (p *parser) parseModifierChain() (string, []ast.Modifier, bool) {
	t := p.cur()
	if t.Kind != TokIdent {
		p.errorf(t.Pos, "expected a gate name or modifier, found %q", tokenDescription(t))
		return "", nil, false
	}

	if t.Text != "inv" && t.Text != "pow" && t.Text != "ctrl" {
		p.advance()
		return t.Text, nil, true
	}

	modName := t.Text
	p.advance()
	if !p.expectSymbol("(") {
		return "", nil, false
	}
	innerName, innerMods, ok := p.parseModifierChain()
	if !ok {
		return "", nil, false
	}

	var arg ast.Expression
	if modName == "pow" {
		if !p.expectSymbol(",") {
			return "", nil, false
		}
		arg = p.parseExpression()
	}
	if !p.expectSymbol(")") {
		return "", nil, false
	}

	mods := append([]ast.Modifier{{Name: modName, Arg: arg}}, innerMods...)
	return innerName, mods, true
}

func (p *parser) parseOperandList() []ast.Expression {
	var ops []ast.Expression
	ops = append(ops, p.parseExpression())
	for t := p.cur(); t.Kind == TokSymbol && t.Text == ","; t = p.cur() {
		p.advance()
		ops = append(ops, p.parseExpression())
	}
	return ops
}

// --- expressions ---------------------------------------------------------

func (p *parser) parseExpression() ast.Expression {
	cond := p.parseBinary(1)
	if t := p.cur(); t.Kind == TokSymbol && t.Text == "?" {
		start := t.Pos
		p.advance()
		then := p.parseExpression()
		p.expectSymbol(":")
		els := p.parseExpression()
		e := &ast.TernaryExpr{Cond: cond, Then: then, Else: els}
		e.SetLocation(p.span(start))
		return e
	}
	return cond
}

func (p *parser) parseBinary(minPrec int) ast.Expression {
	left := p.parseUnary()
	for {
		t := p.cur()
		if t.Kind != TokSymbol {
			return left
		}
		prec, ok := binaryPrecedence[t.Text]
		if !ok || prec < minPrec {
			return left
		}
		op := t.Text
		start := t.Pos
		p.advance()
		right := p.parseBinary(prec + 1)
		e := &ast.BinaryExpr{Op: op, Left: left, Right: right}
		e.SetLocation(p.span(start))
		left = e
	}
}

func (p *parser) parseUnary() ast.Expression {
	if t := p.cur(); t.Kind == TokSymbol && t.Text == "-" {
		p.advance()
		operand := p.parseUnary()
		e := &ast.UnaryExpr{Op: "-", Operand: operand}
		e.SetLocation(p.span(t.Pos))
		return e
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() ast.Expression {
	base := p.parsePrimary()
	for {
		if t := p.cur(); t.Kind == TokSymbol && t.Text == "[" {
			base = p.parseIndexSuffix(base)
			continue
		}
		break
	}
	return base
}

func (p *parser) parseIndexSuffix(base ast.Expression) ast.Expression {
	start := p.cur().Pos
	p.advance() // '['
	var entries []ast.IndexEntry
	entries = append(entries, p.parseIndexEntry())
	for t := p.cur(); t.Kind == TokSymbol && t.Text == ","; t = p.cur() {
		p.advance()
		entries = append(entries, p.parseIndexEntry())
	}
	p.expectSymbol("]")
	e := &ast.IndexExpr{Base: base, Entries: entries}
	e.SetLocation(p.span(start))
	return e
}

func (p *parser) parseIndexEntry() ast.IndexEntry {
	first := p.parseExpression()
	if t := p.cur(); t.Kind == TokSymbol && t.Text == ":" {
		p.advance()
		last := p.parseExpression()
		return ast.IndexEntry{First: first, Last: last}
	}
	return ast.IndexEntry{Single: first}
}

func (p *parser) parsePrimary() ast.Expression {
	t := p.cur()
	switch t.Kind {
	case TokInt:
		p.advance()
		n, err := strconv.ParseInt(t.Text, 10, 64)
		if err != nil {
			p.errorf(t.Pos, "invalid integer literal %q", t.Text)
		}
		lit := &ast.Literal{Kind: ast.LiteralInt, Int: n}
		lit.SetLocation(p.span(t.Pos))
		return lit
	case TokFloat:
		p.advance()
		f, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			p.errorf(t.Pos, "invalid float literal %q", t.Text)
		}
		lit := &ast.Literal{Kind: ast.LiteralFloat, Float: f}
		lit.SetLocation(p.span(t.Pos))
		return lit
	case TokString:
		p.advance()
		lit := &ast.Literal{Kind: ast.LiteralString, Str: t.Text}
		lit.SetLocation(p.span(t.Pos))
		return lit
	case TokIdent:
		return p.parseIdentOrCallOrBool(t)
	case TokSymbol:
		switch t.Text {
		case "(":
			p.advance()
			e := p.parseExpression()
			p.expectSymbol(")")
			return e
		case "[":
			return p.parseArrayOrMatrixLiteral()
		}
	}
	p.errorf(t.Pos, "unexpected token %q", tokenDescription(t))
	p.advance()
	lit := &ast.Literal{}
	lit.SetLocation(p.span(t.Pos))
	return lit
}

func (p *parser) parseIdentOrCallOrBool(t Token) ast.Expression {
	p.advance()
	if t.Text == "true" || t.Text == "false" {
		lit := &ast.Literal{Kind: ast.LiteralBool, Bool: t.Text == "true"}
		lit.SetLocation(p.span(t.Pos))
		return lit
	}
	if sym := p.cur(); sym.Kind == TokSymbol && sym.Text == "(" {
		p.advance()
		var args []ast.Expression
		if !(p.cur().Kind == TokSymbol && p.cur().Text == ")") {
			args = append(args, p.parseExpression())
			for a := p.cur(); a.Kind == TokSymbol && a.Text == ","; a = p.cur() {
				p.advance()
				args = append(args, p.parseExpression())
			}
		}
		p.expectSymbol(")")
		call := &ast.CallExpr{Name: t.Text, Args: args}
		call.SetLocation(p.span(t.Pos))
		return call
	}
	return p.identifierNode(t)
}

// parseArrayOrMatrixLiteral parses `[e, e, ...]` as a flat one-row literal
// or `[[e, e], [e, e], ...]` as a multi-row matrix literal.
func (p *parser) parseArrayOrMatrixLiteral() ast.Expression {
	start := p.cur().Pos
	p.advance() // '['

	if t := p.cur(); t.Kind == TokSymbol && t.Text == "]" {
		p.advance()
		lit := &ast.Literal{Kind: ast.LiteralMatrix}
		lit.SetLocation(p.span(start))
		return lit
	}

	nested := p.cur().Kind == TokSymbol && p.cur().Text == "["
	var rows [][]ast.Expression
	var flat []ast.Expression

	parseRow := func() []ast.Expression {
		p.advance() // '['
		var row []ast.Expression
		row = append(row, p.parseExpression())
		for t := p.cur(); t.Kind == TokSymbol && t.Text == ","; t = p.cur() {
			p.advance()
			row = append(row, p.parseExpression())
		}
		p.expectSymbol("]")
		return row
	}

	if nested {
		rows = append(rows, parseRow())
	} else {
		flat = append(flat, p.parseExpression())
	}

	for t := p.cur(); t.Kind == TokSymbol && t.Text == ","; t = p.cur() {
		p.advance()
		if nested {
			rows = append(rows, parseRow())
		} else {
			flat = append(flat, p.parseExpression())
		}
	}
	p.expectSymbol("]")

	var lit *ast.Literal
	if nested {
		lit = &ast.Literal{Kind: ast.LiteralMatrix, Rows: rows}
	} else {
		lit = &ast.Literal{Kind: ast.LiteralMatrix, Rows: [][]ast.Expression{flat}}
	}
	lit.SetLocation(p.span(start))
	return lit
}
