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

// Package parser tokenizes and parses cQASM 3.0 source text into an
// ast.Program, using text/scanner configured with a custom IsIdentRune
// and position tracking; `#`-to-end-of-line comments are consumed
// directly from the underlying scanner.Scanner rather than configured
// declaratively.
package parser

import (
	"io"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/QuTech-Delft/libqasm-sub003/location"
)

// TokenKind discriminates a lexed token.
type TokenKind int

const (
	TokIdent TokenKind = iota
	TokInt
	TokFloat
	TokString
	TokSymbol
	TokNewline
	TokEOF
)

// Token is one lexed unit with its source position.
type Token struct {
	Kind TokenKind
	Text string
	Pos  location.Point
}

// isIdentRune allows letters, digits and underscore, the conventional
// identifier character set for the surface grammar.
func isIdentRune(ch rune, i int) bool {
	return ch == '_' || unicode.IsLetter(ch) || (i > 0 && unicode.IsDigit(ch))
}

// tokenize runs the whole source through text/scanner up front and
// returns it as a random-access token slice, so the recursive-descent
// parser below can backtrack (save/restore an index) when disambiguating
// assignment from gate statements without re-lexing.
func tokenize(r io.Reader, fileName string, hasFile bool) ([]Token, error) {
	var s scanner.Scanner
	s.Init(r)
	s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats | scanner.ScanStrings
	s.Whitespace = 1<<'\t' | 1<<'\r' | 1<<' '
	s.IsIdentRune = isIdentRune

	var toks []Token
	for {
		tok := s.Scan()
		pos := location.Point{Line: s.Position.Line, Column: s.Position.Column}
		if pos.Line == 0 {
			pos = location.Point{Line: s.Pos().Line, Column: s.Pos().Column}
		}
		switch tok {
		case scanner.EOF:
			toks = append(toks, Token{Kind: TokEOF, Pos: pos})
			return toks, nil
		case '#':
			for {
				ch := s.Peek()
				if ch == '\n' || ch == scanner.EOF {
					break
				}
				s.Next()
			}
			continue
		case '\n':
			toks = append(toks, Token{Kind: TokNewline, Text: "\n", Pos: pos})
			continue
		case scanner.Ident:
			toks = append(toks, Token{Kind: TokIdent, Text: s.TokenText(), Pos: pos})
		case scanner.Int:
			toks = append(toks, Token{Kind: TokInt, Text: s.TokenText(), Pos: pos})
		case scanner.Float:
			toks = append(toks, Token{Kind: TokFloat, Text: s.TokenText(), Pos: pos})
		case scanner.String:
			text := s.TokenText()
			unquoted, err := strconv.Unquote(text)
			if err != nil {
				unquoted = strings.Trim(text, `"`)
			}
			toks = append(toks, Token{Kind: TokString, Text: unquoted, Pos: pos})
		default:
			sym := string(tok)
			if (tok == '=' || tok == '!' || tok == '<' || tok == '>') && s.Peek() == '=' {
				s.Next()
				sym += "="
			}
			toks = append(toks, Token{Kind: TokSymbol, Text: sym, Pos: pos})
		}
	}
}
