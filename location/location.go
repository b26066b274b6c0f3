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

// Package location attaches a file name and an inclusive line/column range
// to any tree node. It is the only annotation the core needs; richer
// per-node metadata is left to bindings built on top of this package.
package location

import "fmt"

// Point is a 1-based line/column coordinate.
type Point struct {
	Line   int
	Column int
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Less reports whether p comes strictly before q.
func (p Point) Less(q Point) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Column < q.Column)
}

// Range is an inclusive [First, Last] pair of Points.
type Range struct {
	First Point
	Last  Point
}

// Span is a source location: an optional file name plus a Range. The zero
// value is a valid, empty span with no file name.
type Span struct {
	FileName string
	HasFile  bool
	Range    Range
}

// New builds a Span covering the range from first to last.
func New(fileName string, hasFile bool, first, last Point) Span {
	return Span{FileName: fileName, HasFile: hasFile, Range: Range{First: first, Last: last}}
}

// AtPoint builds a zero-width Span covering a single point.
func AtPoint(fileName string, hasFile bool, p Point) Span {
	return New(fileName, hasFile, p, p)
}

// Expand widens s so that its range covers (line, col). It only ever grows
// the range: First never retreats and Last never shrinks.
func (s *Span) Expand(line, col int) {
	p := Point{Line: line, Column: col}
	if p.Less(s.Range.First) {
		s.Range.First = p
	}
	if s.Range.Last.Less(p) {
		s.Range.Last = p
	}
}

// ExpandSpan widens s to also cover other.
func (s *Span) ExpandSpan(other Span) {
	s.Expand(other.Range.First.Line, other.Range.First.Column)
	s.Expand(other.Range.Last.Line, other.Range.Last.Column)
}

// String renders "<file>:<line>:<col1>..<col2>" for a span on one line and
// "<file>:<line>:<col>-<line>:<col>" for a span over several lines, the way
// diagnostics formats locations, using "<unknown file name>" when no file
// name is attached.
func (s Span) String() string {
	name := "<unknown file name>"
	if s.HasFile {
		name = s.FileName
	}
	if s.Range.First.Line == s.Range.Last.Line {
		return fmt.Sprintf("%s:%d:%d..%d", name, s.Range.First.Line, s.Range.First.Column, s.Range.Last.Column)
	}
	return fmt.Sprintf("%s:%s-%s", name, s.Range.First, s.Range.Last)
}

// Carrier is implemented by any tree node that can carry a Span.
type Carrier interface {
	Location() (Span, bool)
}

// Node is a small embeddable struct giving any AST/semantic node a Span.
type Node struct {
	Span    Span
	HasSpan bool
}

// Location implements Carrier.
func (n Node) Location() (Span, bool) {
	return n.Span, n.HasSpan
}

// SetLocation attaches a span to the node.
func (n *Node) SetLocation(s Span) {
	n.Span = s
	n.HasSpan = true
}
