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

// Package scope implements the lexical scope stack: nested name tables
// walked innermost-first on lookup, each owning the block its resolved
// statements are appended to.
package scope

import (
	"github.com/QuTech-Delft/libqasm-sub003/internal/intern"
	"github.com/QuTech-Delft/libqasm-sub003/location"
	"github.com/QuTech-Delft/libqasm-sub003/values"
)

// Block is the sequence of resolved statements a scope appends to, plus
// the source span it spans; AddStatement widens Span the way
// location.Span.Expand does, never retreating its start.
type Block struct {
	Statements []interface{}
	Span       location.Span
	HasSpan    bool
}

// Scope is one lexical level: a name table and the block its statements
// accumulate into, plus the inherited "within a loop" flag.
type Scope struct {
	names  map[string]values.Value
	block  *Block
	InLoop bool
}

// DuplicateNameError reports that add_mapping was asked to shadow a name
// already bound in the same scope.
type DuplicateNameError struct{ Name string }

func (e *DuplicateNameError) Error() string {
	return "name `" + e.Name + "` is already defined in this scope"
}

// UndefinedNameError reports that resolve walked the full stack without a
// hit.
type UndefinedNameError struct{ Name string }

func (e *UndefinedNameError) Error() string { return "undefined name `" + e.Name + "`" }

func newScope(inLoop bool) *Scope {
	return &Scope{
		names:  make(map[string]values.Value),
		block:  &Block{},
		InLoop: inLoop,
	}
}

// Stack is the scope stack the analyser pushes/pops as it descends into
// and climbs back out of blocks. The stack is never empty once New has
// been called: the global scope stays at index 0 for the stack's entire
// lifetime.
type Stack struct {
	scopes []*Scope
	names  *intern.Table
}

// New returns a stack containing one global scope.
func New() *Stack {
	s := &Stack{names: intern.NewTable()}
	s.scopes = append(s.scopes, newScope(false))
	return s
}

// Push opens a new nested scope, inheriting inLoop from the caller
// (callers pass the enclosing scope's InLoop unless entering a loop body,
// which this grammar subset never does).
func (s *Stack) Push(inLoop bool) {
	s.scopes = append(s.scopes, newScope(inLoop))
}

// Pop closes the innermost scope. Popping the global scope is a
// programmer error: the analyser must keep push/pop balanced.
func (s *Stack) Pop() {
	if len(s.scopes) <= 1 {
		panic("scope: Pop called with no non-global scope open")
	}
	s.scopes = s.scopes[:len(s.scopes)-1]
}

func (s *Stack) top() *Scope { return s.scopes[len(s.scopes)-1] }

// Global returns the outermost scope, the one the analyser seeds with the
// predefined constants. Functions, instructions and modifiers are not
// bound in any scope; the analyser resolves them through its registries.
func (s *Stack) Global() *Scope { return s.scopes[0] }

// AddMapping binds name to value in the current (innermost) scope,
// rejecting a name already bound in that same scope. Shadowing an outer
// scope's name is allowed; only same-scope redefinition is an error.
func (s *Stack) AddMapping(name string, value values.Value) error {
	name = s.names.Intern(name)
	cur := s.top()
	if _, exists := cur.names[name]; exists {
		return &DuplicateNameError{Name: name}
	}
	cur.names[name] = value
	return nil
}

// Resolve walks the stack from innermost to global and returns the first
// bound value, or UndefinedNameError if none of the open scopes bind
// name.
func (s *Stack) Resolve(name string) (values.Value, error) {
	name = s.names.Intern(name)
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if v, ok := s.scopes[i].names[name]; ok {
			return v, nil
		}
	}
	return nil, &UndefinedNameError{Name: name}
}

// CurrentBlock returns the block the innermost scope appends resolved
// statements to.
func (s *Stack) CurrentBlock() *Block { return s.top().block }

// AddStatement appends stmt to the current block and widens the block's
// span to cover loc, the way location.Span.Expand widens monotonically
// and never un-sets a span once one is present.
func (s *Stack) AddStatement(stmt interface{}, loc location.Span, hasLoc bool) {
	b := s.top().block
	b.Statements = append(b.Statements, stmt)
	if !hasLoc {
		return
	}
	if !b.HasSpan {
		b.Span = loc
		b.HasSpan = true
		return
	}
	b.Span.ExpandSpan(loc)
}

// InLoop reports the innermost scope's inherited loop flag. Unread by any
// statement visitor in this grammar subset (there are no loop constructs
// in the surface grammar); kept as a forward-looking hook for one.
func (s *Stack) InLoop() bool { return s.top().InLoop }
