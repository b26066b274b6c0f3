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

// Package intern - or libqasm-internal with some commonly used stuff.
//
// Table deduplicates identifier text (instruction names, variable
// names) so that every occurrence of the same identifier in a program
// shares one backing string, rather than each occurrence allocating its
// own. It is an implementation choice invisible through the public API:
// callers see ordinary strings in and out.
package intern

// Table is a simple string-deduplication pool. It is not safe for
// concurrent use; each analysis run owns one.
type Table struct {
	strs map[string]string
}

// NewTable returns an empty interning table.
func NewTable() *Table {
	return &Table{strs: make(map[string]string)}
}

// Intern returns the canonical copy of s: the first string equal to s
// ever passed to this table. Later calls with an equal but distinct
// string return the same backing value instead of allocating another.
func (t *Table) Intern(s string) string {
	if canon, ok := t.strs[s]; ok {
		return canon
	}
	t.strs[s] = s
	return s
}

// Len reports how many distinct strings the table currently holds.
func (t *Table) Len() int { return len(t.strs) }
