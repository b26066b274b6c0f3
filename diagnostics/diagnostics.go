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

// Package diagnostics implements libqasm's single structured diagnostic
// value. Parse errors and analysis errors share this representation; they
// are told apart only by which list they end up in.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/QuTech-Delft/libqasm-sub003/location"
)

const unknownMessage = "<unknown error message>"

// Severity is always SeverityError in this core; the field exists because
// the LSP Diagnostic shape requires it.
type Severity int

const (
	SeverityError Severity = 1
)

// Diagnostic is a single error: a message, an optional source location and
// a severity. It implements the error interface so it can be returned,
// wrapped, and compared with errors.As like any other Go error.
type Diagnostic struct {
	Message  string
	Location location.Span
	HasLoc   bool
	Severity Severity
}

// New builds a Diagnostic with no location. An empty message is replaced
// by the default placeholder.
func New(message string) *Diagnostic {
	return &Diagnostic{Message: normalize(message), Severity: SeverityError}
}

// At builds a Diagnostic already carrying a location.
func At(message string, loc location.Span) *Diagnostic {
	d := New(message)
	d.Location = loc
	d.HasLoc = true
	return d
}

// Atf is At with fmt.Sprintf-style formatting.
func Atf(loc location.Span, format string, args ...interface{}) *Diagnostic {
	return At(fmt.Sprintf(format, args...), loc)
}

func normalize(message string) string {
	if message == "" {
		return unknownMessage
	}
	return message
}

// Context attaches node's location to d if d does not already have one.
func (d *Diagnostic) Context(node location.Carrier) {
	if d.HasLoc {
		return
	}
	if span, ok := node.Location(); ok {
		d.Location = span
		d.HasLoc = true
	}
}

// Error implements the error interface with the plain-text rendering.
func (d *Diagnostic) Error() string {
	if !d.HasLoc {
		return fmt.Sprintf("Error: %s", d.Message)
	}
	return fmt.Sprintf("Error at %s: %s", d.Location.String(), d.Message)
}

// JSON renders d as an LSP-style Diagnostic JSON object. Fields default to
// zero when no location is known. The message is JSON-escaped, the file
// path (if any) is URL-encoded into a file:/// URI.
func (d *Diagnostic) JSON() string {
	var firstLine, firstCol, lastLine, lastCol int
	if d.HasLoc {
		firstLine = d.Location.Range.First.Line - 1
		firstCol = d.Location.Range.First.Column - 1
		lastLine = d.Location.Range.Last.Line - 1
		lastCol = d.Location.Range.Last.Column - 1
		if firstLine < 0 {
			firstLine = 0
		}
		if firstCol < 0 {
			firstCol = 0
		}
		if lastLine < 0 {
			lastLine = 0
		}
		if lastCol < 0 {
			lastCol = 0
		}
	}

	related := ""
	if d.HasLoc && d.Location.HasFile {
		related = fmt.Sprintf(
			`,"relatedInformation":[{"location":{"uri":"file:///%s","range":{"start":{"line":0,"character":0},"end":{"line":0,"character":0}}},"message":"%s"}]`,
			urlEncode(d.Location.FileName), jsonEncode(d.Message))
	}

	return fmt.Sprintf(
		`{"range":{"start":{"line":%d,"character":%d},"end":{"line":%d,"character":%d}},"message":"%s","severity":%d%s}`,
		firstLine, firstCol, lastLine, lastCol, jsonEncode(d.Message), d.Severity, related)
}

// urlEncode percent-encodes str for embedding in a file:// URI:
// alphanumerics, '-', '_', '.', '~' pass through unescaped, everything else
// (including '/') becomes an upper-case %XX escape.
func urlEncode(str string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(str); i++ {
		c := str[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9',
			c == '-', c == '_', c == '.', c == '~':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0xf])
		}
	}
	return b.String()
}

// jsonEncode escapes the characters that would otherwise break a JSON
// string literal: quote, backslash, and any control character below
// 0x20 become \u-escapes.
func jsonEncode(str string) string {
	var b strings.Builder
	for _, c := range str {
		switch {
		case c == '"' || c == '\\' || c < 0x20:
			fmt.Fprintf(&b, `\u%04x`, c)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// List is an ordered collection of diagnostics, used as the error list of
// both ParseResult and AnalysisResult.
type List []*Diagnostic

// Error implements the error interface by joining every diagnostic's plain
// text rendering on its own line.
func (l List) Error() string {
	lines := make([]string, len(l))
	for i, d := range l {
		lines[i] = d.Error()
	}
	return strings.Join(lines, "\n")
}

// Append appends d to the list when d is not nil, and returns the result.
func (l List) Append(d *Diagnostic) List {
	if d == nil {
		return l
	}
	return append(l, d)
}
