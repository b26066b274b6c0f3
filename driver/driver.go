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

// Package driver wires the parser and analyser together into the
// single entry point a consumer (CLI, editor plugin, test harness)
// actually wants: source text in, an AnalysisResult out.
package driver

import (
	"os"

	"github.com/pkg/errors"

	"github.com/QuTech-Delft/libqasm-sub003/analyzer"
	"github.com/QuTech-Delft/libqasm-sub003/diagnostics"
	"github.com/QuTech-Delft/libqasm-sub003/function"
	"github.com/QuTech-Delft/libqasm-sub003/instruction"
	"github.com/QuTech-Delft/libqasm-sub003/parser"
	"github.com/QuTech-Delft/libqasm-sub003/semantic"
	"github.com/QuTech-Delft/libqasm-sub003/version"
)

// Option configures a Driver, mirroring analyzer.Option and, further
// back, vm.Option: applied in order at construction time, with
// unset fields defaulted afterward.
type Option func(*Driver) error

// WithAPIVersion overrides the API version the driver rejects programs
// against. The default is the latest version this package implements.
func WithAPIVersion(v version.Triple) Option {
	return func(d *Driver) error {
		d.apiVersion = v
		return nil
	}
}

// WithInstructions overrides the instruction registry passed to the
// analyser. The default is instruction.DefaultRegistry().
func WithInstructions(reg *instruction.Registry) Option {
	return func(d *Driver) error {
		d.instructions = reg
		return nil
	}
}

// WithFunctions overrides the function registry passed to the
// analyser. The default is function.DefaultRegistry().
func WithFunctions(reg *function.Registry) Option {
	return func(d *Driver) error {
		d.functions = reg
		return nil
	}
}

// defaultAPIVersion is the newest cQASM version this driver accepts.
var defaultAPIVersion = version.Triple{Major: 3, Minor: 0}

// Driver runs the version-gate, parse, and analyse stages over source
// text, producing either a parse-error list or an AnalysisResult.
type Driver struct {
	apiVersion   version.Triple
	instructions *instruction.Registry
	functions    *function.Registry
}

// New builds a Driver, applying opts in order and filling in defaults
// for anything left unset - the same two-phase shape as vm.New.
func New(opts ...Option) (*Driver, error) {
	d := &Driver{apiVersion: defaultAPIVersion}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	if d.instructions == nil {
		d.instructions = instruction.DefaultRegistry()
	}
	if d.functions == nil {
		d.functions = function.DefaultRegistry()
	}
	return d, nil
}

// AnalysisResult is the outcome of running a program through every
// stage the driver has. ParseErrors is non-empty only when the version
// header pre-scan or parsing failed, in which case Program and Errors
// are zero.
type AnalysisResult struct {
	ParseErrors diagnostics.List
	Program     *semantic.Program
	Errors      diagnostics.List
}

// OK reports whether analysis produced a program with no diagnostics
// at all - neither parse errors nor analyser-reported ones.
func (r *AnalysisResult) OK() bool {
	return len(r.ParseErrors) == 0 && len(r.Errors) == 0
}

// Analyze runs the full pipeline over src: scan its version header,
// tokenize and parse it into an ast.Program, then analyse that program
// against d's registries and API version. Either the pre-scan or
// parsing stops the pipeline early - a program whose header can't be
// scanned, or that doesn't parse, is never handed to the analyser.
func (d *Driver) Analyze(src string, fileName string) *AnalysisResult {
	if _, err := version.Scan(src); err != nil {
		return &AnalysisResult{ParseErrors: diagnostics.List{diagnostics.New(err.Error())}}
	}

	prog, parseErrs := parser.Parse(src, fileName, fileName != "")
	if len(parseErrs) != 0 {
		return &AnalysisResult{ParseErrors: parseErrs}
	}

	a, err := analyzer.New(d.apiVersion,
		analyzer.WithInstructions(d.instructions),
		analyzer.WithFunctions(d.functions),
	)
	if err != nil {
		// Only reachable if a future Option is added that can fail;
		// none of the present ones do.
		return &AnalysisResult{Errors: diagnostics.List{diagnostics.New(err.Error())}}
	}

	semProg, errs := a.Analyze(prog)
	return &AnalysisResult{Program: semProg, Errors: errs}
}

// AnalyzeFile reads fileName and runs Analyze over its contents,
// wrapping any read failure the way vm/mem.go wraps image load errors.
func (d *Driver) AnalyzeFile(fileName string) (*AnalysisResult, error) {
	src, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "read source file")
	}
	return d.Analyze(string(src), fileName), nil
}
