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

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/QuTech-Delft/libqasm-sub003/driver"
)

// runCheck implements the "check" subcommand: analyse every file named
// on the command line and report diagnostics. Returns a non-nil error
// only for a usage or I/O failure; analyser diagnostics are reported on
// stderr/stdout directly and only affect the process exit status.
func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	jsonOut := fs.Bool("json", false, "print diagnostics as LSP-style JSON objects, one per line")
	var apiVersion versionFlag
	fs.Var(&apiVersion, "version", "reject programs declaring a version newer than `M.m` (default: latest supported)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	files := fs.Args()
	if len(files) == 0 {
		return errors.New("check requires at least one source file")
	}

	var opts []driver.Option
	if apiVersion.set {
		opts = append(opts, driver.WithAPIVersion(apiVersion.triple))
	}
	d, err := driver.New(opts...)
	if err != nil {
		return errors.Wrap(err, "build driver")
	}

	failed := false
	for _, name := range files {
		result, err := d.AnalyzeFile(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			failed = true
			continue
		}
		if result.OK() {
			continue
		}
		failed = true
		printDiagnostics(name, result, *jsonOut)
	}

	if failed {
		os.Exit(1)
	}
	return nil
}

func printDiagnostics(name string, result *driver.AnalysisResult, asJSON bool) {
	diags := result.ParseErrors
	if len(diags) == 0 {
		diags = result.Errors
	}
	for _, d := range diags {
		if asJSON {
			fmt.Println(d.JSON())
			continue
		}
		fmt.Printf("%s: %s\n", name, d.Error())
	}
}
