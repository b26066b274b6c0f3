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
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/QuTech-Delft/libqasm-sub003/driver"
)

const defaultReplVersionLine = "version 3.0"

// runRepl implements the "repl" subcommand: a read-analyse-print loop
// over cQASM statements. Each accepted line is appended to a growing
// program buffer, which is re-parsed and re-analysed from scratch on
// every line - the analyser has no incremental mode, and a program
// this short makes full reanalysis cheap enough not to need one.
func runRepl(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	var apiVersion versionFlag
	fs.Var(&apiVersion, "version", "reject programs declaring a version newer than `M.m` (default: latest supported)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var opts []driver.Option
	if apiVersion.set {
		opts = append(opts, driver.WithAPIVersion(apiVersion.triple))
	}
	d, err := driver.New(opts...)
	if err != nil {
		return err
	}

	interactive := isTerminal(os.Stdin.Fd())
	scanner := bufio.NewScanner(os.Stdin)
	var buf strings.Builder
	buf.WriteString(defaultReplVersionLine)
	buf.WriteByte('\n')

	if interactive {
		fmt.Fprintln(os.Stderr, "cqasm-analyze repl - one statement per line, Ctrl-D to quit")
	}
	for {
		if interactive {
			fmt.Fprint(os.Stderr, "cq> ")
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case "exit", "quit":
			return nil
		case "":
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')

		result := d.Analyze(buf.String(), "<repl>")
		if result.OK() {
			if interactive {
				fmt.Fprintln(os.Stderr, "ok")
			}
			continue
		}
		printDiagnostics("<repl>", result, false)
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return err
	}
	return nil
}
