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

// Package version implements the cQASM version header: the pre-scanner
// that reads "version M" or "version M.m" ahead of the full parse, and
// the triple it produces.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Triple is a two-component version, minor defaulting to 0 when absent
// from the source text.
type Triple struct {
	Major int
	Minor int
}

func (t Triple) String() string {
	if t.Minor == 0 {
		return fmt.Sprintf("%d.0", t.Major)
	}
	return fmt.Sprintf("%d.%d", t.Major, t.Minor)
}

// Compare returns -1, 0 or 1 comparing a to b lexicographically: major
// first, then minor, with an absent minor treated as 0 on both sides.
func (a Triple) Compare(b Triple) int {
	if a.Major != b.Major {
		if a.Major < b.Major {
			return -1
		}
		return 1
	}
	if a.Minor != b.Minor {
		if a.Minor < b.Minor {
			return -1
		}
		return 1
	}
	return 0
}

// ScanError reports that the version header was missing or malformed.
type ScanError struct {
	Reason string
}

func (e *ScanError) Error() string { return "invalid version header: " + e.Reason }

// Scan parses a "version M" or "version M.m" header from the start of
// src (leading whitespace and blank lines are skipped, matching the
// grammar's tolerance for blank lines before the header; comments are
// not skipped here, as the header must be the first non-blank line).
// M and m must be non-negative integers; a negative or non-numeric
// component is rejected.
func Scan(src string) (Triple, error) {
	line, ok := firstNonBlankLine(src)
	if !ok {
		return Triple{}, &ScanError{Reason: "source is empty"}
	}

	fields := strings.Fields(line)
	if len(fields) != 2 || fields[0] != "version" {
		return Triple{}, &ScanError{Reason: `expected "version <number>"`}
	}

	return parseNumber(fields[1])
}

func firstNonBlankLine(src string) (string, bool) {
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			return trimmed, true
		}
	}
	return "", false
}

func parseNumber(s string) (Triple, error) {
	parts := strings.SplitN(s, ".", 2)
	major, err := parseNonNegative(parts[0])
	if err != nil {
		return Triple{}, &ScanError{Reason: "major version: " + err.Error()}
	}
	if len(parts) == 1 {
		return Triple{Major: major}, nil
	}
	minor, err := parseNonNegative(parts[1])
	if err != nil {
		return Triple{}, &ScanError{Reason: "minor version: " + err.Error()}
	}
	return Triple{Major: major, Minor: minor}, nil
}

func parseNonNegative(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%q is negative", s)
	}
	return n, nil
}
