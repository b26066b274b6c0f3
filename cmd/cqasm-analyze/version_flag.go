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

import "github.com/QuTech-Delft/libqasm-sub003/version"

// versionFlag is a flag.Value binding a "-version M.m" command-line flag
// to a version.Triple, validated with version.Scan itself rather than
// duplicating its number-parsing rules.
type versionFlag struct {
	triple version.Triple
	set    bool
}

func (f *versionFlag) String() string {
	if !f.set {
		return ""
	}
	return f.triple.String()
}

func (f *versionFlag) Set(s string) error {
	t, err := version.Scan("version " + s)
	if err != nil {
		return err
	}
	f.triple = t
	f.set = true
	return nil
}

func (f *versionFlag) Get() interface{} { return f.triple }
