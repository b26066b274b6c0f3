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

// isTerminal is unsupported on Windows: the repl still works, it just
// always runs in non-interactive mode (no prompt, no "ok" banner).
func isTerminal(fd uintptr) bool {
	return false
}
