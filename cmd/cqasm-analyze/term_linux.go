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
	"syscall"

	"github.com/pkg/term/termios"
)

// isTerminal reports whether fd refers to a terminal, the same way
// setRawIO's first step (Tcgetattr) tells a tty apart from a pipe: the
// ioctl only succeeds on a tty. The repl only needs this to decide
// whether to print a prompt and an "ok" acknowledgement - unlike the
// teacher's VM console, it never puts the terminal into raw mode,
// since line-oriented statement input needs the kernel's own canonical
// line editing (backspace, history), not byte-at-a-time delivery.
func isTerminal(fd uintptr) bool {
	var tios syscall.Termios
	return termios.Tcgetattr(int(fd), &tios) == nil
}
