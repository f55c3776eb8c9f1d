// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package monitor

import (
	"strconv"
	"strings"

	"github.com/cdio-go/caio/errors"
)

// argFn evaluates one side of a breakpoint condition against the live CPU
// state.
type argFn func(cpu MonitoredCPU) int

// operator combines two already-evaluated arguments into the non-zero
// (true) / zero (false) result a breakpoint condition tests.
type operator func(a, b int) int

// operators is checked in order, so multi-character operators must be
// listed before any operator they contain as a prefix ("<=" before "<").
var operators = []struct {
	name string
	op   operator
}{
	{"<=", func(a, b int) int { return boolInt(a <= b) }},
	{">=", func(a, b int) int { return boolInt(a >= b) }},
	{"==", func(a, b int) int { return boolInt(a == b) }},
	{"!=", func(a, b int) int { return boolInt(a != b) }},
	{"<", func(a, b int) int { return boolInt(a < b) }},
	{">", func(a, b int) int { return boolInt(a > b) }},
	{"&", func(a, b int) int { return a & b }},
	{"|", func(a, b int) int { return a | b }},
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// CompileCondition compiles a breakpoint condition of the form "V op V"
// into a closure that evaluates to non-zero exactly when the condition
// currently holds, re-evaluated by the caller at every instruction
// boundary. V is literal | register | *literal | *register: a bare literal
// or register name yields its value directly, a "*"-prefixed one
// dereferences it as a memory address through cpu.Peek.
func CompileCondition(cpu MonitoredCPU, line string) (func() int, error) {
	for _, o := range operators {
		pos := strings.Index(line, o.name)
		if pos < 0 {
			continue
		}

		left, err := compileArgument(cpu, line[:pos])
		if err != nil {
			return nil, err
		}
		right, err := compileArgument(cpu, line[pos+len(o.name):])
		if err != nil {
			return nil, err
		}

		op := o.op
		return func() int { return op(left(cpu), right(cpu)) }, nil
	}

	return nil, errors.New(errors.InvalidArgument, "invalid expression: %q", line)
}

// compileArgument parses one operand: ["*"]["#"]["$"]<value>, where <value>
// is either a number or a register name. A leading "*" makes it a memory
// reference; a leading "#" selects decimal (default is hexadecimal), and a
// leading "$" is the explicit (redundant) hexadecimal marker.
func compileArgument(cpu MonitoredCPU, raw string) (argFn, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, errors.New(errors.InvalidArgument, "invalid argument expression: %q", raw)
	}

	isRef := false
	if s[0] == '*' {
		isRef = true
		s = s[1:]
	}

	base := 16
	if len(s) > 0 && s[0] == '#' {
		base = 10
		s = s[1:]
	}
	if len(s) > 0 && s[0] == '$' {
		base = 16
		s = s[1:]
	}

	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, errors.New(errors.InvalidArgument, "invalid argument expression: %q", raw)
	}

	if lit, err := strconv.ParseUint(s, base, 32); err == nil {
		v := uint32(lit)
		return func(cpu MonitoredCPU) int {
			if isRef {
				return int(cpu.Peek(v))
			}
			return int(v)
		}, nil
	}

	if _, err := cpu.RegValue(s); err == nil {
		return func(cpu MonitoredCPU) int {
			v, _ := cpu.RegValue(s)
			if isRef {
				return int(cpu.Peek(v))
			}
			return int(v)
		}, nil
	}

	return nil, errors.New(errors.InvalidArgument, "invalid argument expression: %q", raw)
}
