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

// Package monitor implements a REPL debugger wrapped around a CPU-agnostic
// capability interface: register/memory inspection, disassembly, a
// breakpoint table with expression-compiled conditions, and single-step
// control. Nothing in this package knows about 6510, Z80, or 2A03 opcodes;
// the emulator-specific glue satisfies MonitoredCPU and the rest is shared
// across every machine this module hosts.
package monitor

import "io"

// MonitoredCPU is the capability set a concrete CPU emulator exposes to the
// monitor. The monitor never touches CPU internals directly; every command
// handler and every compiled breakpoint condition goes through this
// interface, which is why the same Monitor serves the 6510, the 2A03 and
// the Z80 without modification.
type MonitoredCPU interface {
	// Regs renders the current register file as a single human-readable
	// line (no trailing newline).
	Regs() string

	// GetPC returns the current program counter.
	GetPC() uint32

	// SetPC sets the program counter, eg. in response to the "go"/"si"
	// commands.
	SetPC(addr uint32)

	// Peek reads a byte from the CPU's address space without triggering
	// any read side effect a live fetch would have (mirrors
	// device.ReadMode.Peek).
	Peek(addr uint32) uint8

	// Write writes a byte into the CPU's address space, used by the
	// "assemble" command to poke assembled bytes directly into memory.
	Write(addr uint32, value uint8)

	// Disasm writes count disassembled instructions starting at addr to
	// w. If showPC is true, the instruction at the current PC is marked.
	Disasm(w io.Writer, addr uint32, count int, showPC bool) error

	// MMap writes a description of the CPU's current memory map to w.
	MMap(w io.Writer) error

	// EBreak arms a single-instruction breakpoint: the monitor regains
	// control after exactly one more instruction executes.
	EBreak()

	// Load reads a binary file into memory starting at addr (or at a
	// file-format-specific default address if addr is not applicable),
	// returning the load address actually used and the number of bytes
	// loaded.
	Load(file string, addr uint32) (start uint32, size int, err error)

	// Save writes memory in [start, end] to a binary file.
	Save(file string, start, end uint32) error

	// LogLevel sets the CPU's own diagnostic log level from a name (eg.
	// "trace", "debug", "info") and returns the resulting numeric level.
	// Called with an empty string, it reports the current level without
	// changing it.
	LogLevel(name string) (level uint, err error)

	// RegValue resolves a register (or register bit-field, eg. "p.n")
	// name to its current value, for use by the breakpoint expression
	// compiler. Returns an error if name does not name a register this
	// CPU exposes.
	RegValue(name string) (uint32, error)

	// BPDoc returns help text for the breakpoint expression grammar,
	// keyed by topic ("" for the general summary).
	BPDoc(topic string) string
}
