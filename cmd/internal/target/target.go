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

// Package target adapts a machine's address space to monitor.MonitoredCPU.
// No per-chip instruction decoder lives in this module, so there is no real
// program counter to fetch from or registers to inspect; what every cmd/*
// entry point hands the monitor instead is a bus-level view that can still
// read, write, load, save, and break on memory, with register-addressed
// breakpoint conditions simply unavailable. A future CPU core would replace
// this adapter, not the Monitor itself.
package target

import (
	"fmt"
	"io"
	"os"

	"github.com/cdio-go/caio/device"
	"github.com/cdio-go/caio/errors"
)

// Bus is the minimum a machine's address space must offer for a Target to
// sit in front of it: aspace.AddressSpace satisfies this directly, as does
// any device.Device (a c64.PLA embeds *aspace.AddressSpace and so
// qualifies without adaptation).
type Bus interface {
	Read(addr uint32, mode device.ReadMode) uint8
	Write(addr uint32, value uint8)
}

// Target is a bus-backed stand-in for a real CPU, sufficient for the
// monitor commands that only need memory access (dump, disassemble-as-hex,
// load, save, memory breakpoints) and honest about the ones that need a
// real decoder (disassembly is a raw byte listing, not mnemonics).
type Target struct {
	bus      Bus
	pc       uint32
	ebreak   bool
	logLevel uint
}

// New wraps bus as a MonitoredCPU, with the program counter starting at
// resetPC (the machine's reset vector or equivalent load address).
func New(bus Bus, resetPC uint32) *Target {
	return &Target{bus: bus, pc: resetPC}
}

func (t *Target) Regs() string {
	return fmt.Sprintf("PC=%04X", t.pc)
}

func (t *Target) GetPC() uint32     { return t.pc }
func (t *Target) SetPC(addr uint32) { t.pc = addr }

func (t *Target) Peek(addr uint32) uint8 {
	return t.bus.Read(addr, device.Peek)
}

func (t *Target) Write(addr uint32, value uint8) {
	t.bus.Write(addr, value)
}

// Disasm lists count bytes from addr one per line, marking the current PC
// when showPC is set. There is no mnemonic decoder in this build (out of
// scope: per-chip instruction decoders), so this is a raw byte listing
// rather than disassembly proper.
func (t *Target) Disasm(w io.Writer, addr uint32, count int, showPC bool) error {
	for i := 0; i < count; i++ {
		marker := "  "
		if showPC && addr == t.pc {
			marker = "> "
		}
		if _, err := fmt.Fprintf(w, "%s$%04X  %02X\n", marker, addr, t.Peek(addr)); err != nil {
			return err
		}
		addr++
	}
	return nil
}

func (t *Target) MMap(w io.Writer) error {
	_, err := fmt.Fprintln(w, "mmap: flat bus view; no chip-level memory map in this build")
	return err
}

// EBreak arms a single-step stop. There is no instruction loop to honour it
// in this build; it is recorded so the monitor's "si" command has something
// observable to have set.
func (t *Target) EBreak() { t.ebreak = true }

// Load reads file into the bus starting at addr, returning the load
// address and the number of bytes written.
func (t *Target) Load(file string, addr uint32) (uint32, int, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return 0, 0, errors.New(errors.IOError, "can't load %s: %v", file, err)
	}
	for i, b := range data {
		t.Write(addr+uint32(i), b)
	}
	return addr, len(data), nil
}

// Save writes the bus contents over [start, end] (inclusive) to file.
func (t *Target) Save(file string, start, end uint32) error {
	data := make([]uint8, int(end-start)+1)
	for i := range data {
		data[i] = t.Peek(start + uint32(i))
	}
	if err := os.WriteFile(file, data, 0o600); err != nil {
		return errors.New(errors.IOError, "can't save %s: %v", file, err)
	}
	return nil
}

// LogLevel reports the current level (name == "") or sets it to the integer
// name parses to.
func (t *Target) LogLevel(name string) (uint, error) {
	if name == "" {
		return t.logLevel, nil
	}
	var n uint
	if _, err := fmt.Sscanf(name, "%d", &n); err != nil {
		return 0, errors.New(errors.InvalidNumber, "invalid log level: %q", name)
	}
	t.logLevel = n
	return t.logLevel, nil
}

// RegValue always fails: this build has no CPU registers to resolve a name
// against, so breakpoint conditions are limited to memory references
// (*$addr) and literals.
func (t *Target) RegValue(name string) (uint32, error) {
	return 0, errors.New(errors.InvalidArgument, "no CPU registers in this build: %q", name)
}

func (t *Target) BPDoc(topic string) string {
	return "breakpoints: $addr, or *$addr op value (memory reference); " +
		"register-named conditions are unavailable without a CPU core\n"
}
