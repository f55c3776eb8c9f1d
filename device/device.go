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

// Package device defines the leaf addressable objects that every machine's
// address space is built from: RAM, ROM, and bank-switched views over them.
// Every device is a byte-addressable object identified by a (type, label)
// pair, readable and writable at an offset below its own Size, and
// resettable. This mirrors the CPUBus/DebuggerBus split the rest of this
// module's bus-facing code expects: ordinary Read/Write are the CPU's view,
// Peek/Poke (ReadMode.Peek) are the side-effect-free view the monitor uses.
package device

import "io"

// ReadMode distinguishes an ordinary CPU read from a side-effect-free Peek,
// used by the monitor and by any future snapshot code. Devices whose Read
// has side effects (none in this package, but true of chip registers
// elsewhere in the module) must honour Peek by suppressing them.
type ReadMode int

const (
	Read ReadMode = iota
	Peek
)

// Device is the leaf abstraction every RAM, ROM, and bank view implements.
// Implementations must treat an out-of-range addr (addr >= Size()) as a
// precondition violation: panic rather than silently returning a value,
// since a Device never decides what should happen next when its owning
// AddressSpace looks up the wrong block.
type Device interface {
	// Type names the device's class, eg. "RAM", "ROM", "4-BIT RAM".
	Type() string

	// Label is the caller-assigned identity of this particular instance,
	// eg. "color-ram", "basic-rom".
	Label() string

	// Reset restores power-on state. For RAM this is a no-op: contents
	// survive reset.
	Reset()

	// Size returns the number of addressable bytes.
	Size() int

	// Read returns the byte at addr. mode distinguishes a normal CPU
	// access from a side-effect-free Peek.
	Read(addr uint32, mode ReadMode) uint8

	// Write stores value at addr. ROM and other read-only devices ignore
	// this silently.
	Write(addr uint32, value uint8)

	// Dump writes a human-readable hex dump of the device's contents to w,
	// labelling each row with its address starting at base.
	Dump(w io.Writer, base uint32) error
}

// checkAddr panics if addr is not a valid offset into a device of the given
// size. Used by every Device implementation in this package to enforce the
// offset < size() precondition uniformly.
func checkAddr(addr uint32, size int) {
	if addr >= uint32(size) {
		panic("device: address out of range")
	}
}
