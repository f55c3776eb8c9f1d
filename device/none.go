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

package device

import "io"

// None is an unmapped address window: every read returns a fixed open-bus
// value, every write is discarded. Bank-switching decoders that precompute
// a full set of memory-map templates (the C64 PLA's 32 modes) fill slots
// with no real backing device with a shared None instance rather than
// special-casing "nothing mapped here" at every read/write call site.
type None struct {
	value uint8
}

// NewNone returns a None device reading back as value at every address.
func NewNone(value uint8) *None {
	return &None{value: value}
}

func (n *None) Type() string  { return "NONE" }
func (n *None) Label() string { return "unmapped" }
func (n *None) Reset()        {}

// Size is reported as the full 16-bit range: a None slot may be addressed
// at any offset a caller's block decoding happens to compute, and it has
// no real extent to bound-check against.
func (n *None) Size() int { return 0x10000 }

func (n *None) Read(addr uint32, mode ReadMode) uint8 { return n.value }
func (n *None) Write(addr uint32, value uint8)        {}

func (n *None) Dump(w io.Writer, base uint32) error {
	_, err := io.WriteString(w, "(unmapped)\n")
	return err
}
