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

// NibbleRAM models a 4-bit-wide chip (eg. the C64's colour RAM): only the
// lower nibble of each byte is meaningful, the upper nibble always reads
// back as 1111b regardless of what's written.
type NibbleRAM struct {
	RAM
}

// NewNibbleRAM returns size bytes of nibble RAM, upper nibbles pre-set to
// 0xF0 as Write would leave them.
func NewNibbleRAM(size int, label string) *NibbleRAM {
	n := &NibbleRAM{RAM: *NewRAM(size, label)}
	for i := range n.RAM.Bytes() {
		n.RAM.Bytes()[i] = 0xF0
	}
	return n
}

func (n *NibbleRAM) Type() string { return "4-BIT RAM" }

// Write stores only the lower nibble of value; the upper nibble is forced
// to 1111b.
func (n *NibbleRAM) Write(addr uint32, value uint8) {
	n.RAM.Write(addr, 0xF0|(value&0x0F))
}
