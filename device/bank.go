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

// RAMBank is a view carving an underlying RAM (or ROM) into banks of a fixed
// size. It borrows from the underlying device rather than owning it: the
// caller must keep the backing RAM/ROM alive for as long as the bank is in
// use. ROMBank is the same type constructed over a read-only backing store.
type RAMBank struct {
	label    string
	ram      *RAM
	bsize    int
	banks    int
	bank     int
	boffset  int
	writable bool
}

// ROMBank is a RAMBank whose Write is a no-op, mirroring the original
// caio's single RAMBank type reused for both roles.
type ROMBank = RAMBank

// NewRAMBank returns a bank view over ram, carved into banks of bsize bytes.
// The number of banks is ram.Size()/bsize; bank 0 is initially selected.
func NewRAMBank(ram *RAM, bsize int) *RAMBank {
	banks := ram.Size() / bsize
	if banks == 0 {
		banks = 1
	}
	b := &RAMBank{
		label:    ram.Label(),
		ram:      ram,
		bsize:    bsize,
		banks:    banks,
		writable: true,
	}
	b.SetBank(0)
	return b
}

// NewROMBank returns a read-only bank view over rom, carved into banks of
// bsize bytes.
func NewROMBank(rom *ROM, bsize int) *ROMBank {
	b := NewRAMBank(&rom.RAM, bsize)
	b.writable = false
	return b
}

func (b *RAMBank) Type() string  { return "RAM-bank" }
func (b *RAMBank) Label() string { return b.label }
func (b *RAMBank) Reset()        {}
func (b *RAMBank) Size() int     { return b.bsize }

// SetBank selects the active bank, wrapping modulo the number of banks.
func (b *RAMBank) SetBank(bnk int) {
	b.bank = ((bnk % b.banks) + b.banks) % b.banks
	b.boffset = b.bank * b.bsize
}

// Bank returns the currently selected bank index.
func (b *RAMBank) Bank() int { return b.bank }

// Banks returns the total number of banks this view was constructed with.
func (b *RAMBank) Banks() int { return b.banks }

func (b *RAMBank) Read(addr uint32, mode ReadMode) uint8 {
	checkAddr(addr, b.bsize)
	return b.ram.Read(uint32(b.boffset)+addr, mode)
}

func (b *RAMBank) Write(addr uint32, value uint8) {
	checkAddr(addr, b.bsize)
	if !b.writable {
		return
	}
	b.ram.Write(uint32(b.boffset)+addr, value)
}

func (b *RAMBank) Dump(w io.Writer, base uint32) error {
	start := b.boffset
	end := start + b.bsize
	return dump(w, b.ram.Bytes()[start:end], base)
}
