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

package c64

import (
	"fmt"
	"io"
	"sync"

	"github.com/cdio-go/caio/aspace"
	"github.com/cdio-go/caio/cartridge"
	"github.com/cdio-go/caio/device"
	"github.com/cdio-go/caio/errors"
)

const (
	gsMaxBanks = 64
	gsBankMask = 0x3F
	gsROMSize  = 0x2000
)

// C64GS implements the C64 Game System / System 3 mapper: plain 8K
// ROML-only banking, but the bank register has no data content — any read
// anywhere in $DE00-$DEFF selects the bank given by the address's low
// bits, with the read itself returning open bus.
type C64GS struct {
	mu sync.Mutex

	bank int
	roms [gsMaxBanks]device.Device

	forceRemap func()
}

// NewC64GS builds a C64GS mapper from a CRT's fixed-size 8K CHIP entries,
// one per bank.
func NewC64GS(chips []ChipEntry) (*C64GS, error) {
	g := &C64GS{}

	for i, chip := range chips {
		if len(chip.Data) != gsROMSize {
			return nil, errors.New(errors.InvalidCartridge, "c64gs: chip %d: invalid ROM size %d", i, len(chip.Data))
		}
		if chip.Bank < 0 || chip.Bank >= gsMaxBanks {
			return nil, errors.New(errors.InvalidCartridge, "c64gs: chip %d: invalid bank %d", i, chip.Bank)
		}
		g.roms[chip.Bank] = device.NewROM(chip.Data, fmt.Sprintf("C64GS-%d", chip.Bank))
	}

	return g, nil
}

// SetForceRemap installs the callback a bank-selecting access invokes,
// forcing the PLA to recompute its memory map.
func (g *C64GS) SetForceRemap(fn func()) {
	g.mu.Lock()
	g.forceRemap = fn
	g.mu.Unlock()
}

func (g *C64GS) Type() string  { return "CART_C64GS" }
func (g *C64GS) Label() string { return "c64gs" }
func (g *C64GS) Reset()        {}
func (g *C64GS) Size() int     { return IOSize }
func (g *C64GS) Mode() GameExromMode { return Mode8K }

func (g *C64GS) RAMInfo() []cartridge.RAMInfo { return nil }

// Read selects the bank given by addr's low bits as a side effect: real
// C64GS carts have no readable register content, only the access pattern.
func (g *C64GS) Read(addr uint32, mode device.ReadMode) uint8 {
	if addr < 256 && mode != device.Peek {
		g.selectBank(int(addr) & gsBankMask)
	}
	return 0xFF
}

// Write is a no-op: C64GS banks are selected by read access, not write
// data.
func (g *C64GS) Write(addr uint32, value uint8) {}

func (g *C64GS) selectBank(bank int) {
	g.mu.Lock()
	changed := bank != g.bank
	g.bank = bank
	fn := g.forceRemap
	g.mu.Unlock()
	if changed && fn != nil {
		fn()
	}
}

func (g *C64GS) Dump(w io.Writer, base uint32) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, err := fmt.Fprintf(w, "(c64gs, bank %d)\n", g.bank)
	return err
}

func (g *C64GS) GetDevice(addr uint16, romhLine, romlLine bool) (aspace.Slot, aspace.Slot) {
	g.mu.Lock()
	bank := g.bank
	g.mu.Unlock()

	if romlLine && g.roms[bank] != nil {
		return aspace.Slot{Device: g.roms[bank], Base: uint32(addr) - romlLoadAddr}, aspace.Slot{}
	}
	return aspace.Slot{}, aspace.Slot{}
}
