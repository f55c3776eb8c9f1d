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
	"io"

	"github.com/cdio-go/caio/aspace"
	"github.com/cdio-go/caio/cartridge"
	"github.com/cdio-go/caio/device"
	"github.com/cdio-go/caio/errors"
)

const (
	romlLoadAddr   uint32 = 0x8000
	romhLoadAddr   uint32 = 0xA000
	u8RomlLoadAddr uint32 = 0xE000
)

// Generic is the plain ROML/ROMH cartridge: one CHIP section for 8K carts,
// two for 16K carts, or a single CHIP loaded at $E000 for Ultimax carts.
// It has no registers of its own: the $DE00-$DFFF window reads as open bus
// and ignores writes.
type Generic struct {
	mode GameExromMode
	roml device.Device
	romh device.Device
}

// NewGeneric builds a Generic mapper from a CRT's CHIP entries. exrom/game
// are the CRT header's own EXROM/GAME flags, which for this mapper type
// fully determine the size and layout to expect.
func NewGeneric(chips []ChipEntry, exrom, game bool) (*Generic, error) {
	g := &Generic{}

	switch {
	case game && !exrom:
		// Normal 8K: one CHIP, ROML only.
		if len(chips) != 1 || len(chips[0].Data) != 0x2000 {
			return nil, errors.New(errors.InvalidCartridge, "generic 8K cartridge: expected one 8K CHIP, got %d", len(chips))
		}
		g.mode = Mode8K
		g.roml = device.NewROM(chips[0].Data, "ROML")

	case !game && !exrom:
		// Normal 16K: two CHIPs, ROML then ROMH.
		if len(chips) != 2 || len(chips[0].Data) != 0x2000 || len(chips[1].Data) != 0x2000 {
			return nil, errors.New(errors.InvalidCartridge, "generic 16K cartridge: expected two 8K CHIPs, got %d", len(chips))
		}
		g.mode = Mode16K
		g.roml = device.NewROM(chips[0].Data, "ROML")
		g.romh = device.NewROM(chips[1].Data, "ROMH")

	case !game && exrom:
		// Ultimax: a single 8K CHIP loaded at $E000.
		if len(chips) != 1 || len(chips[0].Data) != 0x2000 {
			return nil, errors.New(errors.InvalidCartridge, "ultimax cartridge: expected one 8K CHIP, got %d", len(chips))
		}
		g.mode = ModeUltimax
		g.romh = device.NewROM(chips[0].Data, "ROMH")

	default:
		return nil, errors.New(errors.InvalidCartridge, "generic cartridge: invisible GAME/EXROM combination not supported")
	}

	return g, nil
}

func (g *Generic) Type() string  { return "CART_GENERIC" }
func (g *Generic) Label() string { return "generic" }
func (g *Generic) Reset()        {}
func (g *Generic) Size() int     { return IOSize }

// Read answers the $DE00-$DFFF register window, which this mapper does not
// use: it always reads as open bus.
func (g *Generic) Read(addr uint32, mode device.ReadMode) uint8 { return 0xFF }

// Write is a no-op: this mapper has no registers.
func (g *Generic) Write(addr uint32, value uint8) {}

func (g *Generic) Dump(w io.Writer, base uint32) error {
	_, err := io.WriteString(w, "(generic cartridge, no registers)\n")
	return err
}

func (g *Generic) Mode() GameExromMode { return g.mode }

func (g *Generic) RAMInfo() []cartridge.RAMInfo { return nil }

func (g *Generic) GetDevice(addr uint16, romhLine, romlLine bool) (aspace.Slot, aspace.Slot) {
	switch g.mode {
	case Mode8K:
		if romlLine && g.roml != nil {
			return aspace.Slot{Device: g.roml, Base: uint32(addr) - romlLoadAddr}, aspace.Slot{}
		}

	case Mode16K:
		if romlLine && g.roml != nil {
			return aspace.Slot{Device: g.roml, Base: uint32(addr) - romlLoadAddr}, aspace.Slot{}
		}
		if romhLine && g.romh != nil {
			return aspace.Slot{Device: g.romh, Base: uint32(addr) - romhLoadAddr}, aspace.Slot{}
		}

	case ModeUltimax:
		if romhLine && g.romh != nil {
			return aspace.Slot{Device: g.romh, Base: uint32(addr) - u8RomlLoadAddr}, aspace.Slot{}
		}
	}

	return aspace.Slot{}, aspace.Slot{}
}
