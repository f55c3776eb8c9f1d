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
	"sync"

	"github.com/cdio-go/caio/aspace"
	"github.com/cdio-go/caio/cartridge"
	"github.com/cdio-go/caio/device"
	"github.com/cdio-go/caio/errors"
)

const sbROMSize = 0x2000

// SimonsBasic is always loaded with 16K of ROM across $8000-$BFFF, but a
// single register at $DE00 toggles whether the upper half ($A000-$BFFF) is
// banked in: writing a non-zero value switches to 16K mode (ROML+ROMH
// visible), writing $00 switches to 8K mode (ROML only, letting the running BASIC
// extension reclaim $A000-$BFFF as RAM). This is a pure GAME/EXROM mode
// change; no bank-switching of the underlying ROM occurs.
type SimonsBasic struct {
	mu   sync.Mutex
	mode GameExromMode
	roml device.Device
	romh device.Device
}

// NewSimonsBasic builds a SimonsBasic mapper from its two fixed 8K CHIP
// entries (ROML at $8000, ROMH at $A000).
func NewSimonsBasic(chips []ChipEntry) (*SimonsBasic, error) {
	if len(chips) != 2 {
		return nil, errors.New(errors.InvalidCartridge, "simons basic: expected two 8K CHIPs, got %d", len(chips))
	}

	s := &SimonsBasic{mode: Mode16K}
	for i, chip := range chips {
		if len(chip.Data) != sbROMSize {
			return nil, errors.New(errors.InvalidCartridge, "simons basic: chip %d: invalid ROM size %d", i, len(chip.Data))
		}
		switch chip.LoadAddr {
		case uint16(romlLoadAddr):
			s.roml = device.NewROM(chip.Data, "SIMONSBASIC-ROML")
		case uint16(romhLoadAddr):
			s.romh = device.NewROM(chip.Data, "SIMONSBASIC-ROMH")
		default:
			return nil, errors.New(errors.InvalidCartridge, "simons basic: chip %d: invalid load address $%04X", i, chip.LoadAddr)
		}
	}
	if s.roml == nil || s.romh == nil {
		return nil, errors.New(errors.InvalidCartridge, "simons basic: missing ROML or ROMH chip")
	}

	return s, nil
}

func (s *SimonsBasic) Type() string  { return "CART_SIMONS_BASIC" }
func (s *SimonsBasic) Label() string { return "simons-basic" }
func (s *SimonsBasic) Reset()        {}
func (s *SimonsBasic) Size() int     { return IOSize }

func (s *SimonsBasic) Mode() GameExromMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *SimonsBasic) RAMInfo() []cartridge.RAMInfo { return nil }

func (s *SimonsBasic) Read(addr uint32, mode device.ReadMode) uint8 { return 0xFF }

// Write to $DE00 selects 8K mode when the value is $00 and 16K mode for
// any other value.
func (s *SimonsBasic) Write(addr uint32, value uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == 0 {
		s.mode = Mode8K
	} else {
		s.mode = Mode16K
	}
}

func (s *SimonsBasic) Dump(w io.Writer, base uint32) error {
	_, err := io.WriteString(w, "(simons basic, no RAM)\n")
	return err
}

func (s *SimonsBasic) GetDevice(addr uint16, romhLine, romlLine bool) (aspace.Slot, aspace.Slot) {
	s.mu.Lock()
	mode := s.mode
	s.mu.Unlock()

	switch mode {
	case Mode8K:
		if romlLine {
			return aspace.Slot{Device: s.roml, Base: uint32(addr) - romlLoadAddr}, aspace.Slot{}
		}
	case Mode16K:
		if romlLine {
			return aspace.Slot{Device: s.roml, Base: uint32(addr) - romlLoadAddr}, aspace.Slot{}
		}
		if romhLine {
			return aspace.Slot{Device: s.romh, Base: uint32(addr) - romhLoadAddr}, aspace.Slot{}
		}
	}

	return aspace.Slot{}, aspace.Slot{}
}
