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
	oceanMaxBanks = 64
	oceanBankMask = 0x3F
	oceanModeBit  = 0x40
	oceanROMSize  = 0x2000
)

// OceanType1 banks 8K (or, for larger images, paired 8K ROML+ROMH 16K)
// windows via a single register at $DE00: bits 0-5 select the bank, bit 6
// selects whether ROMH is banked in alongside ROML.
type OceanType1 struct {
	mu sync.Mutex

	mode GameExromMode
	bank int

	romsLo [oceanMaxBanks]device.Device
	romsHi [oceanMaxBanks]device.Device

	forceRemap func()
}

// NewOceanType1 builds an OceanType1 mapper from a CRT's CHIP entries, one
// 8K ROM per bank (and, for 128K+ images, a second 8K ROM at $A000 per
// bank).
func NewOceanType1(chips []ChipEntry) (*OceanType1, error) {
	o := &OceanType1{mode: Mode8K}

	for i, chip := range chips {
		if len(chip.Data) != oceanROMSize {
			return nil, errors.New(errors.InvalidCartridge, "ocean type 1: chip %d: invalid ROM size %d", i, len(chip.Data))
		}
		if chip.Bank < 0 || chip.Bank >= oceanMaxBanks {
			return nil, errors.New(errors.InvalidCartridge, "ocean type 1: chip %d: invalid bank %d", i, chip.Bank)
		}

		rom := device.NewROM(chip.Data, fmt.Sprintf("OCEAN1-%d", chip.Bank))
		switch chip.LoadAddr {
		case uint16(romlLoadAddr):
			o.romsLo[chip.Bank] = rom
		case uint16(romhLoadAddr):
			o.romsHi[chip.Bank] = rom
			o.mode = Mode16K
		default:
			return nil, errors.New(errors.InvalidCartridge, "ocean type 1: chip %d: invalid load address $%04X", i, chip.LoadAddr)
		}
	}

	return o, nil
}

// SetForceRemap installs the callback Write invokes after updating the
// bank register, forcing the PLA to recompute its memory map even when the
// GAME/EXROM mode is unchanged.
func (o *OceanType1) SetForceRemap(fn func()) {
	o.mu.Lock()
	o.forceRemap = fn
	o.mu.Unlock()
}

func (o *OceanType1) Type() string  { return "CART_OCEAN_TYPE1" }
func (o *OceanType1) Label() string { return "ocean-type1" }
func (o *OceanType1) Reset()        {}
func (o *OceanType1) Size() int     { return IOSize }

func (o *OceanType1) Mode() GameExromMode {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mode
}

func (o *OceanType1) RAMInfo() []cartridge.RAMInfo { return nil }

func (o *OceanType1) Read(addr uint32, mode device.ReadMode) uint8 { return 0xFF }

// Write to $DE00 sets the bank (bits 0-5) and whether ROMH is banked in
// alongside ROML (bit 6).
func (o *OceanType1) Write(addr uint32, value uint8) {
	o.mu.Lock()
	o.bank = int(value) & oceanBankMask
	if value&oceanModeBit != 0 {
		o.mode = Mode16K
	} else {
		o.mode = Mode8K
	}
	fn := o.forceRemap
	o.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (o *OceanType1) Dump(w io.Writer, base uint32) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err := fmt.Fprintf(w, "(ocean type 1, bank %d)\n", o.bank)
	return err
}

func (o *OceanType1) GetDevice(addr uint16, romhLine, romlLine bool) (aspace.Slot, aspace.Slot) {
	o.mu.Lock()
	mode, bank := o.mode, o.bank
	o.mu.Unlock()

	switch mode {
	case Mode8K:
		if romlLine && o.romsLo[bank] != nil {
			return aspace.Slot{Device: o.romsLo[bank], Base: uint32(addr) - romlLoadAddr}, aspace.Slot{}
		}
	case Mode16K:
		if romlLine && o.romsLo[bank] != nil {
			return aspace.Slot{Device: o.romsLo[bank], Base: uint32(addr) - romlLoadAddr}, aspace.Slot{}
		}
		if romhLine && o.romsHi[bank] != nil {
			return aspace.Slot{Device: o.romsHi[bank], Base: uint32(addr) - romhLoadAddr}, aspace.Slot{}
		}
	}

	return aspace.Slot{}, aspace.Slot{}
}
