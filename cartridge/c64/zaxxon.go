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

const (
	zaxROMLSize = 0x1000
	zaxROMHSize = 0x2000
	zaxROMLAddr = 0x8000
	zaxROMHMirr = 0x9000

	zaxROMHAddr0 uint16 = 0xA000
	zaxROMHAddr1 uint16 = 0xB000
)

// zaxxonROML wraps the cartridge's single 4K ROM image with the side
// effect the real hardware wires into it: any read access selects one of
// two ROMH banks, depending on which mirrored copy ($8000 or $9000) was
// read.
type zaxxonROML struct {
	device.Device
	bank   int
	notify func(bank int)
}

func (z *zaxxonROML) Read(addr uint32, mode device.ReadMode) uint8 {
	if mode != device.Peek {
		z.notify(z.bank)
	}
	return z.Device.Read(addr, mode)
}

// Zaxxon implements the (Super) Zaxxon mapper: a 4K ROML window at $8000,
// mirrored at $9000, where the read address's mirror half (not any
// register) selects which of two 8K ROMH banks appears at $A000.
type Zaxxon struct {
	mu sync.Mutex

	roml     device.Device
	wrapLow  *zaxxonROML
	wrapHigh *zaxxonROML
	romsHi   [2]device.Device
	bank     int

	forceRemap func()
}

// NewZaxxon builds a Zaxxon mapper from its three fixed CHIP entries: a 4K
// ROML at $8000 and two 8K ROMH banks at $A000.
func NewZaxxon(chips []ChipEntry) (*Zaxxon, error) {
	z := &Zaxxon{}

	for i, chip := range chips {
		switch {
		case chip.LoadAddr == zaxROMLAddr && len(chip.Data) == zaxROMLSize:
			z.roml = device.NewROM(chip.Data, "ZAXXON-ROML")

		case chip.LoadAddr == zaxROMHAddr0 && len(chip.Data) == zaxROMHSize:
			if chip.Bank < 0 || chip.Bank >= len(z.romsHi) {
				return nil, errors.New(errors.InvalidCartridge, "zaxxon: chip %d: invalid bank %d", i, chip.Bank)
			}
			z.romsHi[chip.Bank] = device.NewROM(chip.Data, "ZAXXON-ROMH")

		default:
			return nil, errors.New(errors.InvalidCartridge, "zaxxon: chip %d: unexpected load address $%04X / size %d", i, chip.LoadAddr, len(chip.Data))
		}
	}

	if z.roml == nil || z.romsHi[0] == nil || z.romsHi[1] == nil {
		return nil, errors.New(errors.InvalidCartridge, "zaxxon: missing ROML or ROMH chips")
	}

	z.wrapLow = &zaxxonROML{Device: z.roml, bank: 0, notify: z.selectBank}
	z.wrapHigh = &zaxxonROML{Device: z.roml, bank: 1, notify: z.selectBank}

	return z, nil
}

// SetForceRemap installs the callback a bank-selecting ROML read invokes,
// forcing the PLA to recompute its memory map.
func (z *Zaxxon) SetForceRemap(fn func()) {
	z.mu.Lock()
	z.forceRemap = fn
	z.mu.Unlock()
}

func (z *Zaxxon) selectBank(bank int) {
	z.mu.Lock()
	changed := bank != z.bank
	z.bank = bank
	fn := z.forceRemap
	z.mu.Unlock()
	if changed && fn != nil {
		fn()
	}
}

func (z *Zaxxon) Type() string                 { return "CART_ZAXXON" }
func (z *Zaxxon) Label() string                { return "zaxxon" }
func (z *Zaxxon) Reset()                       {}
func (z *Zaxxon) Size() int                    { return IOSize }
func (z *Zaxxon) Mode() GameExromMode          { return Mode16K }
func (z *Zaxxon) RAMInfo() []cartridge.RAMInfo { return nil }

func (z *Zaxxon) Read(addr uint32, mode device.ReadMode) uint8 { return 0xFF }
func (z *Zaxxon) Write(addr uint32, value uint8)               {}

func (z *Zaxxon) Dump(w io.Writer, base uint32) error {
	z.mu.Lock()
	defer z.mu.Unlock()
	_, err := io.WriteString(w, "(zaxxon, bank selected by ROML mirror half)\n")
	return err
}

func (z *Zaxxon) GetDevice(addr uint16, romhLine, romlLine bool) (aspace.Slot, aspace.Slot) {
	switch {
	case romlLine && addr == zaxROMLAddr:
		return aspace.Slot{Device: z.wrapLow, Base: 0}, aspace.Slot{}
	case romlLine && addr == zaxROMHMirr:
		return aspace.Slot{Device: z.wrapHigh, Base: 0}, aspace.Slot{}
	case romhLine && (addr == zaxROMHAddr0 || addr == zaxROMHAddr1):
		z.mu.Lock()
		bank := z.bank
		z.mu.Unlock()
		return aspace.Slot{Device: z.romsHi[bank], Base: uint32(addr) - uint32(zaxROMHAddr0)}, aspace.Slot{}
	}
	return aspace.Slot{}, aspace.Slot{}
}
