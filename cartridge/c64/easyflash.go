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
	efMaxBanks = 64
	efBankMask = 0x3F
	efROMSize  = 0x2000

	efRomlLoadAddr  uint32 = 0x8000
	efRomhLoadAddr1 uint32 = 0xA000
	efRomhLoadAddr2 uint32 = 0xE000
)

// EasyFlash is a 1MiB flash cartridge organised as 64 banks of 8K ROML plus
// 8K ROMH, with an optional 256-byte RAM window at
// $DF00-$DFFF. Control register 1 ($DE00) selects the bank; control
// register 2 ($DE02) selects the GAME/EXROM mode, when its M bit asks for
// software control rather than the boot jumper.
//
// https://skoe.de/easyflash/files/devdocs/EasyFlash-ProgRef.pdf
type EasyFlash struct {
	mu sync.Mutex

	mode GameExromMode
	bank int
	reg2 uint8

	romsLo [efMaxBanks]device.Device
	romsHi [efMaxBanks]device.Device
	ram    *device.RAM

	forceRemap func()
}

// NewEasyFlash builds an EasyFlash mapper from a CRT's CHIP entries.
// exrom/game give the initial GAME/EXROM state, in force until the first
// write to control register 2 asks for software control.
func NewEasyFlash(chips []ChipEntry, exrom, game bool) (*EasyFlash, error) {
	e := &EasyFlash{mode: modeFromPins(exrom, game)}

	for i, chip := range chips {
		switch chip.Type {
		case ChipROM, ChipFlash:
			if len(chip.Data) != efROMSize {
				return nil, errors.New(errors.InvalidCartridge, "easyflash: chip %d: invalid ROM size %d", i, len(chip.Data))
			}
			if chip.Bank < 0 || chip.Bank >= efMaxBanks {
				return nil, errors.New(errors.InvalidCartridge, "easyflash: chip %d: invalid bank %d", i, chip.Bank)
			}

			rom := device.NewROM(chip.Data, fmt.Sprintf("EASYFLASH-%d", chip.Bank))
			switch chip.LoadAddr {
			case uint16(efRomlLoadAddr):
				e.romsLo[chip.Bank] = rom
			case uint16(efRomhLoadAddr1), uint16(efRomhLoadAddr2):
				e.romsHi[chip.Bank] = rom
			default:
				return nil, errors.New(errors.InvalidCartridge, "easyflash: chip %d: invalid load address $%04X", i, chip.LoadAddr)
			}

		case ChipRAM:
			e.ram = device.NewRAM(len(chip.Data), "EASYFLASH-RAM")

		default:
			return nil, errors.New(errors.InvalidCartridge, "easyflash: chip %d: unsupported chip type %d", i, chip.Type)
		}
	}

	return e, nil
}

// modeFromPins maps a CRT header's (exrom, game) flags onto the same
// GameExromMode encoding every mapper in this package shares.
func modeFromPins(exrom, game bool) GameExromMode {
	var m GameExromMode
	if game {
		m |= pinGAME
	}
	if exrom {
		m |= pinEXROM
	}
	return m
}

// SetForceRemap installs the callback the control registers invoke after
// changing the bank or the GAME/EXROM mode, forcing the PLA to recompute
// its memory map.
func (e *EasyFlash) SetForceRemap(fn func()) {
	e.mu.Lock()
	e.forceRemap = fn
	e.mu.Unlock()
}

func (e *EasyFlash) Type() string  { return "CART_EASY_FLASH" }
func (e *EasyFlash) Label() string { return "easyflash" }
func (e *EasyFlash) Reset()        {}
func (e *EasyFlash) Size() int     { return IOSize }

func (e *EasyFlash) Mode() GameExromMode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

func (e *EasyFlash) RAMInfo() []cartridge.RAMInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ram == nil {
		return nil
	}
	return []cartridge.RAMInfo{{
		Label:       "EASYFLASH-RAM",
		Active:      true,
		ReadOrigin:  0xDF00,
		ReadMemtop:  0xDFFF,
		WriteOrigin: 0xDF00,
		WriteMemtop: 0xDFFF,
	}}
}

// Read answers the $DE00-$DFFF register window: control register 1 at
// $DE00 (current bank), control register 2 at $DE02 (mode control), and
// the 256-byte onboard RAM at $DF00-$DFFF, if present.
func (e *EasyFlash) Read(addr uint32, mode device.ReadMode) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if addr < 256 {
		if addr&0x0002 == 0 {
			return uint8(e.bank)
		}
		return e.reg2
	}
	if e.ram != nil && addr >= 256 && addr < 512 {
		return e.ram.Read(addr-256, mode)
	}
	return 0xFF
}

// Write updates control register 1 (bank select, $DE00-$DEFF) or control
// register 2 (mode control, $DE02), or writes the onboard RAM window
// ($DF00-$DFFF).
func (e *EasyFlash) Write(addr uint32, value uint8) {
	e.mu.Lock()

	if addr < 256 {
		if addr&0x0002 == 0 {
			bank := int(value) & efBankMask
			changed := bank != e.bank
			e.bank = bank
			fn := e.forceRemap
			e.mu.Unlock()
			if changed && fn != nil {
				fn()
			}
			return
		}

		e.reg2 = value & 0x07
		old := e.mode
		switch e.reg2 {
		case 4:
			e.mode = ModeInvisible
		case 5:
			e.mode = ModeUltimax
		case 6:
			e.mode = Mode8K
		case 7:
			e.mode = Mode16K
		}
		changed := e.mode != old
		fn := e.forceRemap
		e.mu.Unlock()
		if changed && fn != nil {
			fn()
		}
		return
	}

	if e.ram != nil && addr >= 256 && addr < 512 {
		e.ram.Write(addr-256, value)
	}
	e.mu.Unlock()
}

func (e *EasyFlash) Dump(w io.Writer, base uint32) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, err := fmt.Fprintf(w, "(easyflash, bank %d, reg2 $%02X)\n", e.bank, e.reg2)
	return err
}

func (e *EasyFlash) GetDevice(addr uint16, romhLine, romlLine bool) (aspace.Slot, aspace.Slot) {
	e.mu.Lock()
	mode, bank := e.mode, e.bank
	e.mu.Unlock()

	switch mode {
	case Mode8K:
		if romlLine && e.romsLo[bank] != nil {
			return aspace.Slot{Device: e.romsLo[bank], Base: uint32(addr) - efRomlLoadAddr}, aspace.Slot{}
		}

	case Mode16K:
		if romlLine && e.romsLo[bank] != nil {
			return aspace.Slot{Device: e.romsLo[bank], Base: uint32(addr) - efRomlLoadAddr}, aspace.Slot{}
		}
		if romhLine && e.romsHi[bank] != nil {
			return aspace.Slot{Device: e.romsHi[bank], Base: uint32(addr) - efRomhLoadAddr1}, aspace.Slot{}
		}

	case ModeUltimax:
		if romlLine && e.romsLo[bank] != nil {
			return aspace.Slot{Device: e.romsLo[bank], Base: uint32(addr) - efRomlLoadAddr}, aspace.Slot{}
		}
		if romhLine && e.romsHi[bank] != nil {
			return aspace.Slot{Device: e.romsHi[bank], Base: uint32(addr) - efRomhLoadAddr2}, aspace.Slot{}
		}
	}

	return aspace.Slot{}, aspace.Slot{}
}
