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
	mdMaxBanks   = 128
	mdBankMask   = 0x7F
	mdDisableBit = 0x80
	mdROMSize    = 0x2000
)

// MagicDesk banks 8K ROML windows via a register at $DE00: bits 0-6 select
// the bank, bit 7 clears EXROM and disables the cartridge entirely.
type MagicDesk struct {
	mu sync.Mutex

	mode GameExromMode
	bank int
	roms [mdMaxBanks]device.Device

	forceRemap func()
}

// NewMagicDesk builds a MagicDesk mapper from a CRT's fixed-size 8K CHIP
// entries, one per bank.
func NewMagicDesk(chips []ChipEntry) (*MagicDesk, error) {
	m := &MagicDesk{mode: Mode8K}

	for i, chip := range chips {
		if len(chip.Data) != mdROMSize {
			return nil, errors.New(errors.InvalidCartridge, "magic desk: chip %d: invalid ROM size %d", i, len(chip.Data))
		}
		if chip.Bank < 0 || chip.Bank >= mdMaxBanks {
			return nil, errors.New(errors.InvalidCartridge, "magic desk: chip %d: invalid bank %d", i, chip.Bank)
		}
		m.roms[chip.Bank] = device.NewROM(chip.Data, fmt.Sprintf("MAGICDESK-%d", chip.Bank))
	}

	return m, nil
}

// SetForceRemap installs the callback Write invokes after updating the
// bank register, forcing the PLA to recompute its memory map even when the
// GAME/EXROM mode is unchanged.
func (m *MagicDesk) SetForceRemap(fn func()) {
	m.mu.Lock()
	m.forceRemap = fn
	m.mu.Unlock()
}

func (m *MagicDesk) Type() string  { return "CART_MAGIC_DESK" }
func (m *MagicDesk) Label() string { return "magic-desk" }
func (m *MagicDesk) Reset()        {}
func (m *MagicDesk) Size() int     { return IOSize }

func (m *MagicDesk) Mode() GameExromMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

func (m *MagicDesk) RAMInfo() []cartridge.RAMInfo { return nil }

func (m *MagicDesk) Read(addr uint32, mode device.ReadMode) uint8 { return 0xFF }

// Write to $DE00 sets the bank (bits 0-6) and, via bit 7, disables the
// cartridge by clearing EXROM.
func (m *MagicDesk) Write(addr uint32, value uint8) {
	m.mu.Lock()
	m.bank = int(value) & mdBankMask
	if value&mdDisableBit != 0 {
		m.mode = ModeInvisible
	} else {
		m.mode = Mode8K
	}
	fn := m.forceRemap
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (m *MagicDesk) Dump(w io.Writer, base uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := fmt.Fprintf(w, "(magic desk, bank %d)\n", m.bank)
	return err
}

func (m *MagicDesk) GetDevice(addr uint16, romhLine, romlLine bool) (aspace.Slot, aspace.Slot) {
	m.mu.Lock()
	mode, bank := m.mode, m.bank
	m.mu.Unlock()

	if mode == Mode8K && romlLine && m.roms[bank] != nil {
		return aspace.Slot{Device: m.roms[bank], Base: uint32(addr) - romlLoadAddr}, aspace.Slot{}
	}
	return aspace.Slot{}, aspace.Slot{}
}
