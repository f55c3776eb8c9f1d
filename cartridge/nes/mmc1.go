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

package nes

import (
	"github.com/cdio-go/caio/device"
	"github.com/cdio-go/caio/errors"
)

const (
	mmc1ShiftReset  = 0x80
	mmc1CtrlFixedC0 = 0x0C
	mmc1ShiftDone   = 0x20
)

// MMC1 is mapper 001 (SxROM). A 5-bit shift register, loaded one bit per
// write to $8000-$FFFF (LSB first), commits its value to one of four
// internal registers on the fifth write, chosen by which address range
// that fifth write landed in: control at $8000, CHR bank 0 at $A000, CHR
// bank 1 at $C000, PRG bank at $E000. A write with its top bit set resets
// the shift register instead of loading a bit, and forces the PRG ROM bank
// mode to "fixed last bank at $C000".
type MMC1 struct {
	*base

	shreg uint8
	shbit uint8

	control uint8
	prgA18  bool
}

// NewMMC1 builds an MMC1 mapper from an already-parsed iNES header and ROM
// images.
func NewMMC1(label string, hdr Header, prg, chr, ramData []byte, ramDigest string) (*MMC1, error) {
	ramSize := hdr.PRGRAMBytes()
	if ramSize != 0 && ramSize%ramBankSize != 0 {
		return nil, errors.New(errors.InvalidCartridge, "mmc1: invalid PRG RAM size %d", ramSize)
	}

	prgSize := hdr.PRGBytes()
	if prgSize < prgBankSize || prgSize%prgBankSize != 0 {
		return nil, errors.New(errors.InvalidCartridge, "mmc1: invalid PRG ROM size %d, must be a multiple of %dK", prgSize, prgBankSize/1024)
	}

	chrSize := hdr.CHRBytes()
	if chrSize != 0 && chrSize%chrBankSize != 0 {
		return nil, errors.New(errors.InvalidCartridge, "mmc1: invalid CHR ROM size %d, must be a multiple of %dK", chrSize, chrBankSize/1024)
	}

	b, err := newBase("CART_SxROM", label, hdr, prg, chr, ramData, ramDigest)
	if err != nil {
		return nil, err
	}

	// PRG RAM larger than one 8K bank is itself bank-switched by the CHR
	// bank 0 register; base's default single whole-RAM bank only suits the
	// common 8K-or-less case.
	if b.ramDev.Size() > ramBankSize {
		b.ram = device.NewRAMBank(b.ramDev, ramBankSize)
	}

	m := &MMC1{base: b, shbit: 1}
	m.regControl(mmc1CtrlFixedC0)
	b.setWriteHook(m.shiftLoad)
	return m, nil
}

// shiftLoad is the write hook installed on base: every CPU write to
// $8000-$FFFF feeds the shift register, regardless of which of the four
// destination registers it will eventually commit to.
func (m *MMC1) shiftLoad(addr uint32, value uint8) {
	if addr < cpuPRGLo || addr >= cpuSize {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadBit(addr, value)
}

// loadBit is load_bit ported directly: shreg/shbit, and the register
// commit dispatch by address range, assume the caller holds m.mu.
func (m *MMC1) loadBit(addr uint32, data uint8) {
	if data&mmc1ShiftReset != 0 {
		m.regControl(m.control | mmc1CtrlFixedC0)
	} else {
		m.shreg |= (data & 1) * m.shbit
		m.shbit <<= 1
		if m.shbit != mmc1ShiftDone {
			return
		}

		switch addr >> 13 {
		case 2:
			m.regControl(m.shreg)
		case 3:
			m.regCHR(false, m.shreg)
		case 4:
			m.regCHR(true, m.shreg)
		case 5:
			m.regPRG(m.shreg)
		}
	}

	m.shbit = 1
	m.shreg = 0
}

// regControl decodes the control register: nametable arrangement, PRG ROM
// bank mode, and CHR bank granularity. Assumes m.mu is held.
func (m *MMC1) regControl(value uint8) {
	m.control = value

	switch value & 3 {
	case 0:
		m.mirror = MirrorOneScreenLower
	case 1:
		m.mirror = MirrorOneScreenUpper
	case 2:
		m.mirror = MirrorVertical
	case 3:
		m.mirror = MirrorHorizontal
	}

	switch (value >> 2) & 3 {
	case 0, 1:
		m.prgMode = prgMode32K
		m.prgLo.SetBank(0)
		m.prgHi.SetBank(1)
	case 2:
		m.prgMode = prgFixed8000
		m.prgLo.SetBank(0)
	case 3:
		m.prgMode = prgFixedC000
		m.prgHi.SetBank(m.prgHi.Banks() - 1)
	}

	if value&0x10 != 0 {
		m.chrMode = chrMode4K
	} else {
		m.chrMode = chrMode8K
	}
}

// regPRG decodes the PRG bank register: a 16K bank number, with the low bit
// ignored in 32K mode. Assumes m.mu is held.
func (m *MMC1) regPRG(value uint8) {
	bank := int(value & 0x0F)
	if m.prgA18 {
		bank |= 0x10
	}

	switch m.prgMode {
	case prgMode32K:
		m.prgLo.SetBank(bank &^ 1)
		m.prgHi.SetBank(bank | 1)
	case prgFixed8000:
		m.prgHi.SetBank(bank)
	case prgFixedC000:
		m.prgLo.SetBank(bank)
	}
}

// regCHR decodes one of the two CHR bank registers, including the
// additional PRG-RAM and PRG-ROM A18 bank bits larger boards repurpose its
// high bits for. Assumes m.mu is held.
func (m *MMC1) regCHR(hi bool, value uint8) {
	chrSize := m.chrSize()
	cmask := uint8(0x01)
	if chrSize >= 16384 {
		cmask |= 0x02
	}
	if chrSize >= 32768 {
		cmask |= 0x04
	}
	if chrSize >= 65536 {
		cmask |= 0x08
	}
	if chrSize == 131072 {
		cmask |= 0x10
	}
	cvalue := value & cmask

	if m.chrMode == chrMode4K {
		if hi {
			m.chrHi.SetBank(int(cvalue))
		} else {
			m.chrLo.SetBank(int(cvalue))
		}
	} else {
		m.chrLo.SetBank(int(cvalue &^ 1))
		m.chrHi.SetBank(int(cvalue | 1))
	}

	if ramSize := m.ramDev.Size(); ramSize > ramBankSize {
		is16k := ramSize == 16384
		shift := uint(2)
		rmask := uint8(0x08)
		if !is16k {
			rmask |= 0x04
			shift = 2
		} else {
			shift = 3
		}
		m.ram.SetBank(int((value & rmask) >> shift))
	}

	if m.prg.Size() == 524288 {
		a18 := value&0x10 != 0
		if a18 != m.prgA18 {
			m.prgA18 = a18
			if a18 {
				m.prgLo.SetBank(m.prgLo.Bank() | 0x10)
				m.prgHi.SetBank(m.prgHi.Bank() | 0x10)
			} else {
				m.prgLo.SetBank(m.prgLo.Bank() &^ 0x10)
				m.prgHi.SetBank(m.prgHi.Bank() &^ 0x10)
			}
		}
	}
}

// Reset restores the power-on bank arrangement and clears the shift
// register, forcing the control register back to "PRG fixed at $C000".
func (m *MMC1) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetBanks()
	m.shreg = 0
	m.shbit = 1
	m.prgA18 = false
	m.regControl(mmc1CtrlFixedC0)
}

// chrSize returns the size in bytes of whichever of chrROM/chrRAM backs
// this cartridge's pattern tables.
func (b *base) chrSize() int {
	if b.chrROM != nil {
		return b.chrROM.Size()
	}
	return b.chrRAM.Size()
}
