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
	"sync"

	"github.com/cdio-go/caio/aspace"
	"github.com/cdio-go/caio/device"
)

// PLA input pins. LORAM/HIRAM/CHAREN come from the CPU's I/O port at
// $0000/$0001; GAME/EXROM come from the cartridge port.
const (
	LORAM  uint8 = 0x01
	HIRAM  uint8 = 0x02
	CHAREN uint8 = 0x04
	GAME   uint8 = 0x08
	EXROM  uint8 = 0x10

	pinMask = LORAM | HIRAM | CHAREN | GAME | EXROM
)

const (
	blockSize = 0x1000
	addrMask  = 0xFFFF
	numBanks  = 32
	numBlocks = 16

	a15 uint16 = 1 << 15
	a14 uint16 = 1 << 14
	a13 uint16 = 1 << 13
)

// bank is one of the PLA's 32 precomputed 16-block (4K each) memory maps.
type bank [numBlocks]aspace.Slot

// PLA is the C64's bus decoder. It subdivides the 64K address space into 16
// 4K blocks and, on every LORAM/HIRAM/CHAREN/GAME/EXROM pin change,
// recomputes which device answers each block by selecting one of 32 fixed
// templates and then asking the installed cartridge Mapper (if any) to
// override individual blocks according to the ROML/ROMH line state it
// derives for that block.
//
// See https://www.c64-wiki.com/wiki/Bank_Switching and "The C64 PLA
// Dissected" (Thomas 'skoe' Giesel) for the decoding this type implements.
type PLA struct {
	*aspace.AddressSpace

	mu     sync.Mutex
	state  uint8
	mapper Mapper

	rmodes [numBanks]bank
	wmodes [numBanks]bank
}

// modeNotifier is implemented by cartridge wrappers (Cartridge) whose
// GAME/EXROM pins can change after construction; SetMapper hooks into it so
// such a change triggers an immediate remap.
type modeNotifier interface {
	OnModeChange(func(GameExromMode))
}

func sl(d device.Device, base uint32) aspace.Slot {
	return aspace.Slot{Device: d, Base: base}
}

// NewPLA builds the 32 read and 32 write memory-map templates around the
// machine's fixed devices (RAM, BASIC/KERNAL ROM, the character generator
// ROM, and the $D000 I/O page) and resets to the power-on pin state with no
// cartridge installed.
func NewPLA(ram, basic, kernal, chargen, io device.Device) *PLA {
	none := device.NewNone(0xFF)

	mode00 := bank{
		sl(ram, 0x0000), sl(ram, 0x1000), sl(ram, 0x2000), sl(ram, 0x3000),
		sl(ram, 0x4000), sl(ram, 0x5000), sl(ram, 0x6000), sl(ram, 0x7000),
		sl(ram, 0x8000), sl(ram, 0x9000), sl(ram, 0xA000), sl(ram, 0xB000),
		sl(ram, 0xC000), sl(ram, 0xD000), sl(ram, 0xE000), sl(ram, 0xF000),
	}
	mode01 := mode00

	mode02 := bank{
		sl(ram, 0x0000), sl(ram, 0x1000), sl(ram, 0x2000), sl(ram, 0x3000),
		sl(ram, 0x4000), sl(ram, 0x5000), sl(ram, 0x6000), sl(ram, 0x7000),
		sl(ram, 0x8000), sl(ram, 0x9000), sl(none, 0), sl(none, 0),
		sl(ram, 0xC000), sl(chargen, 0x0000), sl(kernal, 0x0000), sl(kernal, 0x1000),
	}

	mode03 := bank{
		sl(ram, 0x0000), sl(ram, 0x1000), sl(ram, 0x2000), sl(ram, 0x3000),
		sl(ram, 0x4000), sl(ram, 0x5000), sl(ram, 0x6000), sl(ram, 0x7000),
		sl(none, 0), sl(none, 0), sl(none, 0), sl(none, 0),
		sl(ram, 0xC000), sl(chargen, 0x0000), sl(kernal, 0x0000), sl(kernal, 0x1000),
	}

	mode04 := mode00

	mode05 := bank{
		sl(ram, 0x0000), sl(ram, 0x1000), sl(ram, 0x2000), sl(ram, 0x3000),
		sl(ram, 0x4000), sl(ram, 0x5000), sl(ram, 0x6000), sl(ram, 0x7000),
		sl(ram, 0x8000), sl(ram, 0x9000), sl(ram, 0xA000), sl(ram, 0xB000),
		sl(ram, 0xC000), sl(io, 0x0000), sl(ram, 0xE000), sl(ram, 0xF000),
	}

	mode06 := bank{
		sl(ram, 0x0000), sl(ram, 0x1000), sl(ram, 0x2000), sl(ram, 0x3000),
		sl(ram, 0x4000), sl(ram, 0x5000), sl(ram, 0x6000), sl(ram, 0x7000),
		sl(ram, 0x8000), sl(ram, 0x9000), sl(none, 0), sl(none, 0),
		sl(ram, 0xC000), sl(io, 0x0000), sl(kernal, 0x0000), sl(kernal, 0x1000),
	}

	mode07 := bank{
		sl(ram, 0x0000), sl(ram, 0x1000), sl(ram, 0x2000), sl(ram, 0x3000),
		sl(ram, 0x4000), sl(ram, 0x5000), sl(ram, 0x6000), sl(ram, 0x7000),
		sl(none, 0), sl(none, 0), sl(none, 0), sl(none, 0),
		sl(ram, 0xC000), sl(io, 0x0000), sl(kernal, 0x0000), sl(kernal, 0x1000),
	}

	mode08 := mode00

	mode09 := bank{
		sl(ram, 0x0000), sl(ram, 0x1000), sl(ram, 0x2000), sl(ram, 0x3000),
		sl(ram, 0x4000), sl(ram, 0x5000), sl(ram, 0x6000), sl(ram, 0x7000),
		sl(ram, 0x8000), sl(ram, 0x9000), sl(ram, 0xA000), sl(ram, 0xB000),
		sl(ram, 0xC000), sl(chargen, 0x0000), sl(ram, 0xE000), sl(ram, 0xF000),
	}

	mode10 := bank{
		sl(ram, 0x0000), sl(ram, 0x1000), sl(ram, 0x2000), sl(ram, 0x3000),
		sl(ram, 0x4000), sl(ram, 0x5000), sl(ram, 0x6000), sl(ram, 0x7000),
		sl(ram, 0x8000), sl(ram, 0x9000), sl(ram, 0xA000), sl(ram, 0xB000),
		sl(ram, 0xC000), sl(chargen, 0x0000), sl(kernal, 0x0000), sl(kernal, 0x1000),
	}

	mode11 := bank{
		sl(ram, 0x0000), sl(ram, 0x1000), sl(ram, 0x2000), sl(ram, 0x3000),
		sl(ram, 0x4000), sl(ram, 0x5000), sl(ram, 0x6000), sl(ram, 0x7000),
		sl(none, 0), sl(none, 0), sl(basic, 0x0000), sl(basic, 0x1000),
		sl(ram, 0xC000), sl(chargen, 0x0000), sl(kernal, 0x0000), sl(kernal, 0x1000),
	}

	mode12 := mode00
	mode13 := mode05

	mode14 := bank{
		sl(ram, 0x0000), sl(ram, 0x1000), sl(ram, 0x2000), sl(ram, 0x3000),
		sl(ram, 0x4000), sl(ram, 0x5000), sl(ram, 0x6000), sl(ram, 0x7000),
		sl(ram, 0x8000), sl(ram, 0x9000), sl(ram, 0xA000), sl(ram, 0xB000),
		sl(ram, 0xC000), sl(io, 0x0000), sl(kernal, 0x0000), sl(kernal, 0x1000),
	}

	mode15 := bank{
		sl(ram, 0x0000), sl(ram, 0x1000), sl(ram, 0x2000), sl(ram, 0x3000),
		sl(ram, 0x4000), sl(ram, 0x5000), sl(ram, 0x6000), sl(ram, 0x7000),
		sl(none, 0), sl(none, 0), sl(basic, 0x0000), sl(basic, 0x1000),
		sl(ram, 0xC000), sl(io, 0x0000), sl(kernal, 0x0000), sl(kernal, 0x1000),
	}

	mode16 := bank{
		sl(ram, 0x0000), sl(ram, 0x1000), sl(none, 0), sl(none, 0),
		sl(none, 0), sl(none, 0), sl(none, 0), sl(none, 0),
		sl(none, 0), sl(none, 0), sl(none, 0), sl(none, 0),
		sl(none, 0), sl(io, 0x0000), sl(none, 0), sl(none, 0),
	}

	mode17 := mode16
	mode18 := mode16
	mode19 := mode16
	mode20 := mode16
	mode21 := mode16
	mode22 := mode16
	mode23 := mode16
	mode24 := mode00
	mode25 := mode09
	mode26 := mode10

	mode27 := bank{
		sl(ram, 0x0000), sl(ram, 0x1000), sl(ram, 0x2000), sl(ram, 0x3000),
		sl(ram, 0x4000), sl(ram, 0x5000), sl(ram, 0x6000), sl(ram, 0x7000),
		sl(ram, 0x8000), sl(ram, 0x9000), sl(basic, 0x0000), sl(basic, 0x1000),
		sl(ram, 0xC000), sl(chargen, 0x0000), sl(kernal, 0x0000), sl(kernal, 0x1000),
	}

	mode28 := mode00
	mode29 := mode05
	mode30 := mode14

	mode31 := bank{
		sl(ram, 0x0000), sl(ram, 0x1000), sl(ram, 0x2000), sl(ram, 0x3000),
		sl(ram, 0x4000), sl(ram, 0x5000), sl(ram, 0x6000), sl(ram, 0x7000),
		sl(ram, 0x8000), sl(ram, 0x9000), sl(basic, 0x0000), sl(basic, 0x1000),
		sl(ram, 0xC000), sl(io, 0x0000), sl(kernal, 0x0000), sl(kernal, 0x1000),
	}

	wmode00 := mode00
	wmode01 := mode00
	wmode02 := mode00
	wmode03 := mode00
	wmode04 := mode00
	wmode05 := mode13
	wmode06 := mode13
	wmode07 := mode13
	wmode08 := mode00
	wmode09 := mode00
	wmode10 := mode00
	wmode11 := mode00
	wmode12 := mode00
	wmode13 := mode13
	wmode14 := mode13
	wmode15 := mode13

	wmode16 := bank{
		sl(ram, 0x0000), sl(ram, 0x1000), sl(none, 0), sl(none, 0),
		sl(none, 0), sl(none, 0), sl(none, 0), sl(none, 0),
		sl(ram, 0x8000), sl(ram, 0x9000), sl(none, 0), sl(none, 0),
		sl(none, 0), sl(io, 0x0000), sl(ram, 0xE000), sl(ram, 0xF000),
	}

	wmode17 := wmode16
	wmode18 := wmode16
	wmode19 := wmode16
	wmode20 := wmode16
	wmode21 := wmode16
	wmode22 := wmode16
	wmode23 := wmode16
	wmode24 := mode00
	wmode25 := mode00
	wmode26 := mode00
	wmode27 := mode00
	wmode28 := mode00
	wmode29 := mode13
	wmode30 := mode13
	wmode31 := mode13

	p := &PLA{}
	p.rmodes = [numBanks]bank{
		mode00, mode01, mode02, mode03, mode04, mode05, mode06, mode07,
		mode08, mode09, mode10, mode11, mode12, mode13, mode14, mode15,
		mode16, mode17, mode18, mode19, mode20, mode21, mode22, mode23,
		mode24, mode25, mode26, mode27, mode28, mode29, mode30, mode31,
	}
	p.wmodes = [numBanks]bank{
		wmode00, wmode01, wmode02, wmode03, wmode04, wmode05, wmode06, wmode07,
		wmode08, wmode09, wmode10, wmode11, wmode12, wmode13, wmode14, wmode15,
		wmode16, wmode17, wmode18, wmode19, wmode20, wmode21, wmode22, wmode23,
		wmode24, wmode25, wmode26, wmode27, wmode28, wmode29, wmode30, wmode31,
	}

	p.state = LORAM | HIRAM | CHAREN | GAME | EXROM
	rmaps, wmaps := p.compute()
	p.AddressSpace = aspace.New(blockSize, addrMask, rmaps, wmaps)
	return p
}

// SetMode sets or clears the input pins selected by mask and recomputes the
// memory map if the resulting state differs from the current one (or force
// is set).
func (p *PLA) SetMode(pins, mask uint8, force bool) {
	p.mu.Lock()
	mask &= pinMask
	data := (p.state &^ mask) | (pins & mask)
	changed := data != p.state || force
	p.state = data
	p.mu.Unlock()
	if changed {
		p.remap()
	}
}

// Mode returns the PLA's current input pin state.
func (p *PLA) Mode() uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// SetMapper installs the cartridge mapper consulted on every remap, or
// removes one if m is nil. Installing a mapper that implements
// modeNotifier (Cartridge does) applies that mapper's current GAME/EXROM
// pins and subscribes the PLA to its later pin changes.
func (p *PLA) SetMapper(m Mapper) {
	p.mu.Lock()
	p.mapper = m
	p.mu.Unlock()
	if notifier, ok := m.(modeNotifier); ok {
		apply := func(mode GameExromMode) {
			var pins uint8
			if mode&pinGAME != 0 {
				pins |= GAME
			}
			if mode&pinEXROM != 0 {
				pins |= EXROM
			}
			p.SetMode(pins, GAME|EXROM, true)
		}
		notifier.OnModeChange(apply)
		apply(m.Mode())
		return
	}
	p.remap()
}

// Reset restores the power-on pin state (all address lines visible to the
// CPU, BASIC/KERNAL/I-O mapped in) and recomputes the memory map.
func (p *PLA) Reset() {
	p.mu.Lock()
	p.state = LORAM | HIRAM | CHAREN | GAME | EXROM
	p.mu.Unlock()
	p.remap()
}

// romh reports whether, for the given pin state, the ROMH line is asserted
// for a block starting at addr.
//
// p21 <= n_hiram and a15 and not a14 and a13 and not n_aec and rd and not
// n_exrom and not n_game
// p22 <= a15 and a14 and a13 and not n_aec and n_exrom and not n_game
// See "The C64 PLA Dissected" (Thomas 'skoe' Giesel).
func romh(state uint8, addr uint16) bool {
	lines := addr & (a15 | a14 | a13)
	return (state&(HIRAM|EXROM|GAME) == HIRAM && lines == (a15|a13)) ||
		(state&(EXROM|GAME) == EXROM && lines == (a15|a14|a13))
}

// roml reports whether, for the given pin state, the ROML line is asserted
// for a block starting at addr.
//
// p19 <= n_loram and n_hiram and a15 and not a14 and not a13 and not n_aec
// and rd and not n_exrom
// p20 <= a15 and not a14 and not a13 and not n_aec and n_exrom and not
// n_game
func roml(state uint8, addr uint16) bool {
	lines := addr & (a15 | a14 | a13)
	return (state&(LORAM|HIRAM|EXROM) == (LORAM|HIRAM) && lines == a15) ||
		(state&(EXROM|GAME) == EXROM && lines == a15)
}

// compute selects the read/write templates for the current state and lets
// the installed mapper, if any, override individual blocks.
func (p *PLA) compute() ([]aspace.Slot, []aspace.Slot) {
	p.mu.Lock()
	state := p.state
	rb := p.rmodes[state]
	wb := p.wmodes[state]
	mapper := p.mapper
	p.mu.Unlock()

	if mapper != nil {
		for i := 0; i < numBlocks; i++ {
			addr := uint16(i * blockSize)
			rh := romh(state, addr)
			rl := roml(state, addr)
			rSlot, wSlot := mapper.GetDevice(addr, rh, rl)
			if rSlot.Device != nil {
				rb[i] = rSlot
			}
			if wSlot.Device != nil {
				wb[i] = wSlot
			}
		}
	}

	return rb[:], wb[:]
}

// remap recomputes the memory map and atomically installs it.
func (p *PLA) remap() {
	rmaps, wmaps := p.compute()
	p.AddressSpace.Reset(rmaps, wmaps)
}
