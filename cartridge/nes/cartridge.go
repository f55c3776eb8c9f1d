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
	"fmt"
	"io"
	"sync"

	"github.com/cdio-go/caio/cartridge"
	"github.com/cdio-go/caio/device"
	"github.com/cdio-go/caio/errors"
)

const (
	cpuRAMBase = 0x2000 // CPU $6000, relative to cpuBase ($4000)
	cpuPRGLo   = 0x4000 // CPU $8000
	cpuPRGHi   = 0x8000 // CPU $C000
	cpuSize    = 0xC000 // $4000-$FFFF

	prgBankSize = 16384
	ramBankSize = 8192

	chrHiBase   = 0x1000 // PPU $1000
	ppuVRAMBase = 0x2000 // PPU $2000
	ppuSize     = 0x3000 // $0000-$2FFF
	chrBankSize = 4096
	chrRAMSize  = 8192
	vramSize    = 2048
	vramMask    = vramSize - 1

	a10 = 0x0400
	a11 = 0x0800
	a12 = 0x1000
)

// Mirroring is a cartridge's PPU nametable arrangement.
type Mirroring int

const (
	MirrorOneScreenLower Mirroring = iota
	MirrorOneScreenUpper
	MirrorVertical
	MirrorHorizontal
)

func (m Mirroring) String() string {
	switch m {
	case MirrorOneScreenLower:
		return "one-screen-lower"
	case MirrorOneScreenUpper:
		return "one-screen-upper"
	case MirrorVertical:
		return "vertical"
	case MirrorHorizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// prgMode is the current PRG ROM bank-switching arrangement.
type prgMode int

const (
	prgFixedC000 prgMode = iota
	prgFixed8000
	prgMode32K
)

// chrMode is the current CHR bank-switching granularity.
type chrMode int

const (
	chrMode8K chrMode = iota
	chrMode4K
)

// Mapper is the interface every NES cartridge hardware type implements. Its
// embedded device.Device is the CPU-visible window: addr 0 is CPU $4000,
// size is $C000 ($4000-$FFFF), with the board's PRG RAM and PRG ROM banks
// decoded internally. PPU returns the separate PPU-visible window: addr 0
// is PPU $0000, size $3000 ($0000-$2FFF), covering the CHR banks and the
// board's nametable VRAM with mirroring applied.
//
// Unlike the C64's Mapper, which only overrides blocks a PLA asks it about,
// a NES Mapper owns its entire address window outright: there is no bus
// controller standing between the CPU/PPU and the cartridge.
type Mapper interface {
	device.Device

	// PPU returns the cartridge's PPU-side device.
	PPU() device.Device

	// Mirroring returns the cartridge's current nametable arrangement.
	Mirroring() Mirroring

	// RAMInfo reports the mapper's onboard RAM windows, if any, for the
	// monitor's memory map display.
	RAMInfo() []cartridge.RAMInfo
}

// base is the shared machinery every mapper in this package embeds: PRG
// RAM/ROM and CHR RAM/ROM bank views, board VRAM, and the CPU/PPU decode
// logic common to every board regardless of its bank-switching scheme.
// Concrete mappers add their own register writes on top, typically via
// setWriteHook.
type base struct {
	mu sync.Mutex

	typ    string
	label  string
	hdr    Header
	mirror Mirroring

	vram *device.RAM

	ramDev *device.RAM
	ram    *device.RAMBank

	prg     *device.ROM
	prgLo   *device.ROMBank
	prgHi   *device.ROMBank
	prgMode prgMode

	chrRAM  *device.RAM
	chrROM  *device.ROM
	chrLo   *device.RAMBank
	chrHi   *device.RAMBank
	chrMode chrMode

	ppu       ppuView
	writeHook func(addr uint32, value uint8)

	ramDigest string
	ramInfo   []cartridge.RAMInfo
}

// newBase builds the shared device state for a cartridge from its parsed
// iNES header and ROM images. ramData is the PRG RAM's initial content
// (zero-filled unless a persistent save was found) and must already be
// hdr.PRGRAMBytes() bytes long.
func newBase(typ, label string, hdr Header, prg, chr, ramData []byte, ramDigest string) (*base, error) {
	b := &base{typ: typ, label: label, hdr: hdr, ramDigest: ramDigest}

	if hdr.VerticalMirror() {
		b.mirror = MirrorVertical
	} else {
		b.mirror = MirrorHorizontal
	}

	b.vram = device.NewRAM(vramSize, label+"-vram")

	b.ramDev = device.NewRAMFromBytes(ramData, label+"-ram")
	b.ram = device.NewRAMBank(b.ramDev, b.ramDev.Size())
	if b.ramDev.Size() > 0 {
		b.ramInfo = []cartridge.RAMInfo{{
			Label:       label + "-ram",
			Active:      true,
			ReadOrigin:  0x6000,
			ReadMemtop:  uint16(0x6000 + b.ramDev.Size() - 1),
			WriteOrigin: 0x6000,
			WriteMemtop: uint16(0x6000 + b.ramDev.Size() - 1),
		}}
	}

	b.prg = device.NewROM(prg, label+"-prg")
	b.prgLo = device.NewROMBank(b.prg, prgBankSize)
	b.prgHi = device.NewROMBank(b.prg, prgBankSize)

	if len(chr) == 0 {
		b.chrRAM = device.NewRAM(chrRAMSize, label+"-chr")
		b.chrLo = device.NewRAMBank(b.chrRAM, chrBankSize)
		b.chrHi = device.NewRAMBank(b.chrRAM, chrBankSize)
	} else {
		b.chrROM = device.NewROM(chr, label+"-chr")
		b.chrLo = device.NewROMBank(b.chrROM, chrBankSize)
		b.chrHi = device.NewROMBank(b.chrROM, chrBankSize)
	}

	b.ppu = ppuView{b: b}
	b.resetBanks()

	return b, nil
}

// resetBanks restores the power-on bank arrangement every mapper starts
// from: PRG fixed at $C000 to the last bank, CHR split into two independent
// 4K banks at their default positions.
func (b *base) resetBanks() {
	b.prgMode = prgFixedC000
	b.prgLo.SetBank(0)
	b.prgHi.SetBank(b.prgHi.Banks() - 1)

	b.chrMode = chrMode8K
	b.chrLo.SetBank(0)
	b.chrHi.SetBank(1)
}

// setWriteHook installs the callback Write invokes with every CPU-side
// write (including ones to the PRG ROM range, which the board itself
// ignores), mirroring the way each mapper in this package watches for its
// own bank-select register writes.
func (b *base) setWriteHook(fn func(addr uint32, value uint8)) {
	b.writeHook = fn
}

func (b *base) Type() string  { return b.typ }
func (b *base) Label() string { return b.label }
func (b *base) Size() int     { return cpuSize }

func (b *base) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resetBanks()
}

func (b *base) Read(addr uint32, mode device.ReadMode) uint8 {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case addr < cpuRAMBase:
		// Unmapped: CPU $4000-$5FFF.
		return 0
	case addr < cpuPRGLo:
		return b.ram.Read(addr-cpuRAMBase, mode)
	case addr < cpuPRGHi:
		return b.prgLo.Read(addr-cpuPRGLo, mode)
	default:
		return b.prgHi.Read(addr-cpuPRGHi, mode)
	}
}

func (b *base) Write(addr uint32, value uint8) {
	if hook := b.writeHook; hook != nil {
		hook(addr, value)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if addr >= cpuRAMBase && addr < cpuPRGLo {
		b.ram.Write(addr-cpuRAMBase, value)
	}
}

func (b *base) Dump(w io.Writer, base uint32) error {
	_, err := fmt.Fprintf(w, "(%s, mirroring %s)\n", b.typ, b.mirror)
	return err
}

func (b *base) PPU() device.Device { return &b.ppu }

func (b *base) Mirroring() Mirroring {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mirror
}

func (b *base) RAMInfo() []cartridge.RAMInfo { return b.ramInfo }

// persistentDigest returns the digest the mapper's PRG RAM is saved under,
// or "" if it has none.
func (b *base) persistentDigest() string {
	if !b.hdr.PersistentRAM() {
		return ""
	}
	return b.ramDigest
}

// persistentData returns the current PRG RAM contents for saving.
func (b *base) persistentData() []byte { return b.ramDev.Bytes() }

// ppuView adapts base's PPU-side decode logic (CHR banks plus VRAM, with
// nametable mirroring applied) to device.Device, so a Mapper's PPU()
// accessor can hand it out directly.
type ppuView struct {
	b *base
}

func (p *ppuView) Type() string  { return p.b.typ + "-PPU" }
func (p *ppuView) Label() string { return p.b.label + "-ppu" }
func (p *ppuView) Reset()        {}
func (p *ppuView) Size() int     { return ppuSize }

func (p *ppuView) Read(addr uint32, mode device.ReadMode) uint8 {
	b := p.b
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case addr < chrHiBase:
		return b.chrLo.Read(addr, mode)
	case addr < ppuVRAMBase:
		return b.chrHi.Read(addr-chrHiBase, mode)
	default:
		a := b.vramMirror(addr-ppuVRAMBase) & vramMask
		return b.vram.Read(a, mode)
	}
}

func (p *ppuView) Write(addr uint32, value uint8) {
	b := p.b
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case addr < chrHiBase:
		b.chrLo.Write(addr, value)
	case addr < ppuVRAMBase:
		b.chrHi.Write(addr-chrHiBase, value)
	default:
		a := b.vramMirror(addr-ppuVRAMBase) & vramMask
		b.vram.Write(a, value)
	}
}

func (p *ppuView) Dump(w io.Writer, base uint32) error {
	_, err := io.WriteString(w, "(nes ppu: chr + vram)\n")
	return err
}

// vramMirror maps a logical nametable address (relative to PPU $2000) onto
// the board's physical 2K VRAM according to the cartridge's current
// mirroring arrangement.
func (b *base) vramMirror(addr uint32) uint32 {
	if addr >= 0x1000 {
		addr &^= a12
	}

	switch b.mirror {
	case MirrorOneScreenLower:
		return addr &^ (a10 | a11)
	case MirrorOneScreenUpper:
		return (addr &^ (a10 | a11)) | a10
	case MirrorVertical:
		return addr
	case MirrorHorizontal:
		bit10 := (addr & a11) >> 1
		return (addr &^ (a11 | a10)) | bit10
	default:
		return addr
	}
}

// loadPRGRAM reads persistent PRG RAM for a cartridge identified by digest,
// if the header marks it persistent; otherwise it returns a fresh
// zero-filled buffer of the right size.
func loadPRGRAM(appname, digest string, hdr Header) ([]byte, error) {
	size := hdr.PRGRAMBytes()
	if !hdr.PersistentRAM() {
		return make([]byte, size), nil
	}
	data, err := cartridge.LoadPersistentRAM(appname, digest, size)
	if err != nil {
		return nil, errors.New(errors.IOError, "%v", err)
	}
	return data, nil
}

// SavePersistentRAM saves m's PRG RAM under its cartridge digest, if its
// header marked it persistent. Mappers without persistent RAM no-op.
func SavePersistentRAM(appname string, m Mapper) error {
	p, ok := m.(interface {
		persistentDigest() string
		persistentData() []byte
	})
	if !ok {
		return nil
	}
	digest := p.persistentDigest()
	if digest == "" {
		return nil
	}
	return cartridge.SavePersistentRAM(appname, digest, p.persistentData())
}
