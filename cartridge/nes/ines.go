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

// Package nes implements the NES cartridge subsystem: the iNES file loader
// and the concrete mapper hardware types an iNES header's mapper number
// selects. Unlike the C64's PLA, a NES cartridge has no bus controller
// mediating its memory map: every mapper decodes its own full CPU and PPU
// address windows directly, so Mapper embeds device.Device itself instead
// of answering a PLA's per-block query.
package nes

import (
	"fmt"

	"github.com/cdio-go/caio/errors"
)

const (
	hdrSize        = 16
	hdrSignature   = "NES\x1a"
	hdrTrainerSize = 512

	hdr6HorizArrangement = 0x01
	hdr6PersistentRAM    = 0x02
	hdr6Trainer          = 0x04
	hdr6AltNametable     = 0x08
	hdr7Unisystem        = 0x01
	hdr7Playchoice       = 0x02
	hdr7V20Format        = 0x0C
	hdr7MapperMask       = 0xF0

	hdr9TVPAL = 0x01
)

// Header is an iNES cartridge header: 16 bytes describing the PRG/CHR ROM
// sizes that follow it in the file, plus the mapper number and a handful of
// board flags spread across its low nibbles.
type Header struct {
	PRGSize uint8
	CHRSize uint8
	Flags6  uint8
	Flags7  uint8
	Flags8  uint8
	Flags9  uint8
}

// PRGBytes returns the PRG ROM size in bytes.
func (h Header) PRGBytes() int { return int(h.PRGSize) * 16384 }

// CHRBytes returns the CHR ROM size in bytes; zero means the cartridge uses
// CHR RAM instead of a fixed CHR ROM image.
func (h Header) CHRBytes() int { return int(h.CHRSize) * 8192 }

// Mapper returns the iNES mapper number, assembled from the high nibbles of
// flags 6 and 7.
func (h Header) Mapper() int { return int(h.Flags7&hdr7MapperMask) | int(h.Flags6>>4) }

// VerticalMirror reports the board's solder-pad nametable arrangement. Note
// the name mismatch with the bit it tests: a set HORIZ_ARRANGEMENT bit
// means vertical mirroring, per the iNES convention.
func (h Header) VerticalMirror() bool { return h.Flags6&hdr6HorizArrangement != 0 }

// PersistentRAM reports whether the cartridge carries a battery backing its
// PRG RAM.
func (h Header) PersistentRAM() bool { return h.Flags6&hdr6PersistentRAM != 0 }

// Trainer reports whether a 512-byte trainer precedes the PRG data.
func (h Header) Trainer() bool { return h.Flags6&hdr6Trainer != 0 }

// AlternativeNametable reports the alternative-nametable-layout flag.
func (h Header) AlternativeNametable() bool { return h.Flags6&hdr6AltNametable != 0 }

// Unisystem reports the PlayChoice/VS Unisystem flag.
func (h Header) Unisystem() bool { return h.Flags7&hdr7Unisystem != 0 }

// Playchoice reports the PlayChoice-10 flag.
func (h Header) Playchoice() bool { return h.Flags7&hdr7Playchoice != 0 }

// V20 reports whether the header is in the (unsupported) iNES 2.0 format.
func (h Header) V20() bool { return h.Flags7&hdr7V20Format == 0x08 }

// PRGRAMBytes returns the PRG RAM size in bytes. iNES 1.x headers with
// Flags8 == 0 mean one 8K bank, not zero bytes.
func (h Header) PRGRAMBytes() int {
	blocks := h.Flags8
	if blocks == 0 {
		blocks = 1
	}
	return int(blocks) * 8192
}

// TVPAL reports the PAL/NTSC flag.
func (h Header) TVPAL() bool { return h.Flags9&hdr9TVPAL != 0 }

func (h Header) String() string {
	mirror := "Horizontal"
	if h.VerticalMirror() {
		mirror = "Vertical"
	}
	tv := "NTSC"
	if h.TVPAL() {
		tv = "PAL"
	}
	return fmt.Sprintf("Mapper: %d, PRG RAM size: %d, PRG size: %d, CHR size: %d, "+
		"Nametable Mirroring: %s, Persistent RAM: %v, Trainer: %v, TV System: %s",
		h.Mapper(), h.PRGRAMBytes(), h.PRGBytes(), h.CHRBytes(), mirror,
		h.PersistentRAM(), h.Trainer(), tv)
}

// parseHeader parses and validates the 16-byte iNES header at the front of
// data, returning the header and the offset of the PRG data that follows it
// (after skipping a trainer, if present).
func parseHeader(data []byte) (Header, int, error) {
	if len(data) < hdrSize {
		return Header{}, 0, errors.New(errors.InvalidCartridge, "iNES file too short: %d bytes", len(data))
	}
	if string(data[:4]) != hdrSignature {
		return Header{}, 0, errors.New(errors.InvalidCartridge, "invalid iNES signature")
	}

	hdr := Header{
		PRGSize: data[4],
		CHRSize: data[5],
		Flags6:  data[6],
		Flags7:  data[7],
		Flags8:  data[8],
		Flags9:  data[9],
	}

	if hdr.V20() {
		return Header{}, 0, errors.New(errors.InvalidCartridge, "iNES v2.0 not supported")
	}

	offset := hdrSize
	if hdr.Trainer() {
		offset += hdrTrainerSize
	}

	return hdr, offset, nil
}

// splitROM parses an iNES header from data and slices the PRG and CHR ROM
// images out of it. A zero-length chr return means the cartridge uses CHR
// RAM rather than a fixed ROM image.
func splitROM(data []byte) (hdr Header, prg, chr []byte, err error) {
	hdr, offset, err := parseHeader(data)
	if err != nil {
		return Header{}, nil, nil, err
	}

	prgSize := hdr.PRGBytes()
	chrSize := hdr.CHRBytes()

	if offset+prgSize > len(data) {
		return Header{}, nil, nil, errors.New(errors.InvalidCartridge, "iNES file too short for %d bytes of PRG ROM", prgSize)
	}
	prg = data[offset : offset+prgSize]
	offset += prgSize

	if chrSize > 0 {
		if offset+chrSize > len(data) {
			return Header{}, nil, nil, errors.New(errors.InvalidCartridge, "iNES file too short for %d bytes of CHR ROM", chrSize)
		}
		chr = data[offset : offset+chrSize]
	}

	return hdr, prg, chr, nil
}
