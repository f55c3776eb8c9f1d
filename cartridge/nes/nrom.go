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

import "github.com/cdio-go/caio/errors"

// NROM is mapper 000: no bank switching at all. PRG ROM is 16K (mirrored to
// fill $8000-$FFFF) or 32K (filling it outright); CHR is a fixed 8K ROM (or
// RAM, for the rare cartridge with none). PRG RAM is present only on Family
// Basic carts, but every emulator provides the full 8K window regardless.
type NROM struct {
	*base
}

// NewNROM builds an NROM mapper from an already-parsed iNES header and ROM
// images.
func NewNROM(label string, hdr Header, prg, chr, ramData []byte, ramDigest string) (*NROM, error) {
	prgSize := hdr.PRGBytes()
	if prgSize != 32768 && prgSize != 16384 {
		return nil, errors.New(errors.InvalidCartridge, "nrom: invalid PRG ROM size %d, must be 32K or 16K", prgSize)
	}

	chrSize := hdr.CHRBytes()
	if chrSize != 0 && chrSize != 8192 {
		return nil, errors.New(errors.InvalidCartridge, "nrom: invalid CHR ROM size %d, must be 8K", chrSize)
	}

	b, err := newBase("CART_NROM", label, hdr, prg, chr, ramData, ramDigest)
	if err != nil {
		return nil, err
	}

	// base's power-on bank arrangement (lo=0, hi=last bank) already gives
	// NROM the right layout: NROM-128's single 16K bank mirrors into both
	// halves since it is also its own last bank; NROM-256's two banks land
	// one in each half.
	return &NROM{base: b}, nil
}
