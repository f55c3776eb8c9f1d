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

// UxROM is mapper 002. CHR is always 8K of RAM (no CHR ROM is carried on
// the board); PRG ROM's low 16K window at $8000 is switched by any write to
// $8000-$FFFF, the value itself naming the bank, while the high 16K window
// at $C000 stays fixed to the cartridge's last bank.
type UxROM struct {
	*base
}

// NewUxROM builds a UxROM mapper from an already-parsed iNES header and ROM
// images.
func NewUxROM(label string, hdr Header, prg, ramData []byte, ramDigest string) (*UxROM, error) {
	if hdr.CHRBytes() != 0 {
		return nil, errors.New(errors.InvalidCartridge, "uxrom: invalid CHR ROM size %d, must be 0", hdr.CHRBytes())
	}

	prgSize := hdr.PRGBytes()
	if prgSize < prgBankSize || prgSize%prgBankSize != 0 {
		return nil, errors.New(errors.InvalidCartridge, "uxrom: invalid PRG ROM size %d, must be a multiple of %dK", prgSize, prgBankSize/1024)
	}

	b, err := newBase("CART_UxROM", label, hdr, prg, nil, ramData, ramDigest)
	if err != nil {
		return nil, err
	}

	u := &UxROM{base: b}
	b.setWriteHook(u.selectBank)
	return u, nil
}

// selectBank switches the low 16K PRG window to the bank named by value on
// any CPU write to $8000-$FFFF.
func (u *UxROM) selectBank(addr uint32, value uint8) {
	if addr < cpuPRGLo || addr >= cpuSize {
		return
	}
	u.mu.Lock()
	u.prgLo.SetBank(int(value))
	u.mu.Unlock()
}
