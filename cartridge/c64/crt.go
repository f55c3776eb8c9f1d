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

// Package c64 implements the Commodore 64 cartridge subsystem: the CRT
// file loader, the PLA bus controller that decodes the 64K address space
// into one of 32 fixed memory-map templates, and the concrete mapper
// hardware types a CRT's header can select.
package c64

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/cdio-go/caio/errors"
)

const (
	crtSignature  = "C64 CARTRIDGE   "
	chipSignature = "CHIP"
	crtHdrMinSize = 0x40
)

// ChipType is a CRT CHIP packet's memory type.
type ChipType uint16

const (
	ChipROM ChipType = iota
	ChipRAM
	ChipFlash
	ChipEEPROM
)

// HardwareType selects the concrete Mapper a CRT's header asks for.
type HardwareType uint16

const (
	HWGeneric        HardwareType = 0
	HWSimonsBasic    HardwareType = 4
	HWOceanType1     HardwareType = 5
	HWGameSystem3    HardwareType = 15
	HWZaxxon         HardwareType = 18
	HWMagicDesk      HardwareType = 19
	HWEasyFlash      HardwareType = 32
	HWEasyFlashXBank HardwareType = 33
)

// ChipEntry is one decoded CHIP packet: a bank of ROM, RAM, Flash or
// EEPROM data loaded at a fixed address.
type ChipEntry struct {
	Type     ChipType
	Bank     int
	LoadAddr uint16
	Data     []byte
}

// CRT is a fully loaded C64 cartridge image.
type CRT struct {
	Name   string
	HWType HardwareType
	EXROM  bool
	Game   bool
	Chips  []ChipEntry
}

// loadCRT reads and validates a CRT file. Every structural failure (bad
// signature, undersized header, a CHIP packet too large for the data
// remaining) is reported as InvalidCartridge with no partial CRT returned.
func loadCRT(path string) (*CRT, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.IOError, "can't open %s: %v", path, err)
	}
	defer f.Close()

	var hdr [crtHdrMinSize]byte
	if _, err := io.ReadFull(f, hdr[:]); err != nil {
		return nil, errors.New(errors.InvalidCartridge, "%s: truncated CRT header: %v", path, err)
	}
	if string(hdr[:16]) != crtSignature {
		return nil, errors.New(errors.InvalidCartridge, "%s: not a CRT file", path)
	}

	hdrSize := binary.BigEndian.Uint32(hdr[16:20])
	if hdrSize < crtHdrMinSize {
		return nil, errors.New(errors.InvalidCartridge, "%s: CRT header size %d below minimum", path, hdrSize)
	}
	if hdrSize > crtHdrMinSize {
		if _, err := io.CopyN(io.Discard, f, int64(hdrSize-crtHdrMinSize)); err != nil {
			return nil, errors.New(errors.InvalidCartridge, "%s: truncated CRT header padding: %v", path, err)
		}
	}

	crt := &CRT{
		HWType: HardwareType(binary.BigEndian.Uint16(hdr[20:22])),
		EXROM:  hdr[22] != 0,
		Game:   hdr[23] != 0,
		Name:   trimNulString(hdr[32:64]),
	}

	for {
		var chdr [16]byte
		_, err := io.ReadFull(f, chdr[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.New(errors.InvalidCartridge, "%s: truncated CHIP header: %v", path, err)
		}
		if string(chdr[:4]) != chipSignature {
			return nil, errors.New(errors.InvalidCartridge, "%s: expected CHIP signature", path)
		}

		romSize := binary.BigEndian.Uint16(chdr[14:16])
		data := make([]byte, romSize)
		if _, err := io.ReadFull(f, data); err != nil {
			return nil, errors.New(errors.InvalidCartridge, "%s: truncated CHIP data: %v", path, err)
		}

		crt.Chips = append(crt.Chips, ChipEntry{
			Type:     ChipType(binary.BigEndian.Uint16(chdr[6:8])),
			Bank:     int(binary.BigEndian.Uint16(chdr[8:10])),
			LoadAddr: binary.BigEndian.Uint16(chdr[10:12]),
			Data:     data,
		})
	}

	if len(crt.Chips) == 0 {
		return nil, errors.New(errors.InvalidCartridge, "%s: no CHIP packets", path)
	}

	return crt, nil
}

func trimNulString(b []byte) string {
	i := 0
	for i < len(b) && b[i] != 0 {
		i++
	}
	return string(b[:i])
}
