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
	"github.com/cdio-go/caio/aspace"
	"github.com/cdio-go/caio/cartridge"
	"github.com/cdio-go/caio/device"
)

// GameExromMode is the pair of output pins a cartridge drives onto the
// PLA's GAME/EXROM inputs.
type GameExromMode uint8

const (
	pinGAME  GameExromMode = 0x01
	pinEXROM GameExromMode = 0x02
)

const (
	Mode8K        = pinGAME
	Mode16K       = GameExromMode(0)
	ModeUltimax   = pinEXROM
	ModeInvisible = pinGAME | pinEXROM
)

// IOSize is the size, in bytes, of the $DE00-$DFFF register window every
// cartridge exposes to the CPU.
const IOSize = 512

// Mapper is the interface every C64 cartridge hardware type implements.
// Its embedded device.Device covers the $DE00-$DFFF register window
// (offsets 0..IOSize-1, already normalised by the caller); GetDevice is the
// bank-switching query the PLA makes on every memory-map remap.
//
// This mirrors the teacher's unexported cartMapper interface in
// hardware/memory/cartridge/cartmapper.go, exported here since mappers are
// constructed by the CRT loader from outside this package rather than by
// an internal factory.
type Mapper interface {
	device.Device

	// GetDevice returns the read and write slot overrides for the 4K
	// block starting at addr, given the PLA's derived ROML/ROMH line
	// state for that block. A zero aspace.Slot (Device == nil) means "this
	// mapper does not override this block" and the PLA's own default
	// mapping for the current mode stands.
	GetDevice(addr uint16, romh, roml bool) (readSlot, writeSlot aspace.Slot)

	// Mode returns the mapper's current GAME/EXROM pin state.
	Mode() GameExromMode

	// RAMInfo reports the mapper's onboard RAM windows, if any, for the
	// monitor's memory map display.
	RAMInfo() []cartridge.RAMInfo
}

// Forcer is implemented by mappers whose internal register state (a bank
// select, typically) can change the effective memory map without changing
// the GAME/EXROM pins. Cartridge installs the callback at construction so
// such a mapper can force a PLA remap on demand.
type Forcer interface {
	SetForceRemap(func())
}
