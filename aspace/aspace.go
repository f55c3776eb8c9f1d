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

// Package aspace implements the logical address space a CPU sees: a table
// of fixed-size blocks, each routed to a backing device.Device plus an
// offset into it. This is the piece that turns a flat CPU address into a
// Device.Read/Write call, and is shared unchanged across every machine this
// module hosts (C64, NES, ZX-80/81, ZX-Spectrum) — only the block table
// contents and block size differ per machine.
package aspace

import (
	"sync/atomic"

	"github.com/cdio-go/caio/device"
)

// Slot binds one block of the address space to a backing device and an
// offset within it. A PLA/mapper remap replaces the whole map (AddressSpace
// never mutates a single Slot in place) so that a remap is always visible
// atomically to the next access.
type Slot struct {
	Device device.Device
	Base   uint32
}

// AddressSpace routes CPU reads and writes through a table of block-sized
// slots. BlockSize must evenly divide the total address range; Mask is
// applied to every incoming address before decoding, so a machine with a
// narrower bus than 32 bits (eg. a 16-bit 6502/Z80 address bus) wraps
// silently instead of panicking.
type AddressSpace struct {
	blockSize uint32
	mask      uint32

	readMap  atomic.Pointer[[]Slot]
	writeMap atomic.Pointer[[]Slot]

	dataBus atomic.Uint32

	observer       atomic.Pointer[func(addr uint32, value uint8)]
	addressBusHook atomic.Pointer[func(addr uint32)]
}

// New constructs an AddressSpace with the given block size, address mask,
// and initial read/write maps. Both maps must have the same length; that
// length is the number of blocks the address space is divided into.
func New(blockSize, mask uint32, readMap, writeMap []Slot) *AddressSpace {
	a := &AddressSpace{blockSize: blockSize, mask: mask}
	a.readMap.Store(&readMap)
	a.writeMap.Store(&writeMap)
	return a
}

// decode resolves addr (already masked) to the slot and in-device offset
// that services it.
func (a *AddressSpace) decode(m []Slot, addr uint32) (Slot, uint32) {
	block := addr / a.blockSize
	slot := m[int(block)%len(m)]
	offset := slot.Base + (addr % a.blockSize)
	return slot, offset
}

// Read resolves addr through the current read map and returns the byte at
// it, updating the open-bus data latch as a side effect (unless mode is
// Peek, in which case the latch and any underlying device side effects are
// left undisturbed by the read itself — though a Device implementation with
// its own side-effecting Read must still honour Peek internally).
func (a *AddressSpace) Read(addr uint32, mode device.ReadMode) uint8 {
	addr &= a.mask
	m := *a.readMap.Load()
	slot, offset := a.decode(m, addr)
	value := slot.Device.Read(offset, mode)
	if mode != device.Peek {
		a.dataBus.Store(uint32(value))
	}
	return value
}

// Write resolves addr through the current write map, invokes the
// write-observer (if any) with the raw address and value, then forwards
// the write to the backing device and updates the open-bus data latch.
func (a *AddressSpace) Write(addr uint32, value uint8) {
	addr &= a.mask
	if obs := a.observer.Load(); obs != nil {
		(*obs)(addr, value)
	}
	m := *a.writeMap.Load()
	slot, offset := a.decode(m, addr)
	slot.Device.Write(offset, value)
	a.dataBus.Store(uint32(value))
}

// Reset atomically replaces the read and write maps, eg. after a
// cartridge/PLA remap. The caller (the clock thread, by the concurrency
// model this module follows) must be the sole mutator at any given moment;
// Reset itself is safe to call concurrently with Read/Write from other
// threads observing the old or new map, never a half-updated one.
func (a *AddressSpace) Reset(readMap, writeMap []Slot) {
	a.readMap.Store(&readMap)
	a.writeMap.Store(&writeMap)
}

// AddressBus notifies the address space that the bus address has changed
// without an accompanying read or write — used by machines whose chips
// derive signals from address-line transitions alone (the ZX-80/81 /INT
// line from A6, refresh-cycle character fetches). The default
// implementation does nothing; SetAddressBusHook installs a handler.
func (a *AddressSpace) AddressBus(addr uint32) {
	if hook := a.addressBusHook.Load(); hook != nil {
		(*hook)(addr)
	}
}

// SetAddressBusHook installs the callback AddressBus invokes. Pass nil to
// remove it, restoring the default no-op behaviour.
func (a *AddressSpace) SetAddressBusHook(fn func(addr uint32)) {
	if fn == nil {
		a.addressBusHook.Store(nil)
		return
	}
	a.addressBusHook.Store(&fn)
}

// DataBus returns the last value latched by a Read or Write: the open-bus
// byte a real CPU would see if it addressed an unmapped or write-only
// location immediately afterwards.
func (a *AddressSpace) DataBus() uint8 {
	return uint8(a.dataBus.Load())
}

// SetWriteObserver installs a callback invoked with the raw (already
// masked) address and value on every Write, before the underlying device
// is written. Used by cartridge mappers that watch for register writes in
// an address window they don't otherwise own. Pass nil to remove it.
func (a *AddressSpace) SetWriteObserver(fn func(addr uint32, value uint8)) {
	if fn == nil {
		a.observer.Store(nil)
		return
	}
	a.observer.Store(&fn)
}
