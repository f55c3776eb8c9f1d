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

	"github.com/cdio-go/caio/errors"
)

// Cartridge wraps a concrete Mapper with the CRT metadata it was loaded
// from and propagates GAME/EXROM pin changes to an observer (normally the
// PLA, via SetMapper/OnModeChange, which recomputes its memory map in
// response). Embedding Mapper promotes Device and GetDevice directly, so a
// *Cartridge satisfies Mapper itself.
type Cartridge struct {
	Mapper
	name string

	mu       sync.Mutex
	lastMode GameExromMode
	observer func(GameExromMode)
}

// wrap constructs a Cartridge around an already-built mapper.
func wrap(name string, m Mapper) *Cartridge {
	c := &Cartridge{Mapper: m, name: name, lastMode: m.Mode()}
	if f, ok := m.(Forcer); ok {
		f.SetForceRemap(func() { c.Propagate(true) })
	}
	return c
}

// Name returns the cartridge's name as recorded in its CRT header.
func (c *Cartridge) Name() string { return c.name }

// OnModeChange installs the callback Propagate invokes when the mapper's
// GAME/EXROM pins change. Pass nil to remove it.
func (c *Cartridge) OnModeChange(fn func(GameExromMode)) {
	c.mu.Lock()
	c.observer = fn
	c.mu.Unlock()
}

// Propagate checks the mapper's current GAME/EXROM pins against the last
// observed value and, if different (or force is set), notifies the
// observer. Mappers that implement Forcer reach this with force set
// through the callback wrap installs, after a register write changes
// their bank or GAME/EXROM mode.
func (c *Cartridge) Propagate(force bool) {
	c.mu.Lock()
	mode := c.Mapper.Mode()
	changed := mode != c.lastMode || force
	c.lastMode = mode
	fn := c.observer
	c.mu.Unlock()
	if changed && fn != nil {
		fn(mode)
	}
}

// Load reads a CRT file and constructs the Cartridge for its hardware
// type. appname names the persistent-state directory for any cartridges
// with battery-backed RAM (none of the types implemented here have any,
// but the parameter is threaded through for forward compatibility with
// ones that do).
func Load(path, appname string) (*Cartridge, error) {
	crt, err := Load_(path)
	if err != nil {
		return nil, err
	}

	var m Mapper
	switch crt.HWType {
	case HWGeneric:
		m, err = NewGeneric(crt.Chips, crt.EXROM, crt.Game)
	case HWSimonsBasic:
		m, err = NewSimonsBasic(crt.Chips)
	case HWOceanType1:
		m, err = NewOceanType1(crt.Chips)
	case HWGameSystem3:
		m, err = NewC64GS(crt.Chips)
	case HWZaxxon:
		m, err = NewZaxxon(crt.Chips)
	case HWMagicDesk:
		m, err = NewMagicDesk(crt.Chips)
	case HWEasyFlash:
		m, err = NewEasyFlash(crt.Chips, crt.EXROM, crt.Game)
	default:
		return nil, errors.New(errors.InvalidCartridge, "%s: unsupported hardware type %d", path, crt.HWType)
	}
	if err != nil {
		return nil, err
	}

	return wrap(crt.Name, m), nil
}

// Load_ is the CRT-only half of Load: it parses the CRT file at path
// without constructing a mapper for it.
func Load_(path string) (*CRT, error) {
	return loadCRT(path)
}
