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

package keyboard

import "github.com/cdio-go/caio/errors"

// Position identifies one row/column intersection of an 8x8 keyboard
// matrix — the layout shared by the C64, ZX-80/81, and ZX-Spectrum
// keyboards, which all scan by writing a negated row-select byte and
// reading back a negated column byte.
type Position struct {
	Row, Col uint8
}

type mapping struct {
	key       Key
	keyShift  bool
	keyAltgr  bool
	implPos   Position
	implShift bool
}

// Generic8x8Matrix implements Matrix for any machine keyboard whose layout
// fits the shared 8-row x 8-column scan model. A concrete machine keyboard
// constructs one with its own table translating implementation-side key
// names (the "impl_name" column of a mapping file) to Positions, and names
// its own Shift position so translation entries requiring Shift can force
// it down alongside the mapped key.
type Generic8x8Matrix struct {
	nameToPos map[string]Position
	shiftPos  Position
	hasShift  bool

	mappings []mapping

	held      [8][8]bool
	rowSelect uint8

	shiftHeld bool
	altgrHeld bool

	// pressed records, for each key currently down, the mapping that was
	// resolved against the modifier state at the moment it was pressed —
	// not the modifier state at release time, which may have changed
	// while the key was held (eg. Shift pressed after "2" but before "2"
	// is released must not make Released re-resolve to the Shifted
	// mapping).
	pressed []struct {
		key Key
		mp  mapping
	}
}

// NewGeneric8x8Matrix returns a matrix using nameToPos to resolve
// AddKeyMap's impl_name column. If the machine has a Shift position,
// pass it and hasShift=true so that mapping entries with implShift=true
// can force it down.
func NewGeneric8x8Matrix(nameToPos map[string]Position, shiftPos Position, hasShift bool) *Generic8x8Matrix {
	return &Generic8x8Matrix{
		nameToPos: nameToPos,
		shiftPos:  shiftPos,
		hasShift:  hasShift,
		rowSelect: 0xFF,
	}
}

func (m *Generic8x8Matrix) Reset() {
	m.held = [8][8]bool{}
	m.rowSelect = 0xFF
	m.shiftHeld = false
	m.altgrHeld = false
	m.pressed = nil
}

func (m *Generic8x8Matrix) AddKeyMap(keyName string, keyShift, keyAltgr bool, implName string, implShift bool) error {
	key := ToKey(keyName)
	if key == KeyNone {
		return errors.New(errors.InvalidArgument, "unknown key name %q", keyName)
	}

	pos, ok := m.nameToPos[implName]
	if !ok {
		return errors.New(errors.InvalidArgument, "unknown implementation key name %q", implName)
	}

	m.mappings = append(m.mappings, mapping{
		key:       key,
		keyShift:  keyShift,
		keyAltgr:  keyAltgr,
		implPos:   pos,
		implShift: implShift,
	})
	return nil
}

func (m *Generic8x8Matrix) ClearKeyMap() {
	m.mappings = nil
}

// find returns the best mapping for key given the modifier state currently
// held, preferring an exact (shift, altgr) match and falling back to any
// mapping registered for the same key.
func (m *Generic8x8Matrix) find(key Key) (mapping, bool) {
	var fallback mapping
	found := false
	for _, mp := range m.mappings {
		if mp.key != key {
			continue
		}
		if mp.keyShift == m.shiftHeld && mp.keyAltgr == m.altgrHeld {
			return mp, true
		}
		if !found {
			fallback = mp
			found = true
		}
	}
	return fallback, found
}

func (m *Generic8x8Matrix) Pressed(key Key) {
	switch key {
	case KeyLeftShift, KeyRightShift:
		m.shiftHeld = true
	case KeyAltGr:
		m.altgrHeld = true
	}

	mp, ok := m.find(key)
	if !ok {
		return
	}

	m.held[mp.implPos.Row][mp.implPos.Col] = true
	if mp.implShift && m.hasShift {
		m.held[m.shiftPos.Row][m.shiftPos.Col] = true
	}

	m.pressed = append(m.pressed, struct {
		key Key
		mp  mapping
	}{key, mp})
}

func (m *Generic8x8Matrix) Released(key Key) {
	for i, p := range m.pressed {
		if p.key != key {
			continue
		}

		m.held[p.mp.implPos.Row][p.mp.implPos.Col] = false
		if p.mp.implShift && m.hasShift {
			m.held[m.shiftPos.Row][m.shiftPos.Col] = false
		}

		m.pressed = append(m.pressed[:i], m.pressed[i+1:]...)
		break
	}

	switch key {
	case KeyLeftShift, KeyRightShift:
		m.shiftHeld = false
	case KeyAltGr:
		m.altgrHeld = false
	}
}

// Read returns the negated column values resulting from every row
// currently selected (0 bit) in the last Write.
func (m *Generic8x8Matrix) Read() uint8 {
	var cols uint8 = 0xFF
	for row := 0; row < 8; row++ {
		if m.rowSelect&(1<<uint(row)) != 0 {
			continue
		}
		for col := 0; col < 8; col++ {
			if m.held[row][col] {
				cols &^= 1 << uint(col)
			}
		}
	}
	return cols
}

// Write selects the negated row(s) to scan on the next Read.
func (m *Generic8x8Matrix) Write(row uint8) {
	m.rowSelect = row
}
