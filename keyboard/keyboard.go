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

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/cdio-go/caio/errors"
)

// Matrix is implemented by a concrete machine keyboard (C64, ZX-80/81,
// ZX-Spectrum): the row/column scan geometry and the translation table from
// host Keys to that machine's own key combinations are entirely
// machine-specific, but every Matrix is driven the same way by Keyboard.
type Matrix interface {
	// Reset restores the matrix to its power-on (no keys held) state.
	Reset()

	// Pressed marks key as held in the matrix.
	Pressed(key Key)

	// Released marks key as no longer held in the matrix.
	Released(key Key)

	// Read returns the (negated) column values for the row last selected
	// by Write.
	Read() uint8

	// Write selects the (negated) row to scan on the next Read.
	Write(row uint8)

	// AddKeyMap installs one translation entry: a host key (optionally
	// held with Shift and/or AltGr) maps to one of the matrix's own key
	// combinations (optionally requiring its own Shift).
	AddKeyMap(keyName string, keyShift, keyAltgr bool, implName string, implShift bool) error

	// ClearKeyMap removes every installed translation entry.
	ClearKeyMap()
}

// lineRE matches one non-comment line of a key-mapping file:
// "key_name [SHIFT] [ALTGR] impl_name [SHIFT]"
var lineRE = regexp.MustCompile(`^\s*(\S+)\s+(?:(SHIFT)\s+)?(?:(ALTGR)\s+)?(\S+)(?:\s+(SHIFT))?\s*$`)

var commentRE = regexp.MustCompile(`^\s*#`)

// Keyboard drives a machine-specific Matrix from host key events, and
// overlays an optional virtual joystick on top of it: certain host keys
// move the virtual joystick instead of (or in addition to) reaching the
// matrix, depending on whether the keyboard itself is currently enabled.
type Keyboard struct {
	matrix  Matrix
	enabled bool

	vjoykeys VJoyKeys
	vjoy     Joystick
}

// NewKeyboard returns a Keyboard driving the given Matrix. The keyboard
// starts enabled.
func NewKeyboard(matrix Matrix) *Keyboard {
	return &Keyboard{matrix: matrix, enabled: true}
}

// Load reads a key-mapping file, replacing any previously installed
// mappings. Blank lines and lines starting with '#' are ignored.
func (k *Keyboard) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.New(errors.IOError, "can't open %s: %v", path, err)
	}
	defer f.Close()

	return k.load(f, path)
}

// LoadFromString parses mapping data held in memory rather than a file —
// used to install a built-in default mapping, or in tests.
func (k *Keyboard) LoadFromString(data, name string) error {
	return k.load(strings.NewReader(data), name)
}

func (k *Keyboard) load(r io.Reader, name string) error {
	k.matrix.ClearKeyMap()

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || commentRE.MatchString(line) {
			continue
		}

		upper := strings.ToUpper(line)
		m := lineRE.FindStringSubmatch(upper)
		if m == nil {
			return errors.New(errors.InvalidArgument, "%s: invalid entry at line %d: %q", name, lineno, line)
		}

		keyName := m[1]
		keyShift := m[2] == "SHIFT"
		keyAltgr := m[3] == "ALTGR"
		implName := m[4]
		implShift := m[5] == "SHIFT"

		if err := k.matrix.AddKeyMap(keyName, keyShift, keyAltgr, implName, implShift); err != nil {
			return errors.New(errors.InvalidArgument, "%s: invalid entry at line %d: %v", name, lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.New(errors.IOError, "%s: %v", name, err)
	}
	return nil
}

// SetVJoystick overlays a virtual joystick on this keyboard: keys in
// vjoykeys move vjoy's position instead of (or as well as) reaching the
// matrix. Passing a nil vjoy disconnects any previously attached joystick.
func (k *Keyboard) SetVJoystick(vjoykeys VJoyKeys, vjoy Joystick) {
	if k.vjoy != nil {
		k.vjoy.Reset(JoyIDVirtual)
	}
	k.vjoy = vjoy
	if k.vjoy != nil {
		k.vjoy.Reset(JoyIDVirtual)
		k.vjoykeys = vjoykeys
	}
}

// Enable turns the keyboard matrix on or off. The virtual joystick overlay
// is unaffected: joystick keys keep working even while the keyboard itself
// is disabled.
func (k *Keyboard) Enable(en bool) { k.enabled = en }

// IsEnabled reports whether the keyboard matrix is currently enabled.
func (k *Keyboard) IsEnabled() bool { return k.enabled }

// vjoyBit returns the position bit key corresponds to in vjoykeys, or 0 if
// key isn't one of the mapped joystick keys.
func (k *Keyboard) vjoyBit(key Key) uint8 {
	switch key {
	case k.vjoykeys.Up:
		return JoyUp
	case k.vjoykeys.Down:
		return JoyDown
	case k.vjoykeys.Left:
		return JoyLeft
	case k.vjoykeys.Right:
		return JoyRight
	case k.vjoykeys.Fire:
		return JoyFire
	default:
		return 0
	}
}

// KeyPressed must be called once per host key-press event. It updates the
// virtual joystick position (if key is one of its mapped keys) and, if the
// keyboard matrix is enabled, forwards the press to it.
func (k *Keyboard) KeyPressed(key Key) {
	if k.vjoy != nil {
		if bit := k.vjoyBit(key); bit != 0 {
			k.vjoy.SetPosition(k.vjoy.Position() | bit)
		}
	}
	if k.enabled {
		k.matrix.Pressed(key)
	}
}

// KeyReleased must be called once per host key-release event, mirroring
// KeyPressed.
func (k *Keyboard) KeyReleased(key Key) {
	if k.vjoy != nil {
		if bit := k.vjoyBit(key); bit != 0 {
			k.vjoy.SetPosition(k.vjoy.Position() &^ bit)
		}
	}
	if k.enabled {
		k.matrix.Released(key)
	}
}

// Reset restores the underlying matrix to its power-on state.
func (k *Keyboard) Reset() { k.matrix.Reset() }

// Read returns the (negated) column values for the row last selected by
// Write.
func (k *Keyboard) Read() uint8 { return k.matrix.Read() }

// Write selects the (negated) row to scan on the next Read.
func (k *Keyboard) Write(row uint8) { k.matrix.Write(row) }
