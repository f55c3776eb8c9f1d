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

// Package keyboard translates host key events into the matrix scancodes of
// whichever machine is being emulated. The host-independent Key set below
// is the vocabulary a Keyboard.Load mapping file is written in; each
// concrete machine keyboard (C64, ZX-80/81, ZX-Spectrum) supplies its own
// Matrix mapping a handful of these Keys to row/column positions.
package keyboard

// Key is a host-independent key code (US-ANSI layout plus a handful of
// emulator-specific combinations).
type Key int

// KeyNone signals an unrecognised key.
const KeyNone Key = -1

const (
	KeyEsc Key = iota
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyPause

	KeyGraveAccent
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	Key0
	KeyMinus
	KeyEqual
	KeyBackspace

	KeyTab
	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT
	KeyY
	KeyU
	KeyI
	KeyO
	KeyP
	KeyOpenBracket
	KeyCloseBracket
	KeyBackslash

	KeyA
	KeyS
	KeyD
	KeyF
	KeyG
	KeyH
	KeyJ
	KeyK
	KeyL
	KeySemicolon
	KeyApostrophe
	KeyEnter

	KeyZ
	KeyX
	KeyC
	KeyV
	KeyB
	KeyN
	KeyM
	KeyComma
	KeyDot
	KeySlash

	KeySpace

	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	KeyCursorUp
	KeyCursorDown
	KeyCursorLeft
	KeyCursorRight

	KeyLT // missing in US-ANSI, present on ISO keyboards

	KeyNumpadSlash
	KeyNumpadAsterisk
	KeyNumpadMinus
	KeyNumpadPlus
	KeyNumpadEnter
	KeyNumpadDot
	KeyNumpad1
	KeyNumpad2
	KeyNumpad3
	KeyNumpad4
	KeyNumpad5
	KeyNumpad6
	KeyNumpad7
	KeyNumpad8
	KeyNumpad9
	KeyNumpad0

	KeyLeftShift
	KeyRightShift
	KeyLeftCtrl
	KeyRightCtrl
	KeyLeftAlt
	KeyRightAlt
	KeyFn
)

// KeyAltGr is an alias for the right Alt key, following the original's use
// of the right Alt position as the AltGr modifier.
const KeyAltGr = KeyRightAlt

var nameToKey = map[string]Key{
	"KEY_ESC":  KeyEsc,
	"KEY_F1":   KeyF1,
	"KEY_F2":   KeyF2,
	"KEY_F3":   KeyF3,
	"KEY_F4":   KeyF4,
	"KEY_F5":   KeyF5,
	"KEY_F6":   KeyF6,
	"KEY_F7":   KeyF7,
	"KEY_F8":   KeyF8,
	"KEY_F9":   KeyF9,
	"KEY_F10":  KeyF10,
	"KEY_F11":  KeyF11,
	"KEY_F12":  KeyF12,
	"KEY_PAUSE": KeyPause,

	"KEY_GRAVE_ACCENT": KeyGraveAccent,
	"KEY_1":            Key1,
	"KEY_2":            Key2,
	"KEY_3":            Key3,
	"KEY_4":             Key4,
	"KEY_5":            Key5,
	"KEY_6":            Key6,
	"KEY_7":            Key7,
	"KEY_8":            Key8,
	"KEY_9":            Key9,
	"KEY_0":            Key0,
	"KEY_MINUS":        KeyMinus,
	"KEY_EQUAL":        KeyEqual,
	"KEY_BACKSPACE":    KeyBackspace,

	"KEY_TAB":             KeyTab,
	"KEY_Q":                KeyQ,
	"KEY_W":                KeyW,
	"KEY_E":                KeyE,
	"KEY_R":                KeyR,
	"KEY_T":                KeyT,
	"KEY_Y":                KeyY,
	"KEY_U":                KeyU,
	"KEY_I":                KeyI,
	"KEY_O":                KeyO,
	"KEY_P":                KeyP,
	"KEY_OPEN_BRACKET":     KeyOpenBracket,
	"KEY_CLOSE_BRACKET":    KeyCloseBracket,
	"KEY_BACKSLASH":        KeyBackslash,

	"KEY_A":           KeyA,
	"KEY_S":           KeyS,
	"KEY_D":           KeyD,
	"KEY_F":           KeyF,
	"KEY_G":           KeyG,
	"KEY_H":           KeyH,
	"KEY_J":           KeyJ,
	"KEY_K":           KeyK,
	"KEY_L":           KeyL,
	"KEY_SEMICOLON":   KeySemicolon,
	"KEY_APOSTROPHE":  KeyApostrophe,
	"KEY_ENTER":       KeyEnter,

	"KEY_Z":     KeyZ,
	"KEY_X":     KeyX,
	"KEY_C":     KeyC,
	"KEY_V":     KeyV,
	"KEY_B":     KeyB,
	"KEY_N":     KeyN,
	"KEY_M":     KeyM,
	"KEY_COMMA": KeyComma,
	"KEY_DOT":   KeyDot,
	"KEY_SLASH": KeySlash,

	"KEY_SPACE": KeySpace,

	"KEY_INSERT":    KeyInsert,
	"KEY_DELETE":    KeyDelete,
	"KEY_HOME":      KeyHome,
	"KEY_END":       KeyEnd,
	"KEY_PAGE_UP":   KeyPageUp,
	"KEY_PAGE_DOWN": KeyPageDown,

	"KEY_CURSOR_UP":    KeyCursorUp,
	"KEY_CURSOR_DOWN":  KeyCursorDown,
	"KEY_CURSOR_LEFT":  KeyCursorLeft,
	"KEY_CURSOR_RIGHT": KeyCursorRight,

	"KEY_LT": KeyLT,

	"KEY_NUMPAD_SLASH":    KeyNumpadSlash,
	"KEY_NUMPAD_ASTERISK": KeyNumpadAsterisk,
	"KEY_NUMPAD_MINUS":    KeyNumpadMinus,
	"KEY_NUMPAD_PLUS":     KeyNumpadPlus,
	"KEY_NUMPAD_ENTER":    KeyNumpadEnter,
	"KEY_NUMPAD_DOT":      KeyNumpadDot,
	"KEY_NUMPAD_1":        KeyNumpad1,
	"KEY_NUMPAD_2":        KeyNumpad2,
	"KEY_NUMPAD_3":        KeyNumpad3,
	"KEY_NUMPAD_4":        KeyNumpad4,
	"KEY_NUMPAD_5":        KeyNumpad5,
	"KEY_NUMPAD_6":        KeyNumpad6,
	"KEY_NUMPAD_7":        KeyNumpad7,
	"KEY_NUMPAD_8":        KeyNumpad8,
	"KEY_NUMPAD_9":        KeyNumpad9,
	"KEY_NUMPAD_0":        KeyNumpad0,

	"KEY_LEFT_SHIFT":  KeyLeftShift,
	"KEY_RIGHT_SHIFT": KeyRightShift,
	"KEY_LEFT_CTRL":   KeyLeftCtrl,
	"KEY_RIGHT_CTRL":  KeyRightCtrl,
	"KEY_LEFT_ALT":    KeyLeftAlt,
	"KEY_RIGHT_ALT":   KeyRightAlt,
	"KEY_FN":          KeyFn,
}

var keyToName map[Key]string

func init() {
	keyToName = make(map[Key]string, len(nameToKey))
	for name, key := range nameToKey {
		keyToName[key] = name
	}
}

// ToKey converts a key name (eg. "KEY_A") to its Key code, or KeyNone if
// the name is not recognised.
func ToKey(name string) Key {
	if k, ok := nameToKey[name]; ok {
		return k
	}
	return KeyNone
}

// KeyName converts a Key code to its name, or "" if the code is not
// recognised.
func KeyName(key Key) string {
	return keyToName[key]
}

// KeyNames returns every recognised key name.
func KeyNames() []string {
	names := make([]string, 0, len(nameToKey))
	for name := range nameToKey {
		names = append(names, name)
	}
	return names
}
