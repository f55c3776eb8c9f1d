package keyboard_test

import (
	"strings"
	"testing"

	"github.com/cdio-go/caio/keyboard"
	"github.com/cdio-go/caio/test"
)

func TestToKeyAndKeyName(t *testing.T) {
	test.ExpectEquality(t, keyboard.KeyA, keyboard.ToKey("KEY_A"))
	test.ExpectEquality(t, "KEY_A", keyboard.KeyName(keyboard.KeyA))
	test.ExpectEquality(t, keyboard.KeyNone, keyboard.ToKey("NOT_A_KEY"))
	test.ExpectEquality(t, "", keyboard.KeyName(keyboard.Key(99999)))
}

var testLayout = map[string]keyboard.Position{
	"C64_A":     {Row: 1, Col: 2},
	"C64_B":     {Row: 3, Col: 4},
	"C64_SHIFT": {Row: 1, Col: 7},
	"C64_AT":    {Row: 5, Col: 6},
}

func newTestMatrix() *keyboard.Generic8x8Matrix {
	return keyboard.NewGeneric8x8Matrix(testLayout, keyboard.Position{Row: 1, Col: 7}, true)
}

func TestMatrixPressRelease(t *testing.T) {
	m := newTestMatrix()
	test.ExpectSuccess(t, m.AddKeyMap("KEY_A", false, false, "C64_A", false))

	m.Pressed(keyboard.KeyA)
	m.Write(0xFF &^ (1 << 1)) // select row 1
	test.ExpectEquality(t, uint8(0xFF&^(1<<2)), m.Read())

	m.Released(keyboard.KeyA)
	test.ExpectEquality(t, uint8(0xFF), m.Read())
}

func TestMatrixShiftedMapping(t *testing.T) {
	m := newTestMatrix()
	test.ExpectSuccess(t, m.AddKeyMap("KEY_B", false, false, "C64_B", false))
	test.ExpectSuccess(t, m.AddKeyMap("KEY_B", true, false, "C64_AT", true))

	// unshifted KEY_B -> C64_B, no forced shift
	m.Pressed(keyboard.KeyB)
	m.Write(0xFF &^ (1 << 3))
	test.ExpectEquality(t, uint8(0xFF&^(1<<4)), m.Read())
	m.Released(keyboard.KeyB)

	// shifted KEY_B -> C64_AT, with forced shift position held
	m.Pressed(keyboard.KeyLeftShift)
	m.Pressed(keyboard.KeyB)
	m.Write(0xFF &^ (1 << 5))
	test.ExpectEquality(t, uint8(0xFF&^(1<<6)), m.Read())
	m.Write(0xFF &^ (1 << 1))
	test.ExpectEquality(t, uint8(0xFF&^(1<<7)), m.Read())
}

// TestMatrixReleaseUsesMappingAtPressTime reproduces holding an unshifted
// key, pressing Shift without releasing it, then releasing the original
// key while Shift is still down. Released must clear the mapping that was
// actually asserted at press time, not re-resolve against the now-changed
// modifier state — otherwise the originally pressed position is left
// stuck held and a no-op clear happens against the shifted mapping.
func TestMatrixReleaseUsesMappingAtPressTime(t *testing.T) {
	m := newTestMatrix()
	test.ExpectSuccess(t, m.AddKeyMap("KEY_B", false, false, "C64_B", false))
	test.ExpectSuccess(t, m.AddKeyMap("KEY_B", true, false, "C64_AT", true))

	m.Pressed(keyboard.KeyB) // unshifted -> C64_B
	m.Pressed(keyboard.KeyLeftShift)
	m.Released(keyboard.KeyB) // still "shift held", must still clear C64_B

	m.Write(0xFF &^ (1 << 3)) // select row of C64_B
	test.ExpectEquality(t, uint8(0xFF), m.Read())

	m.Write(0xFF &^ (1 << 5)) // select row of C64_AT
	test.ExpectEquality(t, uint8(0xFF), m.Read())
}

func TestAddKeyMapUnknownNames(t *testing.T) {
	m := newTestMatrix()
	test.ExpectFailure(t, m.AddKeyMap("NOT_A_KEY", false, false, "C64_A", false))
	test.ExpectFailure(t, m.AddKeyMap("KEY_A", false, false, "NOT_A_POSITION", false))
}

func TestKeyboardLoad(t *testing.T) {
	data := "# comment\n\nKEY_A C64_A\nKEY_B SHIFT C64_AT SHIFT\n"
	m := newTestMatrix()
	kbd := keyboard.NewKeyboard(m)

	err := kbd.LoadFromString(data, "test-mapping")
	test.ExpectSuccess(t, err)

	kbd.KeyPressed(keyboard.KeyA)
	m.Write(0xFF &^ (1 << 1))
	test.ExpectEquality(t, uint8(0xFF&^(1<<2)), m.Read())
}

func TestKeyboardLoadInvalidLine(t *testing.T) {
	m := newTestMatrix()
	kbd := keyboard.NewKeyboard(m)
	err := kbd.LoadFromString("this is not valid\n", "bad")
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, true, strings.Contains(err.Error(), "bad"))
}

type fakeJoystick struct {
	pos     uint8
	resetID keyboard.JoystickID
	resets  int
}

func (j *fakeJoystick) Position() uint8            { return j.pos }
func (j *fakeJoystick) SetPosition(pos uint8)      { j.pos = pos }
func (j *fakeJoystick) Reset(id keyboard.JoystickID) {
	j.resetID = id
	j.resets++
}

func TestVJoystickOverlay(t *testing.T) {
	m := newTestMatrix()
	kbd := keyboard.NewKeyboard(m)

	vjoy := &fakeJoystick{}
	keys := keyboard.VJoyKeys{Up: keyboard.KeyCursorUp, Fire: keyboard.KeySpace}
	kbd.SetVJoystick(keys, vjoy)
	test.ExpectEquality(t, 1, vjoy.resets)

	kbd.KeyPressed(keyboard.KeyCursorUp)
	test.ExpectEquality(t, keyboard.JoyUp, vjoy.Position())

	kbd.KeyPressed(keyboard.KeySpace)
	test.ExpectEquality(t, keyboard.JoyUp|keyboard.JoyFire, vjoy.Position())

	kbd.KeyReleased(keyboard.KeyCursorUp)
	test.ExpectEquality(t, keyboard.JoyFire, vjoy.Position())
}

func TestKeyboardEnable(t *testing.T) {
	m := newTestMatrix()
	test.ExpectSuccess(t, m.AddKeyMap("KEY_A", false, false, "C64_A", false))
	kbd := keyboard.NewKeyboard(m)

	kbd.Enable(false)
	test.ExpectFailure(t, kbd.IsEnabled())

	kbd.KeyPressed(keyboard.KeyA)
	m.Write(0xFF &^ (1 << 1))
	test.ExpectEquality(t, uint8(0xFF), m.Read()) // disabled: matrix untouched
}
