package nes_test

import (
	"testing"

	"github.com/cdio-go/caio/device"
	"github.com/cdio-go/caio/test"

	"github.com/cdio-go/caio/cartridge/nes"
)

func TestUxROMBankSwitchesLowWindowKeepsHighFixed(t *testing.T) {
	// Four 16K banks; byte 0 of each bank identifies it.
	prg := make([]byte, 4*16384)
	for bank := 0; bank < 4; bank++ {
		prg[bank*16384] = byte(0x10 + bank)
	}
	path := writeNES(t, buildINES(4, 0, 0x20, 0, 0, 0, prg, nil))

	m, err := nes.Load(path, "testapp")
	test.ExpectSuccess(t, err)

	// Power-on: low window is bank 0, high window fixed to the last bank.
	test.ExpectEquality(t, uint8(0x10), m.Read(0x4000, device.Read))
	test.ExpectEquality(t, uint8(0x13), m.Read(0x8000, device.Read))

	// Any write to $8000-$FFFF selects the low window's bank.
	m.Write(0xA000, 2)
	test.ExpectEquality(t, uint8(0x12), m.Read(0x4000, device.Read))
	test.ExpectEquality(t, uint8(0x13), m.Read(0x8000, device.Read))

	m.Write(0xBFFF, 1)
	test.ExpectEquality(t, uint8(0x11), m.Read(0x4000, device.Read))
	test.ExpectEquality(t, uint8(0x13), m.Read(0x8000, device.Read))
}

func TestUxROMRejectsCHR(t *testing.T) {
	prg := make([]byte, 2*16384)
	chr := make([]byte, 8192)
	path := writeNES(t, buildINES(2, 1, 0x20, 0, 0, 0, prg, chr))

	_, err := nes.Load(path, "testapp")
	test.ExpectFailure(t, err)
}
