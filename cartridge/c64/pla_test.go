package c64_test

import (
	"testing"

	"github.com/cdio-go/caio/cartridge/c64"
	"github.com/cdio-go/caio/device"
	"github.com/cdio-go/caio/test"
)

func newTestPLA() (*c64.PLA, *device.RAM) {
	ram := device.NewRAM(0x10000, "RAM")

	basicData := make([]byte, 0x2000)
	basicData[0] = 0xA0
	kernalData := make([]byte, 0x2000)
	kernalData[0] = 0xE0
	chargenData := make([]byte, 0x1000)
	chargenData[0] = 0xD1

	basic := device.NewROM(basicData, "BASIC")
	kernal := device.NewROM(kernalData, "KERNAL")
	chargen := device.NewROM(chargenData, "CHARGEN")
	io := device.NewRAM(c64.IOSize, "IO")
	io.Write(0, 0xD0)

	return c64.NewPLA(ram, basic, kernal, chargen, io), ram
}

func TestPLAPowerOnMapsKernalBasicAndIO(t *testing.T) {
	p, ram := newTestPLA()

	test.ExpectEquality(t, uint8(0xE0), p.Read(0xE000, device.Read))
	test.ExpectEquality(t, uint8(0xA0), p.Read(0xA000, device.Read))
	test.ExpectEquality(t, uint8(0xD0), p.Read(0xD000, device.Read))

	// RAM shadowed by ROM still accepts writes underneath it.
	p.Write(0xA000, 0x99)
	test.ExpectEquality(t, uint8(0x99), ram.Read(0xA000, device.Read))
}

func TestPLAClearingHIRAMExposesRAMWhereBASICWas(t *testing.T) {
	p, ram := newTestPLA()
	ram.Write(0xA000, 0x77)

	p.SetMode(0, c64.HIRAM, false)

	test.ExpectEquality(t, uint8(0x77), p.Read(0xA000, device.Read))
}

func TestPLAClearingCHARENExposesChargenAtD000(t *testing.T) {
	p, _ := newTestPLA()

	test.ExpectEquality(t, uint8(0xD0), p.Read(0xD000, device.Read))
	p.SetMode(0, c64.CHAREN, false)
	test.ExpectEquality(t, uint8(0xD1), p.Read(0xD000, device.Read))
}

func TestPLASetMapperOverridesBlock(t *testing.T) {
	p, _ := newTestPLA()

	m, err := c64.NewGeneric([]c64.ChipEntry{
		{Type: c64.ChipROM, Bank: 0, LoadAddr: 0x8000, Data: fillBytes(0x2000, 0x55)},
	}, false, true)
	test.ExpectSuccess(t, err)

	p.SetMapper(m)
	// Mimic the cartridge port asserting an 8K ROML cartridge: EXROM low,
	// GAME left high. A bare mapper is not a modeNotifier, so SetMapper
	// leaves the pins alone and the test drives them directly.
	p.SetMode(0, c64.EXROM, true)
	test.ExpectEquality(t, uint8(0x55), p.Read(0x8000, device.Read))
}

func fillBytes(size int, v byte) []byte {
	b := make([]byte, size)
	for i := range b {
		b[i] = v
	}
	return b
}
