package nes_test

import (
	"testing"

	"github.com/cdio-go/caio/device"
	"github.com/cdio-go/caio/test"

	"github.com/cdio-go/caio/cartridge/nes"
)

func TestNROM128Mirrors16KIntoBothHalves(t *testing.T) {
	prg := fill(16384, 1)
	chr := fill(8192, 0x40)
	path := writeNES(t, buildINES(1, 1, 0, 0, 0, 0, prg, chr))

	m, err := nes.Load(path, "testapp")
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, prg[0], m.Read(0x4000, device.Read))
	test.ExpectEquality(t, prg[0x1234], m.Read(0x4000+0x1234, device.Read))
	// The high 16K window mirrors the same single bank.
	test.ExpectEquality(t, prg[0], m.Read(0x8000, device.Read))
	test.ExpectEquality(t, prg[0x1234], m.Read(0x8000+0x1234, device.Read))
}

func TestNROM256SplitsPRGAcrossBothHalves(t *testing.T) {
	prg := fill(32768, 2)
	chr := fill(8192, 0x40)
	path := writeNES(t, buildINES(2, 1, 0, 0, 0, 0, prg, chr))

	m, err := nes.Load(path, "testapp")
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, prg[0], m.Read(0x4000, device.Read))
	test.ExpectEquality(t, prg[16384], m.Read(0x8000, device.Read))
	test.ExpectInequality(t, m.Read(0x4000, device.Read), m.Read(0x8000, device.Read))
}

func TestNROMCHRFixedAcrossBothPatternTables(t *testing.T) {
	prg := fill(16384, 1)
	chr := fill(8192, 0x40)
	path := writeNES(t, buildINES(1, 1, 0, 0, 0, 0, prg, chr))

	m, err := nes.Load(path, "testapp")
	test.ExpectSuccess(t, err)

	ppu := m.PPU()
	test.ExpectEquality(t, chr[0], ppu.Read(0, device.Read))
	test.ExpectEquality(t, chr[0x1000], ppu.Read(0x1000, device.Read))
}

func TestNROMRejectsInvalidPRGSize(t *testing.T) {
	prg := fill(8192, 1)
	path := writeNES(t, buildINES(1, 0, 0, 0, 0, 0, prg, nil))

	// A prgsize of 1 block (16384) is what the header claims, but the file
	// only carries 8192 bytes of PRG data after the header: loading must
	// fail rather than read past the buffer.
	_, err := nes.Load(path, "testapp")
	test.ExpectFailure(t, err)
}
