package c64_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/cdio-go/caio/cartridge/c64"
	"github.com/cdio-go/caio/device"
	"github.com/cdio-go/caio/test"
)

// buildCRT assembles a minimal CRT file: the 0x40-byte header followed by
// one CHIP packet per entry in chips.
func buildCRT(hwType uint16, exrom, game byte, name string, chips [][]byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("C64 CARTRIDGE   ")

	var sizeField [4]byte
	binary.BigEndian.PutUint32(sizeField[:], 0x40)
	buf.Write(sizeField[:])

	var hw [2]byte
	binary.BigEndian.PutUint16(hw[:], hwType)
	buf.Write(hw[:])
	buf.WriteByte(exrom)
	buf.WriteByte(game)
	buf.Write(make([]byte, 8)) // reserved

	nameField := make([]byte, 32)
	copy(nameField, name)
	buf.Write(nameField)

	for _, chip := range chips {
		buf.Write(chip)
	}
	return buf.Bytes()
}

// buildCHIP assembles one CHIP packet of the given chip type and bank,
// holding data at loadAddr.
func buildCHIP(chipType, bank, loadAddr uint16, data []byte) []byte {
	var hdr [16]byte
	copy(hdr[0:4], "CHIP")
	binary.BigEndian.PutUint16(hdr[6:8], chipType)
	binary.BigEndian.PutUint16(hdr[8:10], bank)
	binary.BigEndian.PutUint16(hdr[10:12], loadAddr)
	binary.BigEndian.PutUint16(hdr[14:16], uint16(len(data)))
	return append(hdr[:], data...)
}

func TestLoadCRTParsesHeaderAndChips(t *testing.T) {
	data := make([]byte, 0x2000)
	data[0] = 0x77
	crtBytes := buildCRT(0, 0, 1, "TESTCART", [][]byte{buildCHIP(0, 0, 0x8000, data)})

	path := filepath.Join(t.TempDir(), "test.crt")
	test.ExpectSuccess(t, os.WriteFile(path, crtBytes, 0o644))

	crt, err := c64.Load_(path)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, "TESTCART", crt.Name)
	test.ExpectEquality(t, c64.HWGeneric, crt.HWType)
	test.ExpectEquality(t, false, crt.EXROM)
	test.ExpectEquality(t, true, crt.Game)
	test.ExpectEquality(t, 1, len(crt.Chips))
	test.ExpectEquality(t, uint16(0x8000), crt.Chips[0].LoadAddr)
	test.ExpectEquality(t, uint8(0x77), crt.Chips[0].Data[0])
}

func TestLoadBuildsGenericCartridge(t *testing.T) {
	data := make([]byte, 0x2000)
	data[0] = 0x99
	crtBytes := buildCRT(uint16(c64.HWGeneric), 0, 1, "GENERIC", [][]byte{buildCHIP(0, 0, 0x8000, data)})

	path := filepath.Join(t.TempDir(), "test.crt")
	test.ExpectSuccess(t, os.WriteFile(path, crtBytes, 0o644))

	cart, err := c64.Load(path, "testapp")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, "GENERIC", cart.Name())
	test.ExpectEquality(t, c64.Mode8K, cart.Mode())

	readSlot, _ := cart.GetDevice(0x8000, false, true)
	test.ExpectInequality(t, nil, readSlot.Device)
	test.ExpectEquality(t, uint8(0x99), readSlot.Device.Read(readSlot.Base, device.Read))
}

func TestLoadRejectsBadSignature(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.crt")
	test.ExpectSuccess(t, os.WriteFile(path, make([]byte, 0x40), 0o644))

	_, err := c64.Load_(path)
	test.ExpectFailure(t, err)
}
