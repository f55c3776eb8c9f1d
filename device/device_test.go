package device_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cdio-go/caio/device"
	"github.com/cdio-go/caio/test"
)

func TestRAMReadWrite(t *testing.T) {
	r := device.NewRAM(16, "test-ram")
	test.ExpectEquality(t, "RAM", r.Type())
	test.ExpectEquality(t, "test-ram", r.Label())
	test.ExpectEquality(t, 16, r.Size())

	for a := 0; a < r.Size(); a++ {
		r.Write(uint32(a), uint8(a))
	}
	for a := 0; a < r.Size(); a++ {
		test.ExpectEquality(t, uint8(a), r.Read(uint32(a), device.Read))
	}
}

func TestRAMOutOfRangePanics(t *testing.T) {
	r := device.NewRAM(4, "test")
	defer func() {
		test.ExpectInequality(t, nil, recover())
	}()
	r.Read(4, device.Read)
}

func TestRAMWithPattern(t *testing.T) {
	r := device.NewRAMWithPattern(8, 0x0102030405060708, false, "pattern")
	want := []uint8{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}
	for i, w := range want {
		test.ExpectEquality(t, w, r.Read(uint32(i), device.Read))
	}
}

func TestRAMFromBytes(t *testing.T) {
	r := device.NewRAMFromBytes([]byte{1, 2, 3}, "from-bytes")
	test.ExpectEquality(t, 3, r.Size())
	test.ExpectEquality(t, uint8(2), r.Read(1, device.Read))
}

func TestRAMFromReader(t *testing.T) {
	r, err := device.NewRAMFromReader(bytes.NewReader([]byte{9, 8, 7}), 3, "from-reader")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, uint8(7), r.Read(2, device.Read))

	_, err = device.NewRAMFromReader(bytes.NewReader([]byte{9, 8}), 3, "short")
	test.ExpectFailure(t, err)
}

func TestRAMReset(t *testing.T) {
	r := device.NewRAM(4, "test")
	r.Write(0, 0xFF)
	r.Reset()
	test.ExpectEquality(t, uint8(0xFF), r.Read(0, device.Read))
}

func TestROMWriteIgnored(t *testing.T) {
	rom := device.NewROM([]byte{1, 2, 3, 4}, "test-rom")
	test.ExpectEquality(t, "ROM", rom.Type())
	rom.Write(0, 0xFF)
	test.ExpectEquality(t, uint8(1), rom.Read(0, device.Read))
}

func TestROMDigest(t *testing.T) {
	data := []byte("hello world")
	// sha256("hello world")
	const digest = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"

	_, err := device.NewROMFromReaderWithDigest(bytes.NewReader(data), digest, "good")
	test.ExpectSuccess(t, err)

	_, err = device.NewROMFromReaderWithDigest(bytes.NewReader(data), "0000", "bad")
	test.ExpectFailure(t, err)
}

func TestROMSize(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	_, err := device.NewROMFromReaderWithSize(bytes.NewReader(data), 4, "ok")
	test.ExpectSuccess(t, err)

	_, err = device.NewROMFromReaderWithSize(bytes.NewReader(data), 8, "wrong-size")
	test.ExpectFailure(t, err)
}

func TestNibbleRAM(t *testing.T) {
	n := device.NewNibbleRAM(4, "color-ram")
	test.ExpectEquality(t, uint8(0xF0), n.Read(0, device.Read))

	n.Write(0, 0x0A)
	test.ExpectEquality(t, uint8(0xFA), n.Read(0, device.Read))

	n.Write(0, 0xFF)
	test.ExpectEquality(t, uint8(0xFF), n.Read(0, device.Read))
}

func TestRAMBank(t *testing.T) {
	data := make([]byte, 32)
	for i := range data {
		data[i] = uint8(i)
	}
	ram := device.NewRAMFromBytes(data, "banked")
	bank := device.NewRAMBank(ram, 8)

	test.ExpectEquality(t, 4, bank.Banks())
	test.ExpectEquality(t, 0, bank.Bank())
	test.ExpectEquality(t, uint8(0), bank.Read(0, device.Read))

	bank.SetBank(2)
	test.ExpectEquality(t, 2, bank.Bank())
	test.ExpectEquality(t, uint8(16), bank.Read(0, device.Read))
	test.ExpectEquality(t, uint8(23), bank.Read(7, device.Read))

	// wraps modulo bank count
	bank.SetBank(6)
	test.ExpectEquality(t, 2, bank.Bank())

	bank.Write(0, 0xAA)
	test.ExpectEquality(t, uint8(0xAA), ram.Read(16, device.Read))
}

func TestROMBankWriteIgnored(t *testing.T) {
	rom := device.NewROM(make([]byte, 16), "rom")
	bank := device.NewROMBank(rom, 8)
	bank.Write(0, 0xFF)
	test.ExpectEquality(t, uint8(0), bank.Read(0, device.Read))
}

func TestDump(t *testing.T) {
	r := device.NewRAMFromBytes([]byte{0xDE, 0xAD, 0xBE, 0xEF}, "dump-test")
	var buf strings.Builder
	err := r.Dump(&buf, 0x1000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, true, strings.Contains(buf.String(), "00001000"))
	test.ExpectEquality(t, true, strings.Contains(buf.String(), "de ad be ef"))
}
