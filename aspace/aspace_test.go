package aspace_test

import (
	"testing"

	"github.com/cdio-go/caio/aspace"
	"github.com/cdio-go/caio/device"
	"github.com/cdio-go/caio/test"
)

func TestReadWrite(t *testing.T) {
	ram := device.NewRAM(0x1000, "ram")
	slots := []aspace.Slot{
		{Device: ram, Base: 0},
	}
	a := aspace.New(0x1000, 0xFFFF, slots, slots)

	a.Write(0x10, 0x42)
	test.ExpectEquality(t, uint8(0x42), a.Read(0x10, device.Read))
	test.ExpectEquality(t, uint8(0x42), a.DataBus())
}

func TestBlockRouting(t *testing.T) {
	low := device.NewRAM(0x100, "low")
	high := device.NewRAM(0x100, "high")
	slots := []aspace.Slot{
		{Device: low, Base: 0},
		{Device: high, Base: 0},
	}
	a := aspace.New(0x100, 0x1FF, slots, slots)

	a.Write(0x05, 0xAA)
	a.Write(0x105, 0xBB)

	test.ExpectEquality(t, uint8(0xAA), low.Read(0x05, device.Read))
	test.ExpectEquality(t, uint8(0xBB), high.Read(0x05, device.Read))
	test.ExpectEquality(t, uint8(0xAA), a.Read(0x05, device.Read))
	test.ExpectEquality(t, uint8(0xBB), a.Read(0x105, device.Read))
}

func TestAddressMaskWraps(t *testing.T) {
	ram := device.NewRAM(0x100, "ram")
	slots := []aspace.Slot{{Device: ram, Base: 0}}
	a := aspace.New(0x100, 0xFF, slots, slots)

	a.Write(0x100, 0x7) // masked to 0x00
	test.ExpectEquality(t, uint8(0x7), a.Read(0x00, device.Read))
}

func TestReset(t *testing.T) {
	ram1 := device.NewRAM(0x10, "ram1")
	ram2 := device.NewRAM(0x10, "ram2")
	slots1 := []aspace.Slot{{Device: ram1, Base: 0}}
	slots2 := []aspace.Slot{{Device: ram2, Base: 0}}

	a := aspace.New(0x10, 0xF, slots1, slots1)
	a.Write(0x0, 0x11)
	test.ExpectEquality(t, uint8(0x11), a.Read(0x0, device.Read))

	a.Reset(slots2, slots2)
	a.Write(0x0, 0x22)
	test.ExpectEquality(t, uint8(0x11), ram1.Read(0x0, device.Read))
	test.ExpectEquality(t, uint8(0x22), ram2.Read(0x0, device.Read))
}

func TestWriteObserver(t *testing.T) {
	ram := device.NewRAM(0x10, "ram")
	slots := []aspace.Slot{{Device: ram, Base: 0}}
	a := aspace.New(0x10, 0xF, slots, slots)

	var seenAddr uint32
	var seenValue uint8
	a.SetWriteObserver(func(addr uint32, value uint8) {
		seenAddr = addr
		seenValue = value
	})

	a.Write(0x3, 0x99)
	test.ExpectEquality(t, uint32(0x3), seenAddr)
	test.ExpectEquality(t, uint8(0x99), seenValue)

	a.SetWriteObserver(nil)
	a.Write(0x3, 0x55)
	test.ExpectEquality(t, uint8(0x99), seenValue) // unchanged: observer removed
}

func TestAddressBusHook(t *testing.T) {
	ram := device.NewRAM(0x10, "ram")
	slots := []aspace.Slot{{Device: ram, Base: 0}}
	a := aspace.New(0x10, 0xF, slots, slots)

	called := false
	a.SetAddressBusHook(func(addr uint32) { called = true })
	a.AddressBus(0x5)
	test.ExpectSuccess(t, called)
}

func TestPeekDoesNotLatchMissed(t *testing.T) {
	ram := device.NewRAM(0x10, "ram")
	slots := []aspace.Slot{{Device: ram, Base: 0}}
	a := aspace.New(0x10, 0xF, slots, slots)

	a.Write(0x0, 0x10)
	a.Write(0x1, 0x20)
	test.ExpectEquality(t, uint8(0x20), a.DataBus())

	a.Read(0x0, device.Peek)
	test.ExpectEquality(t, uint8(0x20), a.DataBus())
}
