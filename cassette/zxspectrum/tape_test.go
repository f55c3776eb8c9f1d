package zxspectrum_test

import (
	"path/filepath"
	"testing"

	"github.com/cdio-go/caio/cassette"
	"github.com/cdio-go/caio/cassette/zxspectrum"
	"github.com/cdio-go/caio/test"
)

// memBackend drives the RX/TX state machines from a fixed in-memory block
// sequence, without touching the filesystem.
type memBackend struct {
	blocks [][]byte
	bi     int
	pos    int
	out    [][]byte
	cur    []byte
}

func (b *memBackend) Receive(cmd cassette.RxCmd) int {
	if cmd == cassette.RxRewind {
		b.bi, b.pos = 0, 0
		return 0
	}
	if b.bi >= len(b.blocks) {
		return cassette.EndOfTape
	}
	block := b.blocks[b.bi]
	if b.pos >= len(block) {
		b.bi++
		b.pos = 0
		return cassette.EndOfFile
	}
	v := int(block[b.pos])
	if cmd != cassette.RxPeek {
		b.pos++
	}
	return v
}

func (b *memBackend) Transmit(data int) {
	if data == cassette.EndOfFile {
		if len(b.cur) > 0 {
			b.out = append(b.out, b.cur)
			b.cur = nil
		}
		return
	}
	b.cur = append(b.cur, byte(data))
}

func (b *memBackend) IsIdle() bool { return b.bi >= len(b.blocks) }

func TestTapeRoundTrip(t *testing.T) {
	block1 := []byte(zxspectrum.NewDataBlock([]byte{0xDE, 0xAD}))
	block2 := []byte(zxspectrum.NewHeaderBlock(zxspectrum.HeaderBlock{
		Type: zxspectrum.TypeBinaryCode, Name: "X", DataLength: 2,
	}))

	src := &memBackend{blocks: [][]byte{block1, block2}}
	enc := zxspectrum.NewTape(src, false)

	// IsIdle is true both before the first Read and after the transfer
	// ends, so this drives a fixed tick count instead of stopping on it.
	// Each tick is one microsecond-equivalent cycle, and the pilot tone
	// alone (a few thousand ~619-tick pulses per block) dominates the
	// total, hence the large bound.
	const ticks = 5_000_000
	pulses := make([]bool, 0, ticks)
	for i := 0; i < ticks; i++ {
		pulses = append(pulses, enc.Read())
	}

	dst := &memBackend{}
	dec := zxspectrum.NewTape(dst, false)
	for _, p := range pulses {
		dec.Write(p)
	}

	test.ExpectEquality(t, 2, len(dst.out))
	test.ExpectEquality(t, block1, dst.out[0])
	test.ExpectEquality(t, block2, dst.out[1])
}

func TestFileBackendSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	otape := filepath.Join(dir, "out.tap")

	fb, err := zxspectrum.NewFileBackend("", otape)
	test.ExpectSuccess(t, err)

	block := zxspectrum.NewDataBlock([]byte{1, 2, 3})
	for _, b := range block {
		fb.Transmit(int(b))
	}
	fb.Transmit(cassette.EndOfFile)

	loaded, err := zxspectrum.NewFileBackend(otape, otape)
	test.ExpectSuccess(t, err)
	loaded.Receive(cassette.RxRewind)
	test.ExpectEquality(t, int(block[0]), loaded.Receive(cassette.RxRead))
}

func TestFileBackendEjectIsIdle(t *testing.T) {
	fb, err := zxspectrum.NewFileBackend("", filepath.Join(t.TempDir(), "o.tap"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, true, fb.IsIdle())
}
