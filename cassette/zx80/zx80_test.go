package zx80_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cdio-go/caio/cassette"
	"github.com/cdio-go/caio/cassette/zx80"
	"github.com/cdio-go/caio/test"
)

// memBackend is a minimal in-memory cassette.Backend used to drive the RX
// and TX state machines in isolation, without touching the filesystem.
type memBackend struct {
	data     []byte
	pos      int
	rewound  bool
	out      []byte
	fileDone bool
}

func (b *memBackend) Receive(cmd cassette.RxCmd) int {
	if cmd == cassette.RxRewind {
		b.rewound = true
		b.pos = 0
		return 0
	}
	if b.pos >= len(b.data) {
		return cassette.EndOfTape
	}
	v := int(b.data[b.pos])
	if cmd != cassette.RxPeek {
		b.pos++
	}
	return v
}

func (b *memBackend) Transmit(data int) {
	if data == cassette.EndOfFile {
		b.fileDone = true
		return
	}
	b.out = append(b.out, byte(data))
}

func (b *memBackend) IsIdle() bool { return b.pos >= len(b.data) }

func TestRoundTrip(t *testing.T) {
	want := []byte{0x00, 0xFF, 0x5A, 0x81}

	src := &memBackend{data: want}
	enc := zx80.NewCassette(src)

	// IsIdle is true both before the first Read and after the transfer
	// ends, so this drives a fixed number of ticks rather than stopping on
	// it; the trailing no-op pulses are harmless to the decoder below.
	pulses := make([]bool, 0, 3_000_000)
	for i := 0; i < 3_000_000; i++ {
		pulses = append(pulses, enc.Read())
	}
	test.ExpectEquality(t, true, src.rewound)

	dst := &memBackend{}
	dec := zx80.NewCassette(dst)
	for _, p := range pulses {
		dec.Write(p)
		if dec.IsIdle() && len(dst.out) >= len(want) {
			break
		}
	}

	test.ExpectEquality(t, len(want), len(dst.out))
	for i := range want {
		test.ExpectEquality(t, want[i], dst.out[i])
	}
}

func TestCassetteOSaveLoad(t *testing.T) {
	dir := t.TempDir()

	be, err := zx80.NewCassetteO(dir)
	test.ExpectSuccess(t, err)

	be.Transmit(int('H'))
	be.Transmit(int('i'))
	be.Transmit(cassette.EndOfFile)

	path := filepath.Join(dir, "basic.o")
	data, err := os.ReadFile(path)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, "Hi", string(data))

	be2, err := zx80.NewCassetteO(dir)
	test.ExpectSuccess(t, err)
	be2.Receive(cassette.RxRewind)
	test.ExpectEquality(t, int('H'), be2.Receive(cassette.RxRead))
	test.ExpectEquality(t, int('i'), be2.Receive(cassette.RxRead))
	test.ExpectEquality(t, cassette.EndOfTape, be2.Receive(cassette.RxRead))
}

func TestCassetteOInvalidDir(t *testing.T) {
	_, err := zx80.NewCassetteO(filepath.Join(t.TempDir(), "missing"))
	test.ExpectFailure(t, err)
}

// TestCassettePUntranslatableNameRejected reproduces a name field that
// reaches a terminator (bit 7 set) but contains an earlier byte with no
// ASCII equivalent. Acceptance must follow whether every scanned byte
// translated cleanly, not merely whether a terminator was seen, so this
// must fall back to CassetteFname and leave the whole buffer (including
// the rejected name bytes) as file data.
func TestCassettePUntranslatableNameRejected(t *testing.T) {
	dir := t.TempDir()

	be, err := zx80.NewCassetteP(dir)
	test.ExpectSuccess(t, err)

	be.Transmit(0x01) // zx81Ascii(0x01) has no ASCII mapping
	be.Transmit(0x80) // terminator bit set, but too late: name already invalid
	be.Transmit(int('X'))
	be.Transmit(int('Y'))
	be.Transmit(cassette.EndOfFile)

	path := filepath.Join(dir, zx80.CassetteFname+".p")
	data, err := os.ReadFile(path)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, 4, len(data))
	test.ExpectEquality(t, byte(0x01), data[0])
	test.ExpectEquality(t, byte(0x80), data[1])
	test.ExpectEquality(t, byte('X'), data[2])
	test.ExpectEquality(t, byte('Y'), data[3])
}

func TestCassettePNamedFiles(t *testing.T) {
	dir := t.TempDir()

	be, err := zx80.NewCassetteP(dir)
	test.ExpectSuccess(t, err)

	be.Transmit(int('O'))
	be.Transmit(int('K'))
	be.Transmit(cassette.EndOfFile) // no name encoded -> falls back to CassetteFname

	path := filepath.Join(dir, zx80.CassetteFname+".p")
	data, err := os.ReadFile(path)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, "OK", string(data))

	be2, err := zx80.NewCassetteP(dir)
	test.ExpectSuccess(t, err)
	be2.Receive(cassette.RxRewind)

	// First call triggers loading the (only) file and reports EndOfFile,
	// matching the original protocol: the caller must call again for data.
	test.ExpectEquality(t, cassette.EndOfFile, be2.Receive(cassette.RxRead))
}
