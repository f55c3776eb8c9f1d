package zxspectrum_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cdio-go/caio/cassette/zxspectrum"
	"github.com/cdio-go/caio/test"
)

func TestHeaderBlockRoundTrip(t *testing.T) {
	want := zxspectrum.HeaderBlock{
		Type:       zxspectrum.TypeBasicProgram,
		Name:       "HELLO",
		DataLength: 42,
		Param1:     10,
		Param2:     0,
	}

	block := zxspectrum.NewHeaderBlock(want)
	test.ExpectEquality(t, true, block.Valid())
	test.ExpectEquality(t, zxspectrum.BlockTypeHeader, block.Type())

	got, err := zxspectrum.ParseHeaderBlock(block)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, want.Type, got.Type)
	test.ExpectEquality(t, "HELLO     ", got.Name)
	test.ExpectEquality(t, want.DataLength, got.DataLength)
	test.ExpectEquality(t, want.Param1, got.Param1)
	test.ExpectEquality(t, want.Param2, got.Param2)
}

func TestParseHeaderBlockRejectsDataBlock(t *testing.T) {
	block := zxspectrum.NewDataBlock([]byte{1, 2, 3})
	_, err := zxspectrum.ParseHeaderBlock(block)
	test.ExpectFailure(t, err)
}

func TestSaveLoadSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.tap")

	hdrBlock := zxspectrum.NewHeaderBlock(zxspectrum.HeaderBlock{
		Type: zxspectrum.TypeBasicProgram, Name: "PROG", DataLength: 3,
	})
	test.ExpectSuccess(t, zxspectrum.Save(path, hdrBlock))

	dataBlock := zxspectrum.NewDataBlock([]byte{1, 2, 3})
	test.ExpectSuccess(t, zxspectrum.Save(path, dataBlock))

	tap, err := zxspectrum.Load(path)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, 2, len(tap.Blocks))
	test.ExpectEquality(t, zxspectrum.BlockTypeHeader, tap.Blocks[0].Type())
	test.ExpectEquality(t, zxspectrum.BlockTypeData, tap.Blocks[1].Type())
	test.ExpectEquality(t, true, tap.Blocks[1].Valid())
	test.ExpectEquality(t, []byte{1, 2, 3}, tap.Blocks[1].Payload())
}

func TestLoadDirectoryConcatenates(t *testing.T) {
	dir := t.TempDir()

	block := zxspectrum.NewDataBlock([]byte{9})
	test.ExpectSuccess(t, zxspectrum.Save(filepath.Join(dir, "a.tap"), block))
	test.ExpectSuccess(t, zxspectrum.Save(filepath.Join(dir, "b.tap"), block))

	tap, err := zxspectrum.Load(dir)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, 2, len(tap.Blocks))
}

func TestLoadMissingPath(t *testing.T) {
	_, err := zxspectrum.Load(filepath.Join(os.TempDir(), "does-not-exist-xyz.tap"))
	test.ExpectFailure(t, err)
}
