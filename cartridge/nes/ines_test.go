package nes_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cdio-go/caio/test"
)

// buildINES assembles a minimal iNES file in memory: a 16-byte header
// followed by prg and (if chrBlocks > 0) chr data of the sizes the header
// names.
func buildINES(prgBlocks, chrBlocks, flags6, flags7, flags8, flags9 uint8, prg, chr []byte) []byte {
	hdr := []byte{'N', 'E', 'S', 0x1a, prgBlocks, chrBlocks, flags6, flags7, flags8, flags9, 0, 0, 0, 0, 0, 0}
	buf := append(hdr, prg...)
	if chrBlocks > 0 {
		buf = append(buf, chr...)
	}
	return buf
}

// writeNES writes data to a fresh "test.nes" file under t.TempDir and
// returns its path.
func writeNES(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.nes")
	test.ExpectSuccess(t, os.WriteFile(path, data, 0o644))
	return path
}

// fill returns a size-byte slice where byte i holds base + i%251, letting a test
// tell one bank's contents apart from another's by simple offset.
func fill(size int, base byte) []byte {
	b := make([]byte, size)
	for i := range b {
		b[i] = base + byte(i%251)
	}
	return b
}
