// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package zx80

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cdio-go/caio/cassette"
	"github.com/cdio-go/caio/errors"
)

// CassetteFname is the arbitrarily chosen file name used by the 4K ROM
// (.o files), which does not itself specify one.
const CassetteFname = "basic"

// CassetteO is the cassette Backend for the ZX80 4K ROM: a single
// anonymous file named CassetteFname, stored with the .o extension in a
// user-supplied directory.
type CassetteO struct {
	dir string
	buf []byte
	pos int
}

// NewCassetteO returns a Backend storing its single file under dir, which
// must already exist.
func NewCassetteO(dir string) (*CassetteO, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, errors.New(errors.IOError, "invalid cassette directory: %s", dir)
	}
	return &CassetteO{dir: dir}, nil
}

func (c *CassetteO) fname() string {
	return filepath.Join(c.dir, CassetteFname+".o")
}

func (c *CassetteO) Transmit(data int) {
	if data == cassette.EndOfFile {
		_ = os.WriteFile(c.fname(), c.buf, 0o600)
		c.buf = c.buf[:0]
		return
	}
	c.buf = append(c.buf, byte(data))
}

func (c *CassetteO) Receive(cmd cassette.RxCmd) int {
	if cmd == cassette.RxRewind {
		buf, err := os.ReadFile(c.fname())
		if err != nil {
			buf = nil
		}
		c.buf = buf
		c.pos = 0
		return 0
	}
	if c.pos >= len(c.buf) {
		return cassette.EndOfTape
	}
	data := int(c.buf[c.pos])
	if cmd != cassette.RxPeek {
		c.pos++
	}
	return data
}

func (c *CassetteO) IsIdle() bool {
	return c.pos >= len(c.buf)
}

// zx81Ascii converts a ZX81-character-set byte (low 6 bits) to ASCII, or
// 0xFF if the code has no printable ASCII equivalent.
func zx81Ascii(ch uint8) byte {
	const mask = 0x3F
	table := [64]byte{
		' ', 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, '"', 0xff, '$', ':', '?',
		'(', ')', '>', '<', '=', '+', '-', '*',
		'/', ';', ',', '.', '0', '1', '2', '3',
		'4', '5', '6', '7', '8', '9', 'a', 'b',
		'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j',
		'k', 'l', 'm', 'n', 'o', 'p', 'q', 'r',
		's', 't', 'u', 'v', 'w', 'x', 'y', 'z',
	}
	return table[ch&mask]
}

// asciiZX81 converts an ASCII byte to the ZX81 character set, or 0xFF if
// it has no equivalent there.
func asciiZX81(ch byte) uint8 {
	const mask = 0x7F
	table := [128]uint8{
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0x00, 0xff, 0x0b, 0xff, 0x0d, 0xff, 0xff, 0xff,
		0x10, 0x11, 0x17, 0x15, 0x1a, 0x16, 0x1c, 0x18,
		0x1c, 0x1d, 0x1e, 0x1f, 0x20, 0x21, 0x22, 0x23,
		0x24, 0x25, 0x06, 0x19, 0x13, 0x14, 0x12, 0x0f,
		0xff, 0x26, 0x27, 0x28, 0x29, 0x2a, 0x2b, 0x2c,
		0x2d, 0x2e, 0x2f, 0x30, 0x31, 0x32, 0x33, 0x34,
		0x35, 0x36, 0x37, 0x38, 0x39, 0x3a, 0x3b, 0x3c,
		0x3d, 0x3e, 0x3f, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0x26, 0x27, 0x28, 0x29, 0x2a, 0x2b, 0x2c,
		0x2d, 0x2e, 0x2f, 0x30, 0x31, 0x32, 0x33, 0x34,
		0x35, 0x36, 0x37, 0x38, 0x39, 0x3a, 0x3b, 0x3c,
		0x3d, 0x3e, 0x3f, 0xff, 0xff, 0xff, 0xff, 0xff,
	}
	return table[ch&mask]
}

// maxFilenameSize bounds how many leading bytes CassetteP will scan for a
// ZX81-encoded name before giving up and assuming none was sent.
const maxFilenameSize = 128

// CassetteP is the cassette Backend for the ZX81 8K ROM: named files,
// stored with the .p extension in a user-supplied directory. The file
// name travels inside the data stream itself, ZX81-character encoded,
// terminated by the byte whose bit 7 is set.
type CassetteP struct {
	dir     string
	buf     []byte
	pos     int
	entries []string
	entryAt int
}

// NewCassetteP returns a Backend storing its files under dir, which must
// already exist.
func NewCassetteP(dir string) (*CassetteP, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, errors.New(errors.IOError, "invalid cassette directory: %s", dir)
	}
	return &CassetteP{dir: dir}, nil
}

func (c *CassetteP) fname(basename string) string {
	return filepath.Join(c.dir, basename+".p")
}

// extractName pulls the ZX81-encoded leading file name off c.buf, removing
// it from the buffer when present, and returns it as an ASCII string.
// Acceptance requires both a terminator byte (bit 7 set) within the scan
// window and every byte scanned translating to a valid ASCII character:
// an unterminated run, or a name containing an untranslatable character
// (zx81Ascii's 0xff), is not a name at all, so CassetteFname is used
// instead and the buffer is left untouched for the caller.
func (c *CassetteP) extractName() string {
	var name []byte
	limit := len(c.buf)
	if limit > maxFilenameSize {
		limit = maxFilenameSize
	}

	terminated := false
	for i := 0; i < limit; i++ {
		zch := c.buf[i]
		name = append(name, zx81Ascii(zch))
		if zch&0x80 != 0 {
			terminated = true
			break
		}
	}

	if terminated && strings.IndexByte(string(name), 0xff) == -1 {
		c.buf = c.buf[len(name):]
		return string(name)
	}
	return CassetteFname
}

func (c *CassetteP) Transmit(data int) {
	if data == cassette.EndOfFile {
		name := c.extractName()
		_ = os.WriteFile(c.fname(name), c.buf, 0o600)
		c.buf = c.buf[:0]
		return
	}
	c.buf = append(c.buf, byte(data))
}

func (c *CassetteP) Receive(cmd cassette.RxCmd) int {
	if cmd == cassette.RxRewind {
		c.entries = listPFiles(c.dir)
		c.entryAt = 0
		c.buf = nil
		c.pos = 0
		return 0
	}

	if c.pos >= len(c.buf) {
		if c.entryAt >= len(c.entries) {
			return cassette.EndOfTape
		}

		path := c.entries[c.entryAt]
		c.entryAt++

		buf, err := os.ReadFile(path)
		if err != nil {
			buf = nil
		}

		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		encoded := make([]byte, 0, len(base))
		for i := len(base) - 1; i >= 0; i-- {
			encoded = append(encoded, asciiZX81(base[i]))
		}
		if len(encoded) > 0 {
			encoded[len(encoded)-1] |= 0x80
		}

		c.buf = append(encoded, buf...)
		c.pos = 0
		return cassette.EndOfFile
	}

	data := int(c.buf[c.pos])
	if cmd != cassette.RxPeek {
		c.pos++
	}
	return data
}

func (c *CassetteP) IsIdle() bool {
	return c.pos >= len(c.buf) && c.entryAt >= len(c.entries)
}

// listPFiles returns every ".p" file under dir, sorted by name for
// deterministic playback order.
func listPFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".p") {
			names = append(names, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(names)
	return names
}
