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

package zxspectrum

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cdio-go/caio/errors"
)

// Block type byte values: a block is a header (describing the data block
// that follows) or the data itself.
const (
	BlockTypeHeader = 0x00
	BlockTypeData   = 0xFF
)

// BASIC header "type" field values.
const (
	TypeBasicProgram  = 0x00
	TypeBasicNumArray = 0x01
	TypeBasicCharArr  = 0x02
	TypeBinaryCode    = 0x03
)

// HeaderBlockSize is the fixed size, in bytes, of an encoded standard
// header block: block type (1) + program type (1) + name (10) + data
// length (2) + two 16-bit parameters (4) + parity (1).
const HeaderBlockSize = 19

// HeaderBlock describes the data block that follows it on tape.
type HeaderBlock struct {
	Type       uint8
	Name       string // exactly 10 characters, space-padded
	DataLength uint16
	Param1     uint16
	Param2     uint16
}

// parity XORs every byte of data together, the standard TAP checksum.
func parity(data []byte) byte {
	var p byte
	for _, b := range data {
		p ^= b
	}
	return p
}

// payload renders h as the 18-byte payload (block type + fields) that,
// with a trailing parity byte, makes up a full header block on tape.
func (h HeaderBlock) payload() []byte {
	name := h.Name
	if len(name) > 10 {
		name = name[:10]
	}
	for len(name) < 10 {
		name += " "
	}

	buf := make([]byte, 0, HeaderBlockSize-1)
	buf = append(buf, BlockTypeHeader, h.Type)
	buf = append(buf, []byte(name)...)
	buf = binary.LittleEndian.AppendUint16(buf, h.DataLength)
	buf = binary.LittleEndian.AppendUint16(buf, h.Param1)
	buf = binary.LittleEndian.AppendUint16(buf, h.Param2)
	return buf
}

// NewHeaderBlock renders h as a full on-tape Block: leading type byte,
// its 17 field bytes, and a trailing parity byte.
func NewHeaderBlock(h HeaderBlock) Block {
	return Block(encodeBlock(BlockTypeHeader, h.payload()[1:]))
}

// NewDataBlock renders payload as a full on-tape data Block: leading
// BlockTypeData byte, the payload itself, and a trailing parity byte.
func NewDataBlock(payload []byte) Block {
	return Block(encodeBlock(BlockTypeData, payload))
}

// ParseHeaderBlock decodes block's payload (as returned by Block.Payload)
// back into a HeaderBlock. block must be a header block of exactly
// HeaderBlockSize bytes.
func ParseHeaderBlock(block Block) (HeaderBlock, error) {
	if block.Type() != BlockTypeHeader || len(block) != HeaderBlockSize {
		return HeaderBlock{}, errors.New(errors.InvalidArgument, "malformed TAP header block")
	}
	buf := block[:len(block)-1]
	return HeaderBlock{
		Type:       buf[1],
		Name:       string(buf[2:12]),
		DataLength: binary.LittleEndian.Uint16(buf[12:14]),
		Param1:     binary.LittleEndian.Uint16(buf[14:16]),
		Param2:     binary.LittleEndian.Uint16(buf[16:18]),
	}, nil
}

// encodeBlock turns blockType plus payload into the full on-tape byte
// sequence for one block: leading type byte, payload, trailing parity.
func encodeBlock(blockType byte, payload []byte) []byte {
	body := make([]byte, 0, 1+len(payload)+1)
	body = append(body, blockType)
	body = append(body, payload...)
	body = append(body, parity(body))
	return body
}

// Block is one length-prefixed TAP block as stored on disk: its first byte
// is BlockTypeHeader or BlockTypeData, its last byte is the XOR parity of
// every preceding byte.
type Block []byte

// Type returns the block's leading type byte, or -1 if the block is empty.
func (b Block) Type() int {
	if len(b) == 0 {
		return -1
	}
	return int(b[0])
}

// Payload returns the block's data with the leading type byte and trailing
// parity byte stripped.
func (b Block) Payload() []byte {
	if len(b) <= 2 {
		return nil
	}
	return b[1 : len(b)-1]
}

// Valid reports whether the block's trailing byte is the correct XOR
// parity of the bytes preceding it.
func (b Block) Valid() bool {
	if len(b) == 0 {
		return false
	}
	return parity(b[:len(b)-1]) == b[len(b)-1]
}

// TAPFile is an in-memory sequence of TAP blocks, loaded from (or about to
// be saved to) one or more .tap files.
type TAPFile struct {
	Blocks []Block
}

// Load reads path. If path is a regular file it is read as a single TAP
// file; if it is a directory, every ".tap" file inside it is read (in
// name order) and their blocks concatenated into one tape, mirroring how
// a ZX-Spectrum user would swap physical cassettes.
func Load(path string) (*TAPFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.New(errors.IOError, "can't stat %s: %v", path, err)
	}

	tap := &TAPFile{}

	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, errors.New(errors.IOError, "can't read %s: %v", path, err)
		}
		var names []string
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".tap") {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			if err := tap.appendFile(filepath.Join(path, name)); err != nil {
				return nil, err
			}
		}
		return tap, nil
	}

	if err := tap.appendFile(path); err != nil {
		return nil, err
	}
	return tap, nil
}

func (t *TAPFile) appendFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New(errors.IOError, "can't read %s: %v", path, err)
	}

	for len(data) >= 2 {
		length := binary.LittleEndian.Uint16(data[:2])
		data = data[2:]
		if int(length) > len(data) {
			return errors.New(errors.InvalidArgument, "%s: truncated TAP block", path)
		}
		t.Blocks = append(t.Blocks, Block(append([]byte(nil), data[:length]...)))
		data = data[length:]
	}
	return nil
}

// Save appends one block to path, creating it (and a length-prefixed TAP
// stream) if it does not already exist.
func Save(path string, block Block) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return errors.New(errors.IOError, "can't open %s: %v", path, err)
	}
	defer f.Close()

	var length [2]byte
	binary.LittleEndian.PutUint16(length[:], uint16(len(block)))
	if _, err := f.Write(length[:]); err != nil {
		return errors.New(errors.IOError, "can't write %s: %v", path, err)
	}
	if _, err := f.Write(block); err != nil {
		return errors.New(errors.IOError, "can't write %s: %v", path, err)
	}
	return nil
}
