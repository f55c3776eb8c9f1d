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

import "github.com/cdio-go/caio/cassette"

// FileBackend is the cassette.Backend backing a Tape with an input TAP
// file (or directory of them, concatenated) and an output TAP file that
// each saved block is appended to.
type FileBackend struct {
	itape string
	otape string

	tap      *TAPFile
	blockIdx int
	pos      int
	cur      Block

	txBuf []byte
}

// NewFileBackend opens itape (if non-empty) for reading and remembers
// otape as the save destination. itape may be a single .tap file or a
// directory of them; see Load.
func NewFileBackend(itape, otape string) (*FileBackend, error) {
	fb := &FileBackend{itape: itape, otape: otape}
	if itape != "" {
		tap, err := Load(itape)
		if err != nil {
			return nil, err
		}
		fb.tap = tap
	}
	return fb, nil
}

// Eject discards the currently loaded input tape.
func (fb *FileBackend) Eject() {
	fb.itape = ""
	fb.tap = nil
	fb.blockIdx = 0
	fb.pos = 0
	fb.cur = nil
}

// Load replaces the input tape and rewinds.
func (fb *FileBackend) Load(itape string) error {
	tap, err := Load(itape)
	if err != nil {
		return err
	}
	fb.itape = itape
	fb.tap = tap
	fb.blockIdx = 0
	fb.pos = 0
	if len(tap.Blocks) > 0 {
		fb.cur = tap.Blocks[0]
	} else {
		fb.cur = nil
	}
	return nil
}

func (fb *FileBackend) Receive(cmd cassette.RxCmd) int {
	if cmd == cassette.RxRewind {
		fb.blockIdx = 0
		fb.pos = 0
		if fb.tap != nil && len(fb.tap.Blocks) > 0 {
			fb.cur = fb.tap.Blocks[0]
		} else {
			fb.cur = nil
		}
		return 0
	}

	if fb.cur == nil {
		return cassette.EndOfTape
	}

	if fb.pos >= len(fb.cur) {
		fb.blockIdx++
		if fb.tap == nil || fb.blockIdx >= len(fb.tap.Blocks) {
			fb.cur = nil
			return cassette.EndOfTape
		}
		fb.cur = fb.tap.Blocks[fb.blockIdx]
		fb.pos = 0
		return cassette.EndOfFile
	}

	v := int(fb.cur[fb.pos])
	if cmd != cassette.RxPeek {
		fb.pos++
	}
	return v
}

func (fb *FileBackend) Transmit(data int) {
	if data == cassette.EndOfFile {
		if len(fb.txBuf) == 0 {
			return
		}
		_ = Save(fb.otape, Block(fb.txBuf))
		fb.txBuf = fb.txBuf[:0]
		return
	}
	fb.txBuf = append(fb.txBuf, byte(data))
}

func (fb *FileBackend) IsIdle() bool {
	return fb.cur == nil
}
