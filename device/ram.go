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

package device

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"

	"github.com/cdio-go/caio/errors"
)

// weakCellFraction bounds how much of a pattern-filled RAM gets contaminated
// with random bytes at construction: models the handful of DRAM cells that
// come up in an unpredictable state at power-on, without drowning out the
// repeating pattern entirely.
const weakCellFraction = 32

// RAM is a Device backed by a plain byte slice. Write has no restriction;
// Reset is a no-op since RAM contents survive a machine reset.
type RAM struct {
	label string
	data  []uint8
}

// NewRAM returns size bytes of zero-filled RAM.
func NewRAM(size int, label string) *RAM {
	return &RAM{label: label, data: make([]uint8, size)}
}

// NewRAMWithPattern returns size bytes of RAM filled with pattern repeated
// byte-wise (little-endian), optionally contaminated with a bounded number
// of random bytes at random offsets to model uninitialised DRAM. randomise
// only affects construction: Reset never re-randomises.
func NewRAMWithPattern(size int, pattern uint64, randomise bool, label string) *RAM {
	r := &RAM{label: label, data: make([]uint8, size)}

	var pb [8]byte
	binary.LittleEndian.PutUint64(pb[:], pattern)
	for i := range r.data {
		r.data[i] = pb[i%8]
	}

	if randomise && size > 0 {
		n := size / weakCellFraction
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			pos := rand.Intn(size)
			r.data[pos] = uint8(rand.Intn(256))
		}
	}

	return r
}

// NewRAMFromBytes returns RAM initialised with a copy of data.
func NewRAMFromBytes(data []byte, label string) *RAM {
	r := &RAM{label: label, data: make([]uint8, len(data))}
	copy(r.data, data)
	return r
}

// NewRAMFromReader reads count bytes from r (or until EOF if count is zero)
// into a new RAM. It fails with an IOError if fewer than count bytes are
// available.
func NewRAMFromReader(r io.Reader, count int, label string) (*RAM, error) {
	if count <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.New(errors.IOError, "reading %s: %v", label, err)
		}
		return NewRAMFromBytes(data, label), nil
	}

	data := make([]uint8, count)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, errors.New(errors.IOError, "reading %s: expected %d bytes: %v", label, count, err)
	}
	return &RAM{label: label, data: data}, nil
}

func (r *RAM) Type() string  { return "RAM" }
func (r *RAM) Label() string { return r.label }
func (r *RAM) Reset()        {}
func (r *RAM) Size() int     { return len(r.data) }

func (r *RAM) Read(addr uint32, mode ReadMode) uint8 {
	checkAddr(addr, len(r.data))
	return r.data[addr]
}

func (r *RAM) Write(addr uint32, value uint8) {
	checkAddr(addr, len(r.data))
	r.data[addr] = value
}

// Bytes returns the RAM's backing slice directly, without copying. Callers
// that mutate it bypass Write (used by RAMBank/ROMBank views, which forward
// into the same backing slice).
func (r *RAM) Bytes() []uint8 {
	return r.data
}

func (r *RAM) Dump(w io.Writer, base uint32) error {
	return dump(w, r.data, base)
}

// dump renders data as a conventional 16-bytes-per-row hex dump, each row
// labelled with its address starting at base.
func dump(w io.Writer, data []uint8, base uint32) error {
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		if _, err := fmt.Fprintf(w, "%08x: ", base+uint32(off)); err != nil {
			return err
		}
		for i := off; i < end; i++ {
			if _, err := fmt.Fprintf(w, "%02x ", data[i]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
