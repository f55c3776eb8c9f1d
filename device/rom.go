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
	"crypto/sha256"
	"encoding/hex"
	"io"

	"github.com/cdio-go/caio/errors"
)

// ROM is a RAM whose Write is silently ignored. It can optionally be
// constructed with an integrity check against a caller-supplied SHA-256
// digest, or against an expected size, catching a corrupt or truncated
// firmware image at load time rather than letting it run.
type ROM struct {
	RAM
}

// NewROM returns a ROM holding a copy of data.
func NewROM(data []byte, label string) *ROM {
	return &ROM{RAM: *NewRAMFromBytes(data, label)}
}

// NewROMFromReader reads count bytes from r (or to EOF if count is zero)
// into a new ROM.
func NewROMFromReader(r io.Reader, count int, label string) (*ROM, error) {
	ram, err := NewRAMFromReader(r, count, label)
	if err != nil {
		return nil, err
	}
	return &ROM{RAM: *ram}, nil
}

// NewROMFromReaderWithDigest reads a ROM image from r and verifies its
// SHA-256 digest equals wantDigest (a lowercase hex string). A mismatch
// fails with an IOError.
func NewROMFromReaderWithDigest(r io.Reader, wantDigest string, label string) (*ROM, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.New(errors.IOError, "reading %s: %v", label, err)
	}

	sum := sha256.Sum256(data)
	got := hex.EncodeToString(sum[:])
	if got != wantDigest {
		return nil, errors.New(errors.IOError, "%s: digest mismatch: want %s, got %s", label, wantDigest, got)
	}

	return &ROM{RAM: *NewRAMFromBytes(data, label)}, nil
}

// NewROMFromReaderWithSize reads a ROM image from r and fails with an
// IOError unless its length equals wantSize exactly.
func NewROMFromReaderWithSize(r io.Reader, wantSize int, label string) (*ROM, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.New(errors.IOError, "reading %s: %v", label, err)
	}
	if len(data) != wantSize {
		return nil, errors.New(errors.IOError, "%s: expected %d bytes, got %d", label, wantSize, len(data))
	}
	return &ROM{RAM: *NewRAMFromBytes(data, label)}, nil
}

func (r *ROM) Type() string { return "ROM" }

// Write is a no-op: ROM contents cannot be altered by the CPU.
func (r *ROM) Write(addr uint32, value uint8) {
	checkAddr(addr, r.Size())
}
