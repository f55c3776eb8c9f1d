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

// Package cartridge collects what every machine's cartridge loader shares:
// a RAMInfo descriptor for reporting cartridge-RAM windows to callers (the
// monitor's memory map command), and persistent-RAM load/save helpers used
// by battery-backed cartridges. The CRT and iNES binary formats, and every
// concrete bank-switching mapper, live in cartridge/c64 and cartridge/nes:
// the two file formats and their bank-switching schemes share nothing
// reusable beyond this.
package cartridge

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/cdio-go/caio/errors"
	"github.com/cdio-go/caio/paths"
)

// RAMInfo describes one window of cartridge RAM: whether it is currently
// banked in, and the address ranges it answers reads and writes on. Used by
// mappers exposing onboard RAM (EasyFlash's 256-byte window, a persistent
// PRG-RAM bank) so the monitor can list and dump it without knowing the
// specific mapper's internal layout.
type RAMInfo struct {
	Label       string
	Active      bool
	ReadOrigin  uint16
	ReadMemtop  uint16
	WriteOrigin uint16
	WriteMemtop uint16
}

// Digest returns the lowercase hex SHA-256 digest of data. Persistent-RAM
// files are named after the digest of the cartridge image they belong to,
// so the same cartridge always finds its own save file regardless of
// where it was loaded from.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// LoadPersistentRAM reads <config dir>/ram/<digest>.ram for appname into a
// size-byte buffer. A missing file is not an error: this is the cartridge's
// first run, and it gets size zero-filled bytes instead.
func LoadPersistentRAM(appname, digest string, size int) ([]byte, error) {
	path, err := paths.ResourcePath(appname, "ram", digest+".ram")
	if err != nil {
		return nil, err
	}

	data := make([]byte, size)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, errors.New(errors.IOError, "can't open %s: %v", path, err)
	}
	defer f.Close()

	if _, err := io.ReadFull(f, data); err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, errors.New(errors.IOError, "can't read %s: %v", path, err)
	}
	return data, nil
}

// SavePersistentRAM writes data to <config dir>/ram/<digest>.ram for
// appname, creating intervening directories.
func SavePersistentRAM(appname, digest string, data []byte) error {
	path, err := paths.ResourcePath(appname, "ram", digest+".ram")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.New(errors.IOError, "can't write %s: %v", path, err)
	}
	return nil
}
