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

package nes

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cdio-go/caio/cartridge"
	"github.com/cdio-go/caio/errors"
)

// Load reads an iNES (.nes) file and constructs the Mapper for its header's
// mapper number. appname names the persistent-state directory for
// cartridges with battery-backed PRG RAM.
func Load(path, appname string) (Mapper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.IOError, "can't read %s: %v", path, err)
	}

	hdr, prg, chr, err := splitROM(data)
	if err != nil {
		return nil, errors.New(errors.InvalidCartridge, "%s: %v", path, err)
	}

	digest := cartridge.Digest(data)
	ramData, err := loadPRGRAM(appname, digest, hdr)
	if err != nil {
		return nil, err
	}

	label := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	switch hdr.Mapper() {
	case 0:
		return NewNROM(label, hdr, prg, chr, ramData, digest)
	case 1:
		return NewMMC1(label, hdr, prg, chr, ramData, digest)
	case 2:
		return NewUxROM(label, hdr, prg, ramData, digest)
	default:
		return nil, errors.New(errors.InvalidCartridge, "%s: unsupported mapper %d", path, hdr.Mapper())
	}
}
