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

// Package romload is the shared "load a ROM image, or synthesise a blank
// one" helper every cmd/* entry point needs before it has a real image to
// hand it: when no path is given, machines still need a device occupying
// the ROM's address range.
package romload

import (
	"fmt"
	"os"

	"github.com/cdio-go/caio/device"
)

// OrBlank loads a ROM image of the given size from path, labelling the
// device label. If path is empty, it returns a zeroed device of the same
// size instead. Load failures are fatal: a ROM a caller explicitly named
// but could not open or size-check is a configuration error, not a
// recoverable one.
func OrBlank(path string, size int, label string) device.Device {
	if path == "" {
		return device.NewRAMWithPattern(size, 0, false, label)
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not open %s ROM %q: %v\n", label, path, err)
		os.Exit(1)
	}
	defer f.Close()

	rom, err := device.NewROMFromReaderWithSize(f, size, label)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load %s ROM %q: %v\n", label, path, err)
		os.Exit(1)
	}
	return rom
}
