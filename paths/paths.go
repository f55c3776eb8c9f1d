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

// Package paths resolves locations for persistent, per-application state:
// cartridge battery-backed RAM, monitor command history, configuration
// files. Every machine hosted by this module (C64, NES, ZX-80/81,
// ZX-Spectrum) has its own appname, so ResourcePath takes it explicitly
// rather than baking in a single compiled-in name.
package paths

import (
	"os"
	"path/filepath"

	"github.com/cdio-go/caio/errors"
)

// ResourcePath returns the path to filename under subdir, beneath the given
// application's configuration directory (~/.config/<appname>), creating any
// missing intervening directories. Either subdir or filename may be empty.
func ResourcePath(appname, subdir, filename string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New(errors.IOError, "could not resolve home directory: %v", err)
	}

	dir := filepath.Join(home, ".config", appname, subdir)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", errors.New(errors.IOError, "could not create resource directory: %v", err)
	}

	if filename == "" {
		return dir, nil
	}
	return filepath.Join(dir, filename), nil
}
