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

// Command zxspectrum wires a ZX-Spectrum 48K ROM and RAM, its keyboard
// matrix and TAP cassette engine, and the monitor behind a flat Z80 bus.
// As with the other cmd/* entry points there is no Z80 core in this
// module; the tape engine is built and ready for a future core to drive
// through its Read/Write pulse interface, but nothing here ticks it.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cdio-go/caio/aspace"
	"github.com/cdio-go/caio/cassette/zxspectrum"
	"github.com/cdio-go/caio/cmd/internal/romload"
	"github.com/cdio-go/caio/cmd/internal/target"
	"github.com/cdio-go/caio/config"
	"github.com/cdio-go/caio/device"
	"github.com/cdio-go/caio/keyboard"
	"github.com/cdio-go/caio/monitor"
	"github.com/cdio-go/caio/paths"
)

const appname = "caio-zxspectrum"

func main() {
	romPath := flag.String("rom", "", "path to the 48K ROM image (16K)")
	tapPath := flag.String("tape", "", "path to a .tap file to load")
	cfgPath := flag.String("config", "", "path to an INI configuration file")
	flag.Parse()

	cfg := config.New()
	cfg.Set("zxspectrum", "fastload", "true")
	if *cfgPath != "" {
		fileCfg, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = config.Merge(cfg, fileCfg)
	}
	fastload := cfg.GetBool("zxspectrum", "fastload", true)

	rom := romload.OrBlank(*romPath, 0x4000, "48k-rom")
	ram := device.NewRAM(0xC000, "48k-ram")

	// Four 16K blocks: the ROM at $0000-$3FFF, RAM filling $4000-$FFFF.
	slots := []aspace.Slot{
		{Device: rom, Base: 0},
		{Device: ram, Base: 0}, {Device: ram, Base: 0x4000}, {Device: ram, Base: 0x8000},
	}
	bus := aspace.New(0x4000, 0xFFFF, slots, slots)

	if *tapPath != "" {
		backend, err := zxspectrum.NewFileBackend(*tapPath, "")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		tape := zxspectrum.NewTape(backend, fastload)
		fmt.Printf("tape loaded, fastload=%v, idle=%v\n", tape.IsFastload(), tape.IsIdle())
	}

	kbd := keyboard.NewKeyboard(keyboard.NewGeneric8x8Matrix(nil, keyboard.Position{}, false))
	kbd.Enable(true)

	historyPath, err := paths.ResourcePath(appname, "", "monitor.hist")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	mon, err := monitor.New(os.Stdin, os.Stdout, historyPath, target.New(bus, 0x0000))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for mon.Run() {
		fmt.Println("(no CPU core in this build: nothing to run; back to the monitor)")
	}
}
