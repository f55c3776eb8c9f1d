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

// Command zx81 wires a ZX-80/81 ROM and RAM, its keyboard matrix and
// cassette backend, and the monitor together behind a flat Z80 bus. As
// with the other cmd/* entry points there is no Z80 core in this module;
// the cassette engine is built and ready for a future core to drive
// through its Read/Write pulse interface (the EAR/MIC I/O port), but
// nothing here ticks it.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cdio-go/caio/aspace"
	"github.com/cdio-go/caio/cassette/zx80"
	"github.com/cdio-go/caio/cmd/internal/romload"
	"github.com/cdio-go/caio/cmd/internal/target"
	"github.com/cdio-go/caio/config"
	"github.com/cdio-go/caio/device"
	"github.com/cdio-go/caio/keyboard"
	"github.com/cdio-go/caio/monitor"
	"github.com/cdio-go/caio/paths"
)

const appname = "caio-zx81"

func main() {
	romPath := flag.String("rom", "", "path to the ZX-81 ROM image (8K)")
	pFile := flag.String("p", "", "path to a .p program file to preload at $4000")
	cfgPath := flag.String("config", "", "path to an INI configuration file")
	cassetteDir := flag.String("cassette-dir", "", "directory for .o/.p cassette files")
	flag.Parse()

	cfg := config.New()
	cfg.Set("zx81", "ramsize", "16384")
	if *cfgPath != "" {
		fileCfg, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = config.Merge(cfg, fileCfg)
	}
	ramSize := cfg.GetInt("zx81", "ramsize", 16384)

	rom := romload.OrBlank(*romPath, 0x2000, "zx81-rom")
	ram := device.NewRAM(ramSize, "zx81-ram")

	// Eight 8K blocks: ROM at $0000-$1FFF, RAM mirrored across the other
	// seven blocks of the 16-bit space (a real ZX81 decodes this with far more nuance via
	// NMI-driven video generation, out of scope here).
	slots := []aspace.Slot{
		{Device: rom, Base: 0},
		{Device: ram, Base: 0}, {Device: ram, Base: 0}, {Device: ram, Base: 0},
		{Device: ram, Base: 0}, {Device: ram, Base: 0}, {Device: ram, Base: 0}, {Device: ram, Base: 0},
	}
	bus := aspace.New(0x2000, 0xFFFF, slots, slots)

	if *cassetteDir != "" {
		backend, err := zx80.NewCassetteP(*cassetteDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		tape := zx80.NewCassette(backend)
		fmt.Printf("cassette ready (idle=%v)\n", tape.IsIdle())
	}

	kbd := keyboard.NewKeyboard(keyboard.NewGeneric8x8Matrix(nil, keyboard.Position{}, false))
	kbd.Enable(true)

	historyPath, err := paths.ResourcePath(appname, "", "monitor.hist")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	tgt := target.New(bus, 0x0000)
	if *pFile != "" {
		if _, _, err := tgt.Load(*pFile, 0x4000); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	mon, err := monitor.New(os.Stdin, os.Stdout, historyPath, tgt)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for mon.Run() {
		fmt.Println("(no CPU core in this build: nothing to run; back to the monitor)")
	}
}
