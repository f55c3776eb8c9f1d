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

// Command nes wires an iNES cartridge, the 2K internal CPU RAM, and the
// monitor together into a flat CPU bus. As with cmd/c64, there is no 2A03
// core in this module, so the entry point drops straight into the monitor
// REPL rather than ticking a scheduler.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cdio-go/caio/aspace"
	"github.com/cdio-go/caio/cartridge/nes"
	"github.com/cdio-go/caio/cmd/internal/target"
	"github.com/cdio-go/caio/config"
	"github.com/cdio-go/caio/device"
	"github.com/cdio-go/caio/monitor"
	"github.com/cdio-go/caio/paths"
)

const appname = "caio-nes"

// blockSize is 2K so the CPU's internal RAM mirrors ($0000-$1FFF) and the
// cartridge's $4000-based addressing (see cartridge/nes.Mapper) both land
// on block-aligned boundaries.
const blockSize = 0x0800

func main() {
	romPath := flag.String("rom", "", "path to an iNES (.nes) cartridge image")
	cfgPath := flag.String("config", "", "path to an INI configuration file")
	flag.Parse()

	cfg := config.New()
	cfg.Set("nes", "region", "ntsc")
	if *cfgPath != "" {
		fileCfg, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = config.Merge(cfg, fileCfg)
	}

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "usage: nes -rom <file.nes> [-config <file.ini>]")
		os.Exit(1)
	}

	mapper, err := nes.Load(*romPath, appname)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ram := device.NewRAM(2048, "cpu-ram")
	ppuRegs := device.NewNone(0) // CPU-side $2000-$3FFF PPU register window: out of scope (pixel pipeline)

	bus := aspace.New(blockSize, 0xFFFF, nesSlots(ram, ppuRegs, mapper), nesSlots(ram, ppuRegs, mapper))

	historyPath, err := paths.ResourcePath(appname, "", "monitor.hist")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	mon, err := monitor.New(os.Stdin, os.Stdout, historyPath, target.New(bus, 0x8000))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for mon.Run() {
		fmt.Println("(no CPU core in this build: nothing to run; back to the monitor)")
	}
}

// nesSlots builds the 32-block (2K each, covering $0000-$FFFF) CPU bus
// table: RAM mirrored four times, the PPU register window, and the
// cartridge mapper occupying everything from $4000 up. The mapper's own
// Read/Write (see cartridge/nes.base) already treats $4000-$5FFF as
// unmapped internally, matching real hardware's open bus in that range, so
// no separate APU/controller device is needed here.
func nesSlots(ram, ppuRegs device.Device, mapper nes.Mapper) []aspace.Slot {
	slots := make([]aspace.Slot, 32)
	for i := 0; i < 4; i++ {
		slots[i] = aspace.Slot{Device: ram, Base: 0}
	}
	for i := 4; i < 8; i++ {
		slots[i] = aspace.Slot{Device: ppuRegs, Base: 0}
	}
	for i := 8; i < 32; i++ {
		slots[i] = aspace.Slot{Device: mapper, Base: uint32((i - 8) * blockSize)}
	}
	return slots
}
