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

// Command c64 wires the C64 substrate (PLA, ROM set, cartridge loader,
// keyboard matrix, monitor) together behind a bus the monitor can inspect.
// There is no 6510 core in this module, so "running" the machine means
// entering the monitor REPL directly rather than ticking a clock; go/si
// simply report that emulation resumed with nothing left to step.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cdio-go/caio/cartridge/c64"
	"github.com/cdio-go/caio/clock"
	"github.com/cdio-go/caio/cmd/internal/romload"
	"github.com/cdio-go/caio/cmd/internal/target"
	"github.com/cdio-go/caio/config"
	"github.com/cdio-go/caio/device"
	"github.com/cdio-go/caio/keyboard"
	"github.com/cdio-go/caio/monitor"
	"github.com/cdio-go/caio/paths"
)

const appname = "caio-c64"

func main() {
	cart := flag.String("cart", "", "path to a CRT cartridge image")
	basic := flag.String("basic", "", "path to the BASIC ROM image (8K)")
	kernal := flag.String("kernal", "", "path to the KERNAL ROM image (8K)")
	chargen := flag.String("chargen", "", "path to the character ROM image (4K)")
	cfgPath := flag.String("config", "", "path to an INI configuration file")
	flag.Parse()

	cfg := config.New()
	cfg.Set("c64", "ntsc", "true")
	if *cfgPath != "" {
		fileCfg, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = config.Merge(cfg, fileCfg)
	}

	ram := device.NewRAM(0x10000, "ram")
	basicROM := romload.OrBlank(*basic, 0x2000, "basic")
	kernalROM := romload.OrBlank(*kernal, 0x2000, "kernal")
	chargenROM := romload.OrBlank(*chargen, 0x1000, "chargen")
	io := device.NewRAM(0x1000, "io") // CIA/VIC/SID registers: out of scope, stand in as plain RAM

	pla := c64.NewPLA(ram, basicROM, kernalROM, chargenROM, io)

	if *cart != "" {
		loaded, err := c64.Load(*cart, appname)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		pla.SetMapper(loaded)
	}

	historyPath, err := paths.ResourcePath(appname, "", "monitor.hist")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// The keyboard matrix is built and ready for a UI layer (out of scope
	// here) to drive via KeyPressed/KeyReleased.
	kbd := keyboard.NewKeyboard(keyboard.NewGeneric8x8Matrix(nil, keyboard.Position{}, false))
	kbd.Enable(true)

	sched := clock.New(985248, 1000) // PAL 6510 clock; no Clockable chips registered in this build
	sched.SetDelay(0)

	mon, err := monitor.New(os.Stdin, os.Stdout, historyPath, target.New(pla, 0xFCE2))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	for mon.Run() {
		fmt.Println("(no CPU core in this build: nothing to run; back to the monitor)")
	}
}
