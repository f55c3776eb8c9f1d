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

package monitor

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Command is one monitor REPL command: recognised by either its full name
// or its short alias, dispatched with the full argument list (args[0] is
// the command word itself, as typed). fn returns true when the monitor
// should exit the REPL and resume emulation (eg. "go", "si"); it returns
// false to keep reading commands.
type Command struct {
	Name  string
	Short string
	Args  string
	Help  string
	Fn    func(mon *Monitor, args []string) bool
}

// commands is consulted in order; the first entry whose Name or Short
// matches args[0] is run.
var commands = []Command{
	{"assemble", "a", ".|$addr", "Assemble machine code from $addr", cmdAssemble},
	{"disass", "d", ".|$addr [n]", "Disassemble n instructions from $addr", cmdDisassemble},
	{"dump", "x", "$addr [n]", "Dump n bytes of memory from $addr", cmdDump},
	{"regs", "r", "", "Show registers", cmdRegisters},
	{"mmap", "m", "", "Show memory map", cmdMMap},
	{"bpadd", "b", "$addr [cond]", "Add a (conditional) breakpoint at $addr", cmdBPAdd},
	{"bpdel", "bd", "$addr", "Delete breakpoint at $addr", cmdBPDel},
	{"bpclear", "bc", "", "Clear all breakpoints", cmdBPClear},
	{"bplist", "bl", "", "List breakpoints", cmdBPList},
	{"go", "g", ".|$addr", "Run program at $addr", cmdGo},
	{"si", "s", "[.|$addr]", "Execute single instruction at $addr", cmdStep},
	{"load", "l", "fname [$addr]", "Load a binary file", cmdLoad},
	{"save", "w", "fname $start $end", "Create a binary file", cmdSave},
	{"loglevel", "lv", "[level]", "Show or set the CPU loglevel", cmdLogLevel},
	{"fc", "fc", "", "Show command history", cmdHistory},
	{"quit", "q", "[code]", "Terminate the emulator with exit code", cmdQuit},
	{"help", "h", "", "This help", cmdHelp},
	{"help", "?", "", "", cmdHelp},
}

func findCommand(word string) *Command {
	for i := range commands {
		if commands[i].Name == word || commands[i].Short == word {
			return &commands[i]
		}
	}
	return nil
}

// toAddr resolves "." to defval and anything else via toNumber.
func (mon *Monitor) toAddr(s string, defval uint32) (uint32, error) {
	if s == "." {
		return defval, nil
	}
	n, err := mon.toNumber(s)
	return uint32(n), err
}

// toNumber parses a monitor numeric literal: bare or "$"-prefixed is
// hexadecimal, "#"-prefixed is decimal.
func (mon *Monitor) toNumber(s string) (uint64, error) {
	base := 16
	if strings.HasPrefix(s, "#") {
		base = 10
		s = s[1:]
	}
	if strings.HasPrefix(s, "$") {
		base = 16
		s = s[1:]
	}
	n, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		mon.writef("Invalid value: %s\n", s)
		return 0, err
	}
	return n, nil
}

func cmdAssemble(mon *Monitor, args []string) bool {
	addr := mon.cpu.GetPC()
	for _, a := range args[1:] {
		if v, err := mon.toAddr(a, addr); err == nil {
			addr = v
		}
	}

	mon.write("Entering edit mode. To finish write '.' or an empty line\n")

	for {
		line, err := mon.rl.ReadLine(fmt.Sprintf("$%04X: ", addr))
		if err != nil {
			return false
		}
		line = strings.TrimSpace(line)
		if line == "" || line == "." {
			break
		}

		var program []uint8
		bad := false
		for _, field := range strings.Fields(line) {
			v, err := strconv.ParseUint(strings.TrimPrefix(field, "$"), 16, 8)
			if err != nil {
				mon.writef("Invalid value: %s\n", field)
				bad = true
				break
			}
			program = append(program, uint8(v))
		}
		if bad {
			continue
		}

		for _, b := range program {
			mon.cpu.Write(addr, b)
			addr++
		}
	}

	return false
}

func cmdDisassemble(mon *Monitor, args []string) bool {
	addr := mon.cpu.GetPC()
	count := 16

	if len(args) > 1 {
		v, err := mon.toAddr(args[1], addr)
		if err != nil {
			return false
		}
		addr = v
	}
	if len(args) > 2 {
		n, err := mon.toNumber(args[2])
		if err != nil {
			return false
		}
		count = int(n)
	}

	var buf bytes.Buffer
	if err := mon.cpu.Disasm(&buf, addr, count, true); err != nil {
		mon.writef("%v\n", err)
		return false
	}
	mon.write(buf.String())
	return false
}

func cmdDump(mon *Monitor, args []string) bool {
	addr := mon.cpu.GetPC()
	count := 16

	if len(args) > 1 {
		v, err := mon.toAddr(args[1], addr)
		if err != nil {
			return false
		}
		addr = v
	}
	if len(args) > 2 {
		n, err := mon.toNumber(args[2])
		if err != nil {
			return false
		}
		count = int(n)
	}

	if count == 0 {
		count = int(0xFFFF-addr) + 1
	}

	data := make([]uint8, count)
	for i := range data {
		data[i] = mon.cpu.Peek(addr + uint32(i))
	}

	mon.write(dumpHex(data, addr))
	return false
}

// dumpHex renders 16 bytes per row as "$addr  hex...  ascii".
func dumpHex(data []uint8, addr uint32) string {
	var buf bytes.Buffer
	for i := 0; i < len(data); i += 16 {
		end := i + 16
		if end > len(data) {
			end = len(data)
		}
		row := data[i:end]

		fmt.Fprintf(&buf, "$%04X ", addr+uint32(i))
		for j := 0; j < 16; j++ {
			if j < len(row) {
				fmt.Fprintf(&buf, " %02X", row[j])
			} else {
				buf.WriteString("   ")
			}
		}
		buf.WriteString("  ")
		for _, b := range row {
			if b >= 0x20 && b < 0x7F {
				buf.WriteByte(b)
			} else {
				buf.WriteByte('.')
			}
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

func cmdRegisters(mon *Monitor, args []string) bool {
	mon.writef("%s\n", mon.cpu.Regs())
	return false
}

func cmdMMap(mon *Monitor, args []string) bool {
	var buf bytes.Buffer
	if err := mon.cpu.MMap(&buf); err != nil {
		mon.writef("%v\n", err)
		return false
	}
	mon.write(buf.String())
	return false
}

func cmdBPAdd(mon *Monitor, args []string) bool {
	if len(args) == 1 {
		return false
	}

	if args[1] == "h" || args[1] == "?" || args[1] == "help" {
		mon.write(mon.cpu.BPDoc(args[0]))
		return false
	}

	var cond *breakpointCond
	if len(args) > 2 {
		line := strings.Join(args[2:], "")
		fn, err := CompileCondition(mon.cpu, line)
		if err != nil {
			mon.writef("%v\n", err)
			return false
		}
		cond = &breakpointCond{fn: fn, source: line}
	}

	addr, err := mon.toAddr(args[1], mon.cpu.GetPC())
	if err != nil {
		return false
	}
	mon.addBreakpoint(addr, cond)
	return false
}

func cmdBPDel(mon *Monitor, args []string) bool {
	for _, a := range args[1:] {
		addr, err := mon.toAddr(a, mon.cpu.GetPC())
		if err != nil {
			continue
		}
		mon.DelBreakpoint(addr)
	}
	return false
}

func cmdBPClear(mon *Monitor, args []string) bool {
	mon.breakpoints = map[uint32]*breakpointCond{}
	return false
}

func cmdBPList(mon *Monitor, args []string) bool {
	pc := mon.cpu.GetPC()
	for addr, cond := range mon.breakpoints {
		line := fmt.Sprintf("$%04X", addr)
		if cond != nil {
			line += " " + cond.source
		}
		if addr == pc {
			line += " <"
		}
		mon.writef("%s\n", line)
	}
	return false
}

func cmdGo(mon *Monitor, args []string) bool {
	if len(args) > 1 {
		addr, err := mon.toAddr(args[1], mon.cpu.GetPC())
		if err != nil {
			mon.writef("Invalid address: %s\n", args[1])
			return false
		}
		mon.cpu.SetPC(addr)
	}
	mon.prevLine = "g"
	mon.prevFn = "g"
	return true
}

func cmdStep(mon *Monitor, args []string) bool {
	if len(args) > 1 {
		addr, err := mon.toAddr(args[1], mon.cpu.GetPC())
		if err != nil {
			mon.writef("Invalid address: %s\n", args[1])
			return false
		}
		mon.cpu.SetPC(addr)
	}
	mon.cpu.EBreak()
	mon.prevLine = "s"
	mon.prevFn = "s"
	return true
}

func cmdLoad(mon *Monitor, args []string) bool {
	if len(args) <= 1 {
		return false
	}

	var addr uint32
	if len(args) > 2 {
		n, err := mon.toNumber(args[2])
		if err != nil {
			return false
		}
		addr = uint32(n)
	}

	start, size, err := mon.cpu.Load(args[1], addr)
	if err != nil {
		mon.writef("%v\n", err)
		return false
	}
	mon.writef("load: %s loaded at $%04X, size %d ($%04X)\n", args[1], start, size, size)
	return false
}

func cmdSave(mon *Monitor, args []string) bool {
	if len(args) != 4 {
		mon.write("Invalid number of arguments\n")
		return false
	}

	start, err := mon.toNumber(args[2])
	if err != nil {
		return false
	}
	end, err := mon.toNumber(args[3])
	if err != nil {
		return false
	}
	if end < start {
		mon.write("End address smaller than start address\n")
		return false
	}

	if err := mon.cpu.Save(args[1], uint32(start), uint32(end)); err != nil {
		mon.writef("%v\n", err)
	}
	return false
}

func cmdLogLevel(mon *Monitor, args []string) bool {
	name := ""
	if len(args) > 1 {
		name = args[1]
	}

	level, err := mon.cpu.LogLevel(name)
	if err != nil {
		mon.writef("%v\n", err)
		return false
	}
	if len(args) <= 1 {
		mon.writef("%d\n", level)
	}
	return false
}

func cmdHistory(mon *Monitor, args []string) bool {
	for _, line := range mon.rl.History() {
		mon.writef("%s\n", line)
	}
	return false
}

func cmdQuit(mon *Monitor, args []string) bool {
	if len(args) > 1 {
		code, _ := strconv.Atoi(args[1])
		mon.writef("Emulator terminated with exit code: %d\n", code)
		os.Exit(code)
	}
	mon.isRunning = false
	return false
}

func cmdHelp(mon *Monitor, args []string) bool {
	var buf bytes.Buffer
	buf.WriteString("Monitor Commands:\n")

	for _, cmd := range commands {
		header := cmd.Name + " " + cmd.Args
		fmt.Fprintf(&buf, "%3s | %-24s%s\n", cmd.Short, header, cmd.Help)
	}

	buf.WriteString("values without a prefix or prefixed by '$' are considered hexadecimal\n")
	buf.WriteString("values prefixed only by '#' are considered decimal numbers\n")

	mon.write(buf.String())
	return false
}
