package monitor_test

import (
	"fmt"
	"io"
	"strings"

	"github.com/cdio-go/caio/errors"
)

// fakeCPU is a minimal MonitoredCPU: a flat 64K memory, a handful of named
// registers, and just enough bookkeeping to exercise the monitor package's
// command handlers and breakpoint expression compiler without pulling in
// any real CPU emulation.
type fakeCPU struct {
	pc       uint32
	mem      [0x10000]uint8
	regs     map[string]uint32
	ebreak   bool
	logLevel uint
	loaded   string
	saved    string
}

func newFakeCPU() *fakeCPU {
	return &fakeCPU{
		regs: map[string]uint32{"ra": 0, "rx": 0, "ry": 0},
	}
}

func (c *fakeCPU) Regs() string {
	return fmt.Sprintf("PC=%04X A=%02X X=%02X Y=%02X", c.pc, c.regs["ra"], c.regs["rx"], c.regs["ry"])
}

func (c *fakeCPU) GetPC() uint32      { return c.pc }
func (c *fakeCPU) SetPC(addr uint32)  { c.pc = addr }
func (c *fakeCPU) Peek(addr uint32) uint8 { return c.mem[addr&0xFFFF] }

func (c *fakeCPU) Write(addr uint32, value uint8) {
	c.mem[addr&0xFFFF] = value
}

func (c *fakeCPU) Disasm(w io.Writer, addr uint32, count int, showPC bool) error {
	fmt.Fprintf(w, "disasm $%04X x%d\n", addr, count)
	return nil
}

func (c *fakeCPU) MMap(w io.Writer) error {
	fmt.Fprintln(w, "mmap")
	return nil
}

func (c *fakeCPU) EBreak() {
	c.ebreak = true
}

func (c *fakeCPU) Load(file string, addr uint32) (uint32, int, error) {
	c.loaded = file
	return addr, 0x10, nil
}

func (c *fakeCPU) Save(file string, start, end uint32) error {
	if end < start {
		return errors.New(errors.InvalidArgument, "end before start")
	}
	c.saved = file
	return nil
}

func (c *fakeCPU) LogLevel(name string) (uint, error) {
	if name == "" {
		return c.logLevel, nil
	}
	switch strings.ToLower(name) {
	case "trace":
		c.logLevel = 2
	case "debug":
		c.logLevel = 1
	default:
		c.logLevel = 0
	}
	return c.logLevel, nil
}

func (c *fakeCPU) RegValue(name string) (uint32, error) {
	v, ok := c.regs[strings.ToLower(name)]
	if !ok {
		return 0, errors.New(errors.InvalidArgument, "not a register: %s", name)
	}
	return v, nil
}

func (c *fakeCPU) BPDoc(topic string) string {
	return "breakpoint help for " + topic
}
