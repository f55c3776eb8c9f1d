package monitor_test

import (
	"testing"

	"github.com/cdio-go/caio/monitor"
	"github.com/cdio-go/caio/test"
)

func TestCompileConditionRegisterComparison(t *testing.T) {
	cpu := newFakeCPU()
	cpu.regs["ra"] = 0

	fn, err := monitor.CompileCondition(cpu, "ra > $10")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, 0, fn())

	cpu.regs["ra"] = 0x20
	test.ExpectInequality(t, 0, fn())
}

func TestCompileConditionMemoryReference(t *testing.T) {
	cpu := newFakeCPU()
	cpu.mem[0xFD02] = 3

	fn, err := monitor.CompileCondition(cpu, "*$fd02==#3")
	test.ExpectSuccess(t, err)
	test.ExpectInequality(t, 0, fn())

	cpu.mem[0xFD02] = 4
	test.ExpectEquality(t, 0, fn())
}

func TestCompileConditionDecimalLiteral(t *testing.T) {
	cpu := newFakeCPU()
	cpu.regs["rx"] = 16

	fn, err := monitor.CompileCondition(cpu, "rx==#16")
	test.ExpectSuccess(t, err)
	test.ExpectInequality(t, 0, fn())
}

func TestCompileConditionBitwiseAnd(t *testing.T) {
	cpu := newFakeCPU()
	cpu.regs["ra"] = 0x81

	fn, err := monitor.CompileCondition(cpu, "ra & $80")
	test.ExpectSuccess(t, err)
	test.ExpectInequality(t, 0, fn())
}

func TestCompileConditionRejectsUnknownRegister(t *testing.T) {
	cpu := newFakeCPU()

	_, err := monitor.CompileCondition(cpu, "rz > $10")
	test.ExpectFailure(t, err)
}

func TestCompileConditionRejectsMissingOperator(t *testing.T) {
	cpu := newFakeCPU()

	_, err := monitor.CompileCondition(cpu, "ra $10")
	test.ExpectFailure(t, err)
}
