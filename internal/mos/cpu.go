package mos

import (
	"fmt"
	"log"
)

const (
	stackStartAddr = uint16(0x100)
)

const (
	flagC = uint8(1 << iota) // Carry
	flagZ                    // Zero
	flagI                    // Interrupt Disable
	flagD                    // Decimal Mode
	flagB                    // Break Command
	flagU                    // Unused, reads as 1
	flagV                    // Overflow
	flagN                    // Negative
)

const (
	vecNMI   = uint16(0xfffa)
	vecReset = uint16(0xfffc)
	vecIRQ   = uint16(0xfffe)
)

type CPU struct {
	a  uint8
	x  uint8
	y  uint8
	p  uint8
	sp uint8
	pc uint16

	bus ReadWriter

	cyclesRem   uint8
	totalCycles uint32

	// Latch for ACC/IMP operands. When set, fetchData returns suppliedData
	// instead of reading memory, and shift results land in A.
	supplied     bool
	suppliedData uint8
}

func isSameSign(a, b uint8) bool {
	return (a^b)&0x80 == 0
}

func isDiffPage(a, b uint16) bool {
	return a&0xff00 != b&0xff00
}

func NewCPU(bus ReadWriter) *CPU {
	return &CPU{
		bus: bus,
	}
}

// Mount replaces the attached bus.
func (c *CPU) Mount(bus ReadWriter) {
	c.bus = bus
}

func (c *CPU) read8(addr uint16) uint8 {
	if c.bus == nil {
		log.Printf("cpu: read8 $%04X with no bus mounted", addr)
		return 0
	}
	return c.bus.Read8(addr)
}

func (c *CPU) read16(addr uint16) uint16 {
	return uint16(c.read8(addr)) | uint16(c.read8(addr+1))<<8
}

func (c *CPU) write8(addr uint16, data uint8) {
	if c.bus == nil {
		log.Printf("cpu: write8 $%04X with no bus mounted", addr)
		return
	}
	c.bus.Write8(addr, data)
}

func (c CPU) getFlag(flag uint8) bool {
	return c.p&flag > 0
}

func (c *CPU) setFlag(flag uint8, v bool) {
	if v {
		c.p |= flag
		return
	}
	c.p &= ^flag
}

func (c *CPU) setFlagsZN(value uint8) {
	c.setFlag(flagZ, value == 0)
	c.setFlag(flagN, value&0x80 > 0)
}

func (c CPU) carry() uint8 {
	if c.getFlag(flagC) {
		return 1
	}
	return 0
}

func (c *CPU) stackPush8(data uint8) {
	c.write8(stackStartAddr|uint16(c.sp), data)
	c.sp--
}

func (c *CPU) stackPush16(data uint16) {
	c.stackPush8(uint8(data >> 8))
	c.stackPush8(uint8(data & 0xff))
}

func (c *CPU) stackPop8() uint8 {
	c.sp++
	return c.read8(stackStartAddr | uint16(c.sp))
}

func (c *CPU) stackPop16() uint16 {
	lo := uint16(c.stackPop8())
	hi := uint16(c.stackPop8())
	return lo | hi<<8
}

// Reset puts the CPU into its power-on state. It costs no cycles.
func (c *CPU) Reset() {
	c.a = 0
	c.x = 0
	c.y = 0
	c.p = flagU
	c.sp = 0xfd
	c.pc = c.read16(vecReset)
	c.cyclesRem = 0
	c.supplied = false
	c.suppliedData = 0
}

// IRQ services a maskable interrupt request. It is ignored while the
// interrupt-disable flag is set.
func (c *CPU) IRQ() {
	if c.getFlag(flagI) {
		return
	}

	c.stackPush16(c.pc)
	c.setFlag(flagB, false)
	c.setFlag(flagU|flagI, true)
	c.stackPush8(c.p)
	c.pc = c.read16(vecIRQ)
	c.cyclesRem += 7
}

// NMI services a non-maskable interrupt request.
func (c *CPU) NMI() {
	c.stackPush16(c.pc)
	c.setFlag(flagB, false)
	c.setFlag(flagU|flagI, true)
	c.stackPush8(c.p)
	c.pc = c.read16(vecNMI)
	c.cyclesRem += 8
}

// Tick advances the CPU by one clock cycle. While an instruction is in
// flight it burns down the remaining cycles; otherwise it fetches, decodes
// and executes the next instruction, depositing the full addressing plus
// execution cost. It reports whether the current instruction still has
// cycles left.
func (c *CPU) Tick() bool {
	c.totalCycles++

	if c.cyclesRem > 0 {
		c.cyclesRem--
		return c.cyclesRem > 0
	}

	opcode := c.read8(c.pc)
	c.pc++

	det := Lookup(opcode)
	addr, addrCycles := c.resolve(det.Mode)
	execCycles := c.execute(det.Op, opcode, addr)
	c.cyclesRem += addrCycles + execCycles

	c.setFlag(flagU, true)

	return c.cyclesRem > 0
}

func (c *CPU) A() uint8            { return c.a }
func (c *CPU) X() uint8            { return c.x }
func (c *CPU) Y() uint8            { return c.y }
func (c *CPU) SP() uint8           { return c.sp }
func (c *CPU) PC() uint16          { return c.pc }
func (c *CPU) Status() uint8       { return c.p }
func (c *CPU) TotalCycles() uint32 { return c.totalCycles }

// String renders the register file as a one-line status, flags first set to
// uppercase.
func (c *CPU) String() string {
	return fmt.Sprintf("PC:$%04X SP:$%02X A:$%02X X:$%02X Y:$%02X [%s] CYC:%d",
		c.pc, c.sp, c.a, c.x, c.y, c.flagString(), c.totalCycles)
}

func (c *CPU) flagString() string {
	names := []uint8{'N', 'V', 'U', 'B', 'D', 'I', 'Z', 'C'}
	flags := []uint8{flagN, flagV, flagU, flagB, flagD, flagI, flagZ, flagC}

	out := make([]byte, len(flags))
	for i, flag := range flags {
		if c.getFlag(flag) {
			out[i] = names[i]
		} else {
			out[i] = names[i] + 'a' - 'A'
		}
	}
	return string(out)
}
