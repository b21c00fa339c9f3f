package mos

import "log"

// execute runs one decoded operation and returns its execution cost in
// cycles, not counting the addressing cost. Unknown operations behave as a
// two-cycle NOP.
func (c *CPU) execute(op Instruction, opcode uint8, addr uint16) uint8 {
	switch op {
	case OpADC:
		return c.adc(addr)
	case OpAND:
		return c.and(addr)
	case OpASL:
		return c.asl(addr)
	case OpBCC:
		return c.branchIf(!c.getFlag(flagC), addr)
	case OpBCS:
		return c.branchIf(c.getFlag(flagC), addr)
	case OpBEQ:
		return c.branchIf(c.getFlag(flagZ), addr)
	case OpBIT:
		return c.bit(addr)
	case OpBMI:
		return c.branchIf(c.getFlag(flagN), addr)
	case OpBNE:
		return c.branchIf(!c.getFlag(flagZ), addr)
	case OpBPL:
		return c.branchIf(!c.getFlag(flagN), addr)
	case OpBRK:
		return c.brk()
	case OpBVC:
		return c.branchIf(!c.getFlag(flagV), addr)
	case OpBVS:
		return c.branchIf(c.getFlag(flagV), addr)
	case OpCLC:
		c.setFlag(flagC, false)
		return 1
	case OpCLD:
		c.setFlag(flagD, false)
		return 1
	case OpCLI:
		c.setFlag(flagI, false)
		return 1
	case OpCLV:
		c.setFlag(flagV, false)
		return 1
	case OpCMP:
		return c.compare(c.a, addr)
	case OpCPX:
		return c.compare(c.x, addr)
	case OpCPY:
		return c.compare(c.y, addr)
	case OpDEC:
		return c.dec(addr)
	case OpDEX:
		c.x--
		c.setFlagsZN(c.x)
		return 1
	case OpDEY:
		c.y--
		c.setFlagsZN(c.y)
		return 1
	case OpEOR:
		return c.eor(addr)
	case OpINC:
		return c.inc(addr)
	case OpINX:
		c.x++
		c.setFlagsZN(c.x)
		return 1
	case OpINY:
		c.y++
		c.setFlagsZN(c.y)
		return 1
	case OpJMP:
		c.pc = addr
		return 1
	case OpJSR:
		return c.jsr(addr)
	case OpLDA:
		c.a = c.fetchData(addr)
		c.setFlagsZN(c.a)
		return 1
	case OpLDX:
		c.x = c.fetchData(addr)
		c.setFlagsZN(c.x)
		return 1
	case OpLDY:
		c.y = c.fetchData(addr)
		c.setFlagsZN(c.y)
		return 1
	case OpLSR:
		return c.lsr(addr)
	case OpNOP:
		return 1
	case OpORA:
		return c.ora(addr)
	case OpPHA:
		c.stackPush8(c.a)
		return 2
	case OpPHP:
		c.stackPush8(c.p)
		return 2
	case OpPLA:
		c.a = c.stackPop8()
		c.setFlagsZN(c.a)
		return 3
	case OpPLP:
		c.p = c.stackPop8()
		c.setFlag(flagU, true)
		return 3
	case OpROL:
		return c.rol(addr)
	case OpROR:
		return c.ror(addr)
	case OpRTI:
		return c.rti()
	case OpRTS:
		c.pc = c.stackPop16() + 1
		return 5
	case OpSBC:
		return c.sbc(addr)
	case OpSEC:
		c.setFlag(flagC, true)
		return 1
	case OpSED:
		c.setFlag(flagD, true)
		return 1
	case OpSEI:
		c.setFlag(flagI, true)
		return 1
	case OpSTA:
		c.write8(addr, c.a)
		return 1
	case OpSTX:
		c.write8(addr, c.x)
		return 1
	case OpSTY:
		c.write8(addr, c.y)
		return 1
	case OpTAX:
		c.x = c.a
		c.setFlagsZN(c.x)
		return 1
	case OpTAY:
		c.y = c.a
		c.setFlagsZN(c.y)
		return 1
	case OpTSX:
		c.x = c.sp
		c.setFlagsZN(c.x)
		return 1
	case OpTXA:
		c.a = c.x
		c.setFlagsZN(c.a)
		return 1
	case OpTXS:
		c.sp = c.x
		return 1
	case OpTYA:
		c.a = c.y
		c.setFlagsZN(c.a)
		return 1
	}

	log.Printf("cpu: illegal opcode $%02X at $%04X", opcode, c.pc)
	return 2
}

// branch moves PC by the sign-extended offset. Taken branches cost 2 cycles,
// 3 when the destination is on another page.
func (c *CPU) branch(offset uint16) uint8 {
	next := c.pc + offset

	cycles := uint8(2)
	if isDiffPage(next, c.pc) {
		cycles = 3
	}

	c.pc = next
	return cycles
}

func (c *CPU) branchIf(cond bool, offset uint16) uint8 {
	if cond {
		return c.branch(offset)
	}
	return 1
}

func bcdToInt(v uint8) int {
	return int(v&0x0f) + int(v>>4)*10
}

func (c *CPU) adc(addr uint16) uint8 {
	val := c.fetchData(addr)

	var result uint8
	if c.getFlag(flagD) {
		sum := bcdToInt(c.a) + bcdToInt(val) + int(c.carry())
		c.setFlag(flagC, sum > 99)
		sum %= 100
		result = uint8(sum/10)<<4 | uint8(sum%10)
	} else {
		sum := uint16(c.a) + uint16(val) + uint16(c.carry())
		result = uint8(sum)
		c.setFlag(flagC, sum > 0xff)
		c.setFlag(flagV, isSameSign(c.a, val) && !isSameSign(c.a, result))
	}

	c.setFlagsZN(result)
	c.a = result
	return 1
}

func (c *CPU) sbc(addr uint16) uint8 {
	val := c.fetchData(addr)

	var result uint8
	if c.getFlag(flagD) {
		borrow := int(1 - c.carry())
		lo := int(c.a&0x0f) - int(val&0x0f) - borrow
		hi := int(c.a>>4) - int(val>>4)
		if lo < 0 {
			lo += 10
			hi--
		}
		carryOut := true
		if hi < 0 {
			hi += 10
			carryOut = false
		}
		result = uint8(hi)<<4 | uint8(lo)
		c.setFlag(flagC, carryOut)
	} else {
		inv := ^val
		sum := uint16(c.a) + uint16(inv) + uint16(c.carry())
		result = uint8(sum)
		c.setFlag(flagC, sum > 0xff)
		c.setFlag(flagV, isSameSign(c.a, inv) && !isSameSign(c.a, result))
	}

	c.setFlagsZN(result)
	c.a = result
	return 1
}

func (c *CPU) and(addr uint16) uint8 {
	c.a &= c.fetchData(addr)
	c.setFlagsZN(c.a)
	return 1
}

func (c *CPU) ora(addr uint16) uint8 {
	c.a |= c.fetchData(addr)
	c.setFlagsZN(c.a)
	return 1
}

func (c *CPU) eor(addr uint16) uint8 {
	c.a ^= c.fetchData(addr)
	c.setFlagsZN(c.a)
	return 1
}

// storeShift writes a shift or rotate result back to the accumulator or to
// memory, depending on where the operand came from. The memory write costs
// an extra cycle.
func (c *CPU) storeShift(addr uint16, result uint8) uint8 {
	if c.supplied {
		c.a = result
		return 1
	}
	c.write8(addr, result)
	return 2
}

func (c *CPU) asl(addr uint16) uint8 {
	val := c.fetchData(addr)
	result := val << 1

	c.setFlag(flagC, val&0x80 > 0)
	c.setFlagsZN(result)

	return c.storeShift(addr, result)
}

func (c *CPU) lsr(addr uint16) uint8 {
	val := c.fetchData(addr)
	result := val >> 1

	c.setFlag(flagC, val&0x01 > 0)
	c.setFlagsZN(result)

	return c.storeShift(addr, result)
}

func (c *CPU) rol(addr uint16) uint8 {
	val := c.fetchData(addr)
	result := val<<1 | c.carry()

	c.setFlag(flagC, val&0x80 > 0)
	c.setFlagsZN(result)

	return c.storeShift(addr, result)
}

func (c *CPU) ror(addr uint16) uint8 {
	val := c.fetchData(addr)
	result := val>>1 | c.carry()<<7

	c.setFlag(flagC, val&0x01 > 0)
	c.setFlagsZN(result)

	return c.storeShift(addr, result)
}

func (c *CPU) bit(addr uint16) uint8 {
	val := c.fetchData(addr)

	c.setFlag(flagZ, c.a&val == 0)
	c.setFlag(flagV, val&0x40 > 0)
	c.setFlag(flagN, val&0x80 > 0)
	return 1
}

func (c *CPU) compare(reg uint8, addr uint16) uint8 {
	val := c.fetchData(addr)
	result := reg - val

	c.setFlag(flagC, reg >= val)
	c.setFlagsZN(result)
	return 1
}

func (c *CPU) dec(addr uint16) uint8 {
	val := c.fetchData(addr) - 1
	c.write8(addr, val)
	c.setFlagsZN(val)
	return 3
}

func (c *CPU) inc(addr uint16) uint8 {
	val := c.fetchData(addr) + 1
	c.write8(addr, val)
	c.setFlagsZN(val)
	return 3
}

func (c *CPU) jsr(addr uint16) uint8 {
	c.pc--
	c.stackPush16(c.pc)
	c.pc = addr
	return 3
}

func (c *CPU) brk() uint8 {
	c.pc++
	c.stackPush16(c.pc)
	c.stackPush8(c.p)
	c.setFlag(flagB, true)
	c.pc = c.read16(vecIRQ)
	return 6
}

func (c *CPU) rti() uint8 {
	c.p = c.stackPop8()
	c.setFlag(flagU, true)
	c.pc = c.stackPop16()
	return 5
}
