package mos

import "log"

// resolve decodes the operand for one addressing mode. It advances PC past
// the operand bytes and returns the effective address together with the
// addressing cost in cycles. ACC and IMP prime the supplied-value latch
// instead of producing an address; REL returns the sign-extended offset.
func (c *CPU) resolve(mode AddrMode) (uint16, uint8) {
	c.supplied = false
	c.suppliedData = 0

	switch mode {
	case ModeABS:
		addr := c.read16(c.pc)
		c.pc += 2
		return addr, 3

	case ModeABX:
		base := c.read16(c.pc)
		c.pc += 2
		addr := base + uint16(c.x)
		if isDiffPage(addr, base) {
			return addr, 4
		}
		return addr, 3

	case ModeABY:
		base := c.read16(c.pc)
		c.pc += 2
		addr := base + uint16(c.y)
		if isDiffPage(addr, base) {
			return addr, 4
		}
		return addr, 3

	case ModeACC:
		c.supplied = true
		c.suppliedData = c.a
		return 0, 1

	case ModeIMM:
		addr := c.pc
		c.pc++
		return addr, 1

	case ModeIMP:
		c.supplied = true
		c.suppliedData = c.a
		return 0, 1

	case ModeIND:
		ptr := c.read16(c.pc)
		c.pc += 2

		lo := c.read8(ptr)
		var hi uint8
		// The NMOS 6502 never carries into the pointer's high byte,
		// so a pointer at $xxFF wraps within its page.
		if ptr&0x00ff == 0x00ff {
			hi = c.read8(ptr & 0xff00)
		} else {
			hi = c.read8(ptr + 1)
		}
		return uint16(lo) | uint16(hi)<<8, 4

	case ModeINX:
		zp := c.read8(c.pc) + c.x
		c.pc++

		lo := c.read8(uint16(zp))
		hi := c.read8(uint16(zp + 1))
		return uint16(lo) | uint16(hi)<<8, 5

	case ModeINY:
		zp := c.read8(c.pc)
		c.pc++

		lo := c.read8(uint16(zp))
		hi := c.read8(uint16(zp + 1))
		base := uint16(lo) | uint16(hi)<<8
		addr := base + uint16(c.y)
		if isDiffPage(addr, base) {
			return addr, 5
		}
		return addr, 4

	case ModeREL:
		off := uint16(c.read8(c.pc))
		c.pc++
		if off&0x80 > 0 {
			off |= 0xff00
		}
		return off, 1

	case ModeZPG:
		addr := uint16(c.read8(c.pc))
		c.pc++
		return addr, 2

	case ModeZPX:
		addr := uint16(c.read8(c.pc) + c.x)
		c.pc++
		return addr, 3

	case ModeZPY:
		addr := uint16(c.read8(c.pc) + c.y)
		c.pc++
		return addr, 3
	}

	log.Printf("cpu: illegal addressing mode %s at $%04X", mode, c.pc)
	return 0, 0
}

// fetchData reads the operand value: the latched register for ACC/IMP, the
// addressed byte otherwise.
func (c *CPU) fetchData(addr uint16) uint8 {
	if c.supplied {
		return c.suppliedData
	}
	return c.read8(addr)
}
