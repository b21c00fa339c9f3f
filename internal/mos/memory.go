package mos

import (
	"fmt"
	"io"
)

const memSizeBytes = 0x10000

// Memory is the flat 64 KiB address space. Words are little-endian.
type Memory struct {
	mem [memSizeBytes]uint8
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Read8(addr uint16) uint8 {
	return m.mem[addr]
}

// Read16 reads a little-endian word. The address bus is 16 bits wide, so the
// high byte of Read16(0xFFFF) comes from 0x0000.
func (m *Memory) Read16(addr uint16) uint16 {
	return uint16(m.Read8(addr)) | uint16(m.Read8(addr+1))<<8
}

func (m *Memory) Write8(addr uint16, data uint8) {
	m.mem[addr] = data
}

func (m *Memory) Write16(addr uint16, data uint16) {
	m.Write8(addr, uint8(data&0xff))
	m.Write8(addr+1, uint8(data>>8))
}

// WriteBytes copies data into memory starting at offset. The copy is clamped
// at the top of memory and never wraps around.
func (m *Memory) WriteBytes(offset uint16, data []uint8) {
	copy(m.mem[offset:], data)
}

const dumpBytesPerLine = 16

// DumpPages writes a hex dump of the inclusive page range [start, end] to w.
func (m *Memory) DumpPages(w io.Writer, start, end uint8) {
	for page := int(start); page <= int(end); page++ {
		base := uint16(page) << 8
		for off := 0; off < 0x100; off += dumpBytesPerLine {
			addr := base + uint16(off)
			fmt.Fprintf(w, "[$%04X-$%04X]", addr, addr+dumpBytesPerLine-1)
			for i := uint16(0); i < dumpBytesPerLine; i++ {
				fmt.Fprintf(w, " %02X", m.Read8(addr+i))
			}
			fmt.Fprintln(w)
		}
	}
}
