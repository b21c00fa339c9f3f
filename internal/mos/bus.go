package mos

import "log"

// ReadWriter is the device surface the bus routes to and the CPU talks to.
type ReadWriter interface {
	Read8(addr uint16) uint8
	Read16(addr uint16) uint16
	Write8(addr uint16, data uint8)
	Write16(addr uint16, data uint16)
	WriteBytes(offset uint16, data []uint8)
}

// Bus forwards every access to the mounted device. With nothing mounted it
// logs the access, reads as zero and drops writes.
type Bus struct {
	mem ReadWriter
}

func NewBus(mem ReadWriter) *Bus {
	return &Bus{
		mem: mem,
	}
}

// Mount replaces the attached device.
func (b *Bus) Mount(mem ReadWriter) {
	b.mem = mem
}

func (b *Bus) Read8(addr uint16) uint8 {
	if b.mem == nil {
		log.Printf("bus: read8 $%04X with no device mounted", addr)
		return 0
	}
	return b.mem.Read8(addr)
}

func (b *Bus) Read16(addr uint16) uint16 {
	if b.mem == nil {
		log.Printf("bus: read16 $%04X with no device mounted", addr)
		return 0
	}
	return b.mem.Read16(addr)
}

func (b *Bus) Write8(addr uint16, data uint8) {
	if b.mem == nil {
		log.Printf("bus: write8 $%04X with no device mounted", addr)
		return
	}
	b.mem.Write8(addr, data)
}

func (b *Bus) Write16(addr uint16, data uint16) {
	if b.mem == nil {
		log.Printf("bus: write16 $%04X with no device mounted", addr)
		return
	}
	b.mem.Write16(addr, data)
}

func (b *Bus) WriteBytes(offset uint16, data []uint8) {
	if b.mem == nil {
		log.Printf("bus: write of %d bytes at $%04X with no device mounted", len(data), offset)
		return
	}
	b.mem.WriteBytes(offset, data)
}
