// Package memory defines the bus capability the 6502 core consumes and
// a flat 64KiB implementation of it.
package memory

import (
	"fmt"
	"math/rand"
	"time"
)

// Bus is the capability the CPU core consumes for all memory traffic:
// operand fetches, effective-address reads, dummy reads, stack
// pushes/pops, and vector reads. The core never touches storage directly.
type Bus interface {
	// Read returns the byte stored at addr.
	Read(addr uint16) uint8
	// Write updates addr with val.
	Write(addr uint16, val uint8)
}

// FlatRAM implements Bus as a single unbanked 64KiB address space.
type FlatRAM struct {
	mem [1 << 16]uint8
}

// NewFlatRAM returns a FlatRAM with all locations zeroed.
func NewFlatRAM() *FlatRAM {
	return &FlatRAM{}
}

// Read implements Bus.
func (r *FlatRAM) Read(addr uint16) uint8 {
	return r.mem[addr]
}

// Write implements Bus.
func (r *FlatRAM) Write(addr uint16, val uint8) {
	r.mem[addr] = val
}

// PowerOn randomizes every location, emulating undefined RAM contents at
// power-on. Call before Load so vectors/program bytes overwrite the noise.
func (r *FlatRAM) PowerOn() {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range r.mem {
		r.mem[i] = uint8(rnd.Intn(256))
	}
}

// Load copies data into the address space starting at offset. It is the
// "raw 64KiB image" loader named in the binary input format: no header,
// no framing, just bytes placed directly into memory.
func (r *FlatRAM) Load(offset uint16, data []uint8) error {
	if int(offset)+len(data) > len(r.mem) {
		return fmt.Errorf("memory: load of %d bytes at offset 0x%.4X overruns 64KiB", len(data), offset)
	}
	copy(r.mem[offset:], data)
	return nil
}

// SetVector writes a little-endian 16 bit vector at addr (used for the
// RESET/NMI/IRQ vectors at 0xFFFC, 0xFFFA, 0xFFFE).
func (r *FlatRAM) SetVector(addr uint16, val uint16) {
	r.mem[addr] = uint8(val & 0xFF)
	r.mem[addr+1] = uint8(val >> 8)
}
