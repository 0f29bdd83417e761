// Package cpu implements the 6502-class processor core: registers, the
// full legal 151-opcode/56-mnemonic instruction set, cycle-accurate
// addressing-mode resolution, and the reset/IRQ/NMI vector machinery.
//
// Decimal mode is explicitly unsupported: ADC/SBC assert the decimal flag
// is clear and return an error rather than attempt BCD arithmetic.
package cpu

import (
	"errors"
	"fmt"

	"beebgo/internal/memory"
)

// ErrDecimalModeUnsupported is returned by ADC/SBC when the decimal flag
// is set. The original hardware's BCD arithmetic is out of scope; Go
// convention is to surface this as an error rather than panic, unlike the
// assert!() the reference implementation uses.
var ErrDecimalModeUnsupported = errors.New("cpu: decimal mode not supported")

// Flags holds the 6502 processor status bits.
type Flags struct {
	Negative         bool
	Overflow         bool
	Break            bool
	Decimal          bool
	DisableInterrupt bool
	Zero             bool
	Carry            bool
}

// Pack encodes the flags into the traditional status byte layout. Bit 5
// ("Unused") is always forced to 1, matching the real 6502 and the
// reference implementation's StatusFlags::into<u8>.
func (f Flags) Pack() byte {
	var b byte
	if f.Negative {
		b |= 1 << 7
	}
	if f.Overflow {
		b |= 1 << 6
	}
	b |= 1 << 5
	if f.Break {
		b |= 1 << 4
	}
	if f.Decimal {
		b |= 1 << 3
	}
	if f.DisableInterrupt {
		b |= 1 << 2
	}
	if f.Zero {
		b |= 1 << 1
	}
	if f.Carry {
		b |= 1 << 0
	}
	return b
}

// Unpack decodes a status byte into Flags.
func Unpack(b byte) Flags {
	return Flags{
		Negative:         b&(1<<7) != 0,
		Overflow:         b&(1<<6) != 0,
		Break:            b&(1<<4) != 0,
		Decimal:          b&(1<<3) != 0,
		DisableInterrupt: b&(1<<2) != 0,
		Zero:             b&(1<<1) != 0,
		Carry:            b&(1<<0) != 0,
	}
}

const (
	resetVector = 0xFFFC
	nmiVector   = 0xFFFA
	irqVector   = 0xFFFE

	stackBase = 0x0100
)

// Cpu is the processor core. It holds no cycle counter of its own: Step
// returns the cycle cost of the instruction it executed and leaves pacing
// to the caller.
type Cpu struct {
	Mem *memory.Map

	A, X, Y byte
	SP      byte
	PC      uint16
	Flags   Flags

	mode    Mode
	addr    uint16
	val     byte
	crossed bool
}

// New returns a Cpu wired to mem. Initialize must be called before Step.
func New(mem *memory.Map) *Cpu {
	return &Cpu{Mem: mem}
}

// Initialize zeroes the small low-memory scratch region and loads PC
// from the reset vector. SP and Flags are left at their zero values, as
// in the reference implementation's Cpu::initialize: it leaves
// Registers::new()'s defaults (sp=0, status flags clear) untouched and
// zeroes only 0xfe..0xff.
func (c *Cpu) Initialize() {
	c.Mem.Write(0xFE, 0)
	c.Mem.Write(0xFF, 0)
	c.PC = c.Mem.Read16(resetVector)
}

func (c *Cpu) push(v byte) {
	c.Mem.Write(stackBase+uint16(c.SP), v)
	c.SP--
}

func (c *Cpu) pop() byte {
	c.SP++
	return c.Mem.Read(stackBase + uint16(c.SP))
}

func (c *Cpu) push16(v uint16) {
	c.push(byte(v >> 8))
	c.push(byte(v))
}

func (c *Cpu) pop16() uint16 {
	lo := c.pop()
	hi := c.pop()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *Cpu) setZN(v byte) {
	c.Flags.Zero = v == 0
	c.Flags.Negative = v&0x80 != 0
}

// operand returns the byte the current instruction operates on, resolving
// Accumulator and Immediate modes without touching memory.
func (c *Cpu) operand() byte {
	switch c.mode {
	case Accumulator:
		return c.A
	case Immediate:
		return c.val
	default:
		return c.Mem.Read(c.addr)
	}
}

// storeOperand writes v back to wherever operand() read from.
func (c *Cpu) storeOperand(v byte) {
	if c.mode == Accumulator {
		c.A = v
		return
	}
	c.Mem.Write(c.addr, v)
}

// Step fetches, decodes and executes one instruction, returning the
// number of cycles it consumed. An illegal opcode byte is an error; a
// decimal-mode ADC/SBC is an error.
func (c *Cpu) Step() (int, error) {
	opcode := c.Mem.Read(c.PC)
	info := opcodeTable[opcode]
	if info.exec == nil {
		return 0, fmt.Errorf("cpu: illegal opcode %#02x at %#04x", opcode, c.PC)
	}
	c.PC++

	c.mode = info.mode
	c.crossed = c.decodeOperand(info.mode)

	extra, err := info.exec(c)
	if err != nil {
		return 0, err
	}

	cycles := int(info.cycles) + int(extra)
	if c.crossed && info.pageBonus {
		cycles++
	}
	return cycles, nil
}

// InterruptRequest services a maskable interrupt if the interrupt-disable
// flag is clear, pushing PC and status (with Break clear) and vectoring
// through irqVector. It reports whether the interrupt was actually
// serviced.
func (c *Cpu) InterruptRequest() bool {
	if c.Flags.DisableInterrupt {
		return false
	}
	c.push16(c.PC)
	status := c.Flags
	status.Break = false
	c.push(status.Pack())
	c.Flags.DisableInterrupt = true
	c.PC = c.Mem.Read16(irqVector)
	return true
}

// NonMaskableInterrupt services an NMI unconditionally. Unlike IRQ it does
// not set DisableInterrupt, matching the reference implementation.
func (c *Cpu) NonMaskableInterrupt() {
	c.push16(c.PC)
	status := c.Flags
	status.Break = false
	c.push(status.Pack())
	c.PC = c.Mem.Read16(nmiVector)
}
