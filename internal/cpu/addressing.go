package cpu

// Mode identifies one of the 6502's 13 addressing modes.
type Mode int

const (
	Implied Mode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX
	IndirectY
	Relative
)

func (m Mode) String() string {
	switch m {
	case Implied:
		return "Implied"
	case Accumulator:
		return "Accumulator"
	case Immediate:
		return "Immediate"
	case ZeroPage:
		return "ZeroPage"
	case ZeroPageX:
		return "ZeroPageX"
	case ZeroPageY:
		return "ZeroPageY"
	case Absolute:
		return "Absolute"
	case AbsoluteX:
		return "AbsoluteX"
	case AbsoluteY:
		return "AbsoluteY"
	case Indirect:
		return "Indirect"
	case IndirectX:
		return "IndirectX"
	case IndirectY:
		return "IndirectY"
	case Relative:
		return "Relative"
	default:
		return "Unknown"
	}
}

func pageDiffers(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// decodeOperand resolves the operand for mode, advancing PC past any
// operand bytes and populating c.addr/c.val. It reports whether the
// effective address crossed a page boundary from its base address
// (relevant to AbsoluteX, AbsoluteY and IndirectY's extra-cycle rule).
func (c *Cpu) decodeOperand(mode Mode) bool {
	switch mode {
	case Implied, Accumulator:
		return false

	case Immediate:
		c.val = c.Mem.Read(c.PC)
		c.PC++
		return false

	case ZeroPage:
		c.addr = uint16(c.Mem.Read(c.PC))
		c.PC++
		return false

	case ZeroPageX:
		base := c.Mem.Read(c.PC)
		c.PC++
		c.addr = uint16(base + c.X)
		return false

	case ZeroPageY:
		base := c.Mem.Read(c.PC)
		c.PC++
		c.addr = uint16(base + c.Y)
		return false

	case Absolute:
		lo := c.Mem.Read(c.PC)
		c.PC++
		hi := c.Mem.Read(c.PC)
		c.PC++
		c.addr = uint16(hi)<<8 | uint16(lo)
		return false

	case AbsoluteX:
		lo := c.Mem.Read(c.PC)
		c.PC++
		hi := c.Mem.Read(c.PC)
		c.PC++
		base := uint16(hi)<<8 | uint16(lo)
		c.addr = base + uint16(c.X)
		return pageDiffers(base, c.addr)

	case AbsoluteY:
		lo := c.Mem.Read(c.PC)
		c.PC++
		hi := c.Mem.Read(c.PC)
		c.PC++
		base := uint16(hi)<<8 | uint16(lo)
		c.addr = base + uint16(c.Y)
		return pageDiffers(base, c.addr)

	case Indirect:
		lo := c.Mem.Read(c.PC)
		c.PC++
		hi := c.Mem.Read(c.PC)
		c.PC++
		ptr := uint16(hi)<<8 | uint16(lo)
		// The real 6502's page-wrap bug on JMP (indirect) is deliberately
		// not reproduced here; ptr+1 always crosses correctly.
		rlo := c.Mem.Read(ptr)
		rhi := c.Mem.Read(ptr + 1)
		c.addr = uint16(rhi)<<8 | uint16(rlo)
		return false

	case IndirectX:
		zp := c.Mem.Read(c.PC) + c.X
		c.PC++
		lo := c.Mem.Read(uint16(zp))
		hi := c.Mem.Read(uint16(zp + 1))
		c.addr = uint16(hi)<<8 | uint16(lo)
		return false

	case IndirectY:
		zp := c.Mem.Read(c.PC)
		c.PC++
		lo := c.Mem.Read(uint16(zp))
		hi := c.Mem.Read(uint16(zp + 1))
		base := uint16(hi)<<8 | uint16(lo)
		c.addr = base + uint16(c.Y)
		return pageDiffers(base, c.addr)

	case Relative:
		offset := int8(c.Mem.Read(c.PC))
		c.PC++
		c.addr = uint16(int32(c.PC) + int32(offset))
		return pageDiffers(c.PC, c.addr)

	default:
		return false
	}
}
