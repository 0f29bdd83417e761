package cpu

// execFunc implements one mnemonic. It returns any extra cycles beyond
// the opcode's base cost (branch-taken, page-cross is handled by Step)
// and an error for the few instructions that can fail (decimal mode).
type execFunc func(c *Cpu) (byte, error)

func adc(c *Cpu) (byte, error) {
	if c.Flags.Decimal {
		return 0, ErrDecimalModeUnsupported
	}
	m := c.operand()
	carry := byte(0)
	if c.Flags.Carry {
		carry = 1
	}
	sum := uint16(c.A) + uint16(m) + uint16(carry)
	result := byte(sum)

	c.Flags.Carry = sum > 0xFF
	c.Flags.Overflow = (c.A^m)&0x80 == 0 && (c.A^result)&0x80 != 0
	c.A = result
	c.setZN(c.A)
	return 0, nil
}

func sbc(c *Cpu) (byte, error) {
	if c.Flags.Decimal {
		return 0, ErrDecimalModeUnsupported
	}
	m := c.operand()
	borrow := byte(1)
	if c.Flags.Carry {
		borrow = 0
	}
	diff := int16(c.A) - int16(m) - int16(borrow)
	result := byte(diff)

	c.Flags.Carry = diff >= 0
	c.Flags.Overflow = (c.A^m)&0x80 != 0 && (c.A^result)&0x80 != 0
	c.A = result
	c.setZN(c.A)
	return 0, nil
}

func and(c *Cpu) (byte, error) {
	c.A &= c.operand()
	c.setZN(c.A)
	return 0, nil
}

func asl(c *Cpu) (byte, error) {
	v := c.operand()
	c.Flags.Carry = v&0x80 != 0
	v <<= 1
	c.storeOperand(v)
	c.setZN(v)
	return 0, nil
}

func branchIf(c *Cpu, cond bool) (byte, error) {
	if !cond {
		return 0, nil
	}
	extra := byte(1)
	if c.crossed {
		extra++
	}
	c.PC = c.addr
	return extra, nil
}

func bcc(c *Cpu) (byte, error) { return branchIf(c, !c.Flags.Carry) }
func bcs(c *Cpu) (byte, error) { return branchIf(c, c.Flags.Carry) }
func beq(c *Cpu) (byte, error) { return branchIf(c, c.Flags.Zero) }
func bmi(c *Cpu) (byte, error) { return branchIf(c, c.Flags.Negative) }
func bne(c *Cpu) (byte, error) { return branchIf(c, !c.Flags.Zero) }
func bpl(c *Cpu) (byte, error) { return branchIf(c, !c.Flags.Negative) }
func bvc(c *Cpu) (byte, error) { return branchIf(c, !c.Flags.Overflow) }
func bvs(c *Cpu) (byte, error) { return branchIf(c, c.Flags.Overflow) }

func bit(c *Cpu) (byte, error) {
	v := c.operand()
	c.Flags.Zero = c.A&v == 0
	c.Flags.Negative = v&0x80 != 0
	c.Flags.Overflow = v&0x40 != 0
	return 0, nil
}

func brk(c *Cpu) (byte, error) {
	c.push16(c.PC)
	status := c.Flags
	status.Break = true
	c.push(status.Pack())
	c.Flags.DisableInterrupt = true
	c.PC = c.Mem.Read16(irqVector)
	return 0, nil
}

func clc(c *Cpu) (byte, error) { c.Flags.Carry = false; return 0, nil }
func cld(c *Cpu) (byte, error) { c.Flags.Decimal = false; return 0, nil }
func cli(c *Cpu) (byte, error) { c.Flags.DisableInterrupt = false; return 0, nil }
func clv(c *Cpu) (byte, error) { c.Flags.Overflow = false; return 0, nil }

func compare(c *Cpu, reg byte) (byte, error) {
	m := c.operand()
	result := reg - m
	c.Flags.Carry = reg >= m
	c.setZN(result)
	return 0, nil
}

func cmp(c *Cpu) (byte, error) { return compare(c, c.A) }
func cpx(c *Cpu) (byte, error) { return compare(c, c.X) }
func cpy(c *Cpu) (byte, error) { return compare(c, c.Y) }

func dec(c *Cpu) (byte, error) {
	v := c.operand() - 1
	c.storeOperand(v)
	c.setZN(v)
	return 0, nil
}

func dex(c *Cpu) (byte, error) { c.X--; c.setZN(c.X); return 0, nil }
func dey(c *Cpu) (byte, error) { c.Y--; c.setZN(c.Y); return 0, nil }

func eor(c *Cpu) (byte, error) {
	c.A ^= c.operand()
	c.setZN(c.A)
	return 0, nil
}

func inc(c *Cpu) (byte, error) {
	v := c.operand() + 1
	c.storeOperand(v)
	c.setZN(v)
	return 0, nil
}

func inx(c *Cpu) (byte, error) { c.X++; c.setZN(c.X); return 0, nil }
func iny(c *Cpu) (byte, error) { c.Y++; c.setZN(c.Y); return 0, nil }

func jmp(c *Cpu) (byte, error) {
	c.PC = c.addr
	return 0, nil
}

func jsr(c *Cpu) (byte, error) {
	c.push16(c.PC - 1)
	c.PC = c.addr
	return 0, nil
}

func lda(c *Cpu) (byte, error) { c.A = c.operand(); c.setZN(c.A); return 0, nil }
func ldx(c *Cpu) (byte, error) { c.X = c.operand(); c.setZN(c.X); return 0, nil }
func ldy(c *Cpu) (byte, error) { c.Y = c.operand(); c.setZN(c.Y); return 0, nil }

func lsr(c *Cpu) (byte, error) {
	v := c.operand()
	c.Flags.Carry = v&0x01 != 0
	v >>= 1
	c.storeOperand(v)
	c.setZN(v)
	return 0, nil
}

func nop(c *Cpu) (byte, error) { return 0, nil }

func ora(c *Cpu) (byte, error) {
	c.A |= c.operand()
	c.setZN(c.A)
	return 0, nil
}

func pha(c *Cpu) (byte, error) { c.push(c.A); return 0, nil }

func php(c *Cpu) (byte, error) {
	status := c.Flags
	status.Break = true
	c.push(status.Pack())
	return 0, nil
}

func pla(c *Cpu) (byte, error) { c.A = c.pop(); c.setZN(c.A); return 0, nil }

func plp(c *Cpu) (byte, error) {
	c.Flags = Unpack(c.pop())
	return 0, nil
}

func rol(c *Cpu) (byte, error) {
	v := c.operand()
	carryIn := byte(0)
	if c.Flags.Carry {
		carryIn = 1
	}
	c.Flags.Carry = v&0x80 != 0
	v = v<<1 | carryIn
	c.storeOperand(v)
	c.setZN(v)
	return 0, nil
}

func ror(c *Cpu) (byte, error) {
	v := c.operand()
	carryIn := byte(0)
	if c.Flags.Carry {
		carryIn = 0x80
	}
	c.Flags.Carry = v&0x01 != 0
	v = v>>1 | carryIn
	c.storeOperand(v)
	c.setZN(v)
	return 0, nil
}

func rti(c *Cpu) (byte, error) {
	c.Flags = Unpack(c.pop())
	c.PC = c.pop16()
	return 0, nil
}

func rts(c *Cpu) (byte, error) {
	c.PC = c.pop16() + 1
	return 0, nil
}

func sec(c *Cpu) (byte, error) { c.Flags.Carry = true; return 0, nil }
func sed(c *Cpu) (byte, error) { c.Flags.Decimal = true; return 0, nil }
func sei(c *Cpu) (byte, error) { c.Flags.DisableInterrupt = true; return 0, nil }

func sta(c *Cpu) (byte, error) { c.storeOperand(c.A); return 0, nil }
func stx(c *Cpu) (byte, error) { c.storeOperand(c.X); return 0, nil }
func sty(c *Cpu) (byte, error) { c.storeOperand(c.Y); return 0, nil }

func tax(c *Cpu) (byte, error) { c.X = c.A; c.setZN(c.X); return 0, nil }
func tay(c *Cpu) (byte, error) { c.Y = c.A; c.setZN(c.Y); return 0, nil }
func tsx(c *Cpu) (byte, error) { c.X = c.SP; c.setZN(c.X); return 0, nil }
func txa(c *Cpu) (byte, error) { c.A = c.X; c.setZN(c.A); return 0, nil }
func txs(c *Cpu) (byte, error) { c.SP = c.X; return 0, nil }
func tya(c *Cpu) (byte, error) { c.A = c.Y; c.setZN(c.A); return 0, nil }
