package main

// newSSDD returns the double operand instructions, opcode in bits 15-12,
// source in bits 11-6 and destination in bits 5-0. MOV, CMP, BIT, BIC and
// BIS have byte forms with bit 15 set; ADD and SUB do not.
func newSSDD() *family {
	var ops []opcode
	ops = append(ops, bw(0170000, 0010000, "MOV", S|DD, (*KB11).MOV)...)
	ops = append(ops, bw(0170000, 0020000, "CMP", S|DD, (*KB11).CMP)...)
	ops = append(ops, bw(0170000, 0030000, "BIT", S|DD, (*KB11).BIT)...)
	ops = append(ops, bw(0170000, 0040000, "BIC", S|DD, (*KB11).BIC)...)
	ops = append(ops, bw(0170000, 0050000, "BIS", S|DD, (*KB11).BIS)...)
	ops = append(ops,
		opcode{0170000, 0060000, "ADD", S | DD, (*KB11).ADD},
		opcode{0170000, 0160000, "SUB", S | DD, (*KB11).SUB},
	)
	return newFamily("double operand", ops)
}

// MOV 01SSDD, MOVB 11SSDD. MOVB to a register sign extends.
func (kb *KB11) MOV(instr uint16) {
	l := length(instr)
	src := kb.resolve((instr>>6)&077, l).val
	dst := kb.aget(instr&077, l)
	if l == 1 && dst.isReg() {
		kb.R[dst.reg] = sext8(src)
	} else {
		kb.store(dst, src)
	}
	kb.psw.setcc("**0-", src, l, false, false)
}

// CMP 02SSDD, CMPB 12SSDD sets the condition codes from src - dst.
func (kb *KB11) CMP(instr uint16) {
	l := length(instr)
	src := kb.resolve((instr>>6)&077, l).val
	dst := kb.resolve(instr&077, l).val
	res := (src - dst) & mask(l)
	v := (src^dst)&msb(l) != 0 && (dst^res)&msb(l) == 0
	kb.psw.setcc("****", res, l, v, src < dst)
}

// BIT 03SSDD, BITB 13SSDD
func (kb *KB11) BIT(instr uint16) {
	l := length(instr)
	src := kb.resolve((instr>>6)&077, l).val
	dst := kb.resolve(instr&077, l).val
	kb.psw.setcc("**0-", src&dst, l, false, false)
}

// BIC 04SSDD, BICB 14SSDD
func (kb *KB11) BIC(instr uint16) {
	l := length(instr)
	src := kb.resolve((instr>>6)&077, l).val
	op := kb.resolve(instr&077, l)
	dst := op.val &^ src
	kb.store(op, dst)
	kb.psw.setcc("**0-", dst, l, false, false)
}

// BIS 05SSDD, BISB 15SSDD
func (kb *KB11) BIS(instr uint16) {
	l := length(instr)
	src := kb.resolve((instr>>6)&077, l).val
	op := kb.resolve(instr&077, l)
	dst := op.val | src
	kb.store(op, dst)
	kb.psw.setcc("**0-", dst, l, false, false)
}

// ADD 06SSDD
func (kb *KB11) ADD(instr uint16) {
	src := kb.resolve((instr>>6)&077, 2).val
	op := kb.resolve(instr&077, 2)
	sum := src + op.val
	kb.store(op, sum)
	v := (src^op.val)&0x8000 == 0 && (src^sum)&0x8000 != 0
	kb.psw.setcc("****", sum, 2, v, uint32(src)+uint32(op.val) > 0xffff)
}

// SUB 16SSDD stores dst - src.
func (kb *KB11) SUB(instr uint16) {
	src := kb.resolve((instr>>6)&077, 2).val
	op := kb.resolve(instr&077, 2)
	res := op.val - src
	kb.store(op, res)
	v := (src^op.val)&0x8000 != 0 && (src^res)&0x8000 == 0
	kb.psw.setcc("****", res, 2, v, src > op.val)
}
