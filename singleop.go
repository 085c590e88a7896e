package main

// newSingleOperand returns the single operand instructions, opcode in bits
// 15 and 11-6 and the operand in bits 5-0. Bit 15 selects the byte form of
// CLR through ASL.
func newSingleOperand() *family {
	ops := []opcode{
		{0177700, 0000100, "JMP", DD, (*KB11).JMP},
		{0177700, 0000300, "SWAB", DD, (*KB11).SWAB},
		{0177700, 0006500, "MFPI", DD, (*KB11).MFPI},
		{0177700, 0006600, "MTPI", DD, (*KB11).MTPI},
		{0177700, 0006700, "SXT", DD, (*KB11).SXT},
		{0177700, 0106500, "MFPD", DD, (*KB11).MFPI},
		{0177700, 0106600, "MTPD", DD, (*KB11).MTPI},
	}
	ops = append(ops, bw(0177700, 0005000, "CLR", DD, (*KB11).CLR)...)
	ops = append(ops, bw(0177700, 0005100, "COM", DD, (*KB11).COM)...)
	ops = append(ops, bw(0177700, 0005200, "INC", DD, (*KB11).INC)...)
	ops = append(ops, bw(0177700, 0005300, "DEC", DD, (*KB11).DEC)...)
	ops = append(ops, bw(0177700, 0005400, "NEG", DD, (*KB11).NEG)...)
	ops = append(ops, bw(0177700, 0005500, "ADC", DD, (*KB11).ADC)...)
	ops = append(ops, bw(0177700, 0005600, "SBC", DD, (*KB11).SBC)...)
	ops = append(ops, bw(0177700, 0005700, "TST", DD, (*KB11).TST)...)
	ops = append(ops, bw(0177700, 0006000, "ROR", DD, (*KB11).ROR)...)
	ops = append(ops, bw(0177700, 0006100, "ROL", DD, (*KB11).ROL)...)
	ops = append(ops, bw(0177700, 0006200, "ASR", DD, (*KB11).ASR)...)
	ops = append(ops, bw(0177700, 0006300, "ASL", DD, (*KB11).ASL)...)
	return newFamily("single operand", ops)
}

// JMP 0001DD
func (kb *KB11) JMP(instr uint16) {
	kb.R[PC] = kb.DA(instr)
}

// SWAB 0003DD
func (kb *KB11) SWAB(instr uint16) {
	op := kb.resolve(instr&077, 2)
	dst := op.val<<8 | op.val>>8
	kb.store(op, dst)
	kb.psw.setcc("**00", dst, 1, false, false)
}

// CLR 0050DD, CLRB 1050DD
func (kb *KB11) CLR(instr uint16) {
	l := length(instr)
	kb.store(kb.aget(instr&077, l), 0)
	kb.psw.setcc("0100", 0, l, false, false)
}

// COM 0051DD, COMB 1051DD
func (kb *KB11) COM(instr uint16) {
	l := length(instr)
	op := kb.resolve(instr&077, l)
	dst := ^op.val & mask(l)
	kb.store(op, dst)
	kb.psw.setcc("**01", dst, l, false, true)
}

// INC 0052DD, INCB 1052DD
func (kb *KB11) INC(instr uint16) {
	l := length(instr)
	op := kb.resolve(instr&077, l)
	dst := (op.val + 1) & mask(l)
	kb.store(op, dst)
	kb.psw.setcc("***-", dst, l, dst == msb(l), false)
}

// DEC 0053DD, DECB 1053DD
func (kb *KB11) DEC(instr uint16) {
	l := length(instr)
	op := kb.resolve(instr&077, l)
	dst := (op.val - 1) & mask(l)
	kb.store(op, dst)
	kb.psw.setcc("***-", dst, l, op.val == msb(l), false)
}

// NEG 0054DD, NEGB 1054DD
func (kb *KB11) NEG(instr uint16) {
	l := length(instr)
	op := kb.resolve(instr&077, l)
	dst := -op.val & mask(l)
	kb.store(op, dst)
	kb.psw.setcc("****", dst, l, dst == msb(l), dst != 0)
}

// ADC 0055DD, ADCB 1055DD
func (kb *KB11) ADC(instr uint16) {
	l := length(instr)
	op := kb.resolve(instr&077, l)
	c := kb.c()
	dst := op.val
	if c {
		dst = (dst + 1) & mask(l)
	}
	kb.store(op, dst)
	kb.psw.setcc("****", dst, l, c && op.val == msb(l)-1, c && op.val == mask(l))
}

// SBC 0056DD, SBCB 1056DD
func (kb *KB11) SBC(instr uint16) {
	l := length(instr)
	op := kb.resolve(instr&077, l)
	c := kb.c()
	dst := op.val
	if c {
		dst = (dst - 1) & mask(l)
	}
	kb.store(op, dst)
	kb.psw.setcc("****", dst, l, op.val == msb(l), c && op.val == 0)
}

// TST 0057DD, TSTB 1057DD
func (kb *KB11) TST(instr uint16) {
	l := length(instr)
	op := kb.resolve(instr&077, l)
	kb.psw.setcc("**00", op.val, l, false, false)
}

// shifted stores the result of a shift or rotate; V is N xor C after
// the shift.
func (kb *KB11) shifted(op operand, dst uint16, c bool) {
	dst &= mask(op.l)
	kb.store(op, dst)
	n := dst&msb(op.l) != 0
	kb.psw.setcc("****", dst, op.l, n != c, c)
}

// ROR 0060DD, RORB 1060DD
func (kb *KB11) ROR(instr uint16) {
	l := length(instr)
	op := kb.resolve(instr&077, l)
	dst := op.val >> 1
	if kb.c() {
		dst |= msb(l)
	}
	kb.shifted(op, dst, op.val&1 != 0)
}

// ROL 0061DD, ROLB 1061DD
func (kb *KB11) ROL(instr uint16) {
	l := length(instr)
	op := kb.resolve(instr&077, l)
	dst := op.val << 1
	if kb.c() {
		dst |= 1
	}
	kb.shifted(op, dst, op.val&msb(l) != 0)
}

// ASR 0062DD, ASRB 1062DD
func (kb *KB11) ASR(instr uint16) {
	l := length(instr)
	op := kb.resolve(instr&077, l)
	dst := op.val>>1 | op.val&msb(l)
	kb.shifted(op, dst, op.val&1 != 0)
}

// ASL 0063DD, ASLB 1063DD
func (kb *KB11) ASL(instr uint16) {
	l := length(instr)
	op := kb.resolve(instr&077, l)
	kb.shifted(op, op.val<<1, op.val&msb(l) != 0)
}

// SXT 0067DD
func (kb *KB11) SXT(instr uint16) {
	var dst uint16
	if kb.n() {
		dst = 0177777
	}
	kb.store(kb.aget(instr&077, 2), dst)
	kb.psw.setcc("-*0-", dst, 2, false, false)
}

// MFPI 0065SS, MFPD 1065SS push a word from the previous address space.
// Without memory management there is one space, shared by all modes.
func (kb *KB11) MFPI(instr uint16) {
	val := kb.resolve(instr&077, 2).val
	kb.push(val)
	kb.psw.setcc("**0-", val, 2, false, false)
}

// MTPI 0066DD, MTPD 1066DD pop a word into the previous address space.
func (kb *KB11) MTPI(instr uint16) {
	val := kb.pop()
	kb.store(kb.aget(instr&077, 2), val)
	kb.psw.setcc("**0-", val, 2, false, false)
}
