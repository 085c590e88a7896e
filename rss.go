package main

// newRSS returns the register-source instructions, 07RSS: a register in
// bits 8-6 and an operand in bits 5-0.
func newRSS() *family {
	return newFamily("register source", []opcode{
		{0177000, 0070000, "MUL", SR, (*KB11).MUL},
		{0177000, 0071000, "DIV", SR, (*KB11).DIV},
		{0177000, 0072000, "ASH", SR, (*KB11).ASH},
		{0177000, 0073000, "ASHC", SR, (*KB11).ASHC},
		{0177000, 0074000, "XOR", RR | DD, (*KB11).XOR},
		{0177000, 0077000, "SOB", RR | O, (*KB11).SOB},
	})
}

// MUL 070RSS stores the 32 bit product in R and R+1, high word first.
// With an odd R only the low word is kept.
func (kb *KB11) MUL(instr uint16) {
	r := (instr >> 6) & 7
	src := kb.resolve(instr&077, 2).val
	p := int64(toSigned(kb.R[r])) * int64(toSigned(src))
	l := toUnsigned32(p)
	if r&1 == 0 {
		kb.R[r] = uint16(l >> 16)
		kb.R[r|1] = uint16(l)
	} else {
		kb.R[r] = uint16(l)
	}
	kb.psw.SetN(p < 0)
	kb.psw.SetZ(p == 0)
	kb.psw.SetV(false)
	kb.psw.SetC(p < -0100000 || p > 077777)
}

// DIV 071RSS divides the 32 bit value in R and R+1 by the source, leaving
// the quotient in R and the remainder, with the sign of the dividend, in
// R+1. Division by zero and a quotient too large for a word set V and
// leave the registers alone.
func (kb *KB11) DIV(instr uint16) {
	r := (instr >> 6) & 7
	src := kb.resolve(instr&077, 2).val
	if src == 0 {
		kb.psw.setcc("0111", 0, 2, false, false)
		return
	}
	dividend := toSigned32(long(kb.R[r], kb.R[r|1]))
	divisor := int64(toSigned(src))
	q, rem := dividend/divisor, dividend%divisor
	if q < -0100000 || q > 077777 {
		kb.psw.setcc("--10", 0, 2, false, false)
		return
	}
	kb.R[r] = toUnsigned(int(q))
	kb.R[r|1] = toUnsigned(int(rem))
	kb.psw.setcc("**00", kb.R[r], 2, false, false)
}

// shiftcount returns the signed 6 bit shift count in the low bits of v.
func shiftcount(v uint16) int {
	return int(int16(v<<10) >> 10)
}

// ASH 072RSS shifts R left by a positive count or right by a negative one.
func (kb *KB11) ASH(instr uint16) {
	r := (instr >> 6) & 7
	sh := shiftcount(kb.resolve(instr&077, 2).val)
	old := int64(toSigned(kb.R[r]))
	dst, v, c := kb.R[r], false, false
	switch {
	case sh > 0:
		x := old << uint(sh)
		dst = uint16(x)
		c = (x>>16)&1 != 0
		v = x != int64(int16(dst))
	case sh < 0:
		dst = uint16(old >> uint(-sh))
		c = (old>>uint(-sh-1))&1 != 0
	}
	kb.R[r] = dst
	kb.psw.setcc("****", dst, 2, v, c)
}

// ASHC 073RSS shifts the 32 bit value in R and R+1 as ASH does.
func (kb *KB11) ASHC(instr uint16) {
	r := (instr >> 6) & 7
	sh := shiftcount(kb.resolve(instr&077, 2).val)
	old := toSigned32(long(kb.R[r], kb.R[r|1]))
	dst, v, c := toUnsigned32(old), false, false
	switch {
	case sh > 0:
		x := old << uint(sh)
		dst = toUnsigned32(x)
		c = (x>>32)&1 != 0
		v = x != toSigned32(dst)
	case sh < 0:
		dst = toUnsigned32(old >> uint(-sh))
		c = (old>>uint(-sh-1))&1 != 0
	}
	kb.R[r] = uint16(dst >> 16)
	kb.R[r|1] = uint16(dst)
	kb.psw.SetN(dst&0x80000000 != 0)
	kb.psw.SetZ(dst == 0)
	kb.psw.SetV(v)
	kb.psw.SetC(c)
}

// XOR 074RDD
func (kb *KB11) XOR(instr uint16) {
	src := kb.R[(instr>>6)&7]
	op := kb.resolve(instr&077, 2)
	dst := op.val ^ src
	kb.store(op, dst)
	kb.psw.setcc("**0-", dst, 2, false, false)
}

// SOB 077RNN decrements R and branches back NN words while R is not zero.
func (kb *KB11) SOB(instr uint16) {
	r := (instr >> 6) & 7
	kb.R.Set(r, kb.R.Get(r)-1)
	if kb.R.Get(r) != 0 {
		kb.R.SetPC(kb.R.PC() - 2*(instr&077))
	}
}
