package main

// newOther returns subroutine linkage, MARK, SPL and the EMT and TRAP
// instructions.
func newOther() *family {
	return newFamily("other", []opcode{
		{0177000, 0004000, "JSR", RR | DD, (*KB11).JSR},
		{0177770, 0000200, "RTS", RR, (*KB11).RTS},
		{0177770, 0000230, "SPL", N, (*KB11).SPL},
		{0177700, 0006400, "MARK", N, (*KB11).MARK},
		{0177400, 0104000, "EMT", N, func(kb *KB11, _ uint16) { kb.trapat(INTEMT) }},
		{0177400, 0104400, "TRAP", N, func(kb *KB11, _ uint16) { kb.trapat(INTTRAP) }},
	})
}

// JSR 004RDD saves R on the stack, leaves the return address in R and
// jumps to the destination.
func (kb *KB11) JSR(instr uint16) {
	dst := kb.DA(instr)
	r := (instr >> 6) & 7
	kb.push(kb.R.Get(r))
	kb.R.Set(r, kb.R.PC())
	kb.R.SetPC(dst)
}

// RTS 00020R
func (kb *KB11) RTS(instr uint16) {
	r := instr & 7
	kb.R.SetPC(kb.R.Get(r))
	kb.R.Set(r, kb.pop())
}

// SPL 00023N
func (kb *KB11) SPL(instr uint16) {
	kb.psw.SetPriority(instr & 7)
}

// MARK 0064NN discards NN parameter words and returns through R5.
func (kb *KB11) MARK(instr uint16) {
	kb.R.SetSP(kb.R.PC() + 2*(instr&077))
	kb.R.SetPC(kb.R.Get(5))
	kb.R[5] = kb.pop()
}
