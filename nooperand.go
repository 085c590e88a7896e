package main

// newNoOperand returns the instructions without operands, each a single
// 16 bit value.
func newNoOperand() *family {
	return newFamily("no operand", []opcode{
		{0177777, 0000000, "HALT", 0, (*KB11).HALT},
		{0177777, 0000001, "WAIT", 0, (*KB11).WAIT},
		{0177777, 0000002, "RTI", 0, (*KB11).RTT},
		{0177777, 0000003, "BPT", 0, func(kb *KB11, _ uint16) { kb.trapat(INTDEBUG) }},
		{0177777, 0000004, "IOT", 0, func(kb *KB11, _ uint16) { kb.trapat(INTIOT) }},
		{0177777, 0000005, "RESET", 0, (*KB11).RESET},
		{0177777, 0000006, "RTT", 0, (*KB11).RTT},
		{0177777, 0000240, "NOP", 0, func(*KB11, uint16) {}},
	})
}

// HALT 000000
func (kb *KB11) HALT(instr uint16) {
	kb.at(instr).Info("HALT")
	kb.halted = true
}

// WAIT 000001 waits for an interrupt. Nothing interrupts this processor,
// so it continues with the next instruction.
func (kb *KB11) WAIT(uint16) {
	kb.unimplemented(0000001, "WAIT: no interrupt sources")
}

// RESET 000005
func (kb *KB11) RESET(uint16) {
	kb.log.Info("RESET")
	kb.unibus.reset()
}

// RTI 000002, RTT 000006 restore PC then PSW from the stack.
func (kb *KB11) RTT(uint16) {
	kb.R.SetPC(kb.pop())
	kb.writePSW(kb.pop())
}

// unimplemented reports an instruction the processor accepts but does not
// carry out. Execution continues.
func (kb *KB11) unimplemented(instr uint16, why string) {
	kb.at(instr).Warn(why)
}
