package main

// push decrements SP and stores v at the new top of stack.
func (kb *KB11) push(v uint16) {
	kb.R.SetSP(kb.R.SP() - 2)
	kb.write16(kb.R.SP(), v)
}

// pop returns the top of stack and increments SP.
func (kb *KB11) pop() uint16 {
	val := kb.read16(kb.R.SP())
	kb.R.SetSP(kb.R.SP() + 2)
	return val
}
