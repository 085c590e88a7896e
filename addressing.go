package main

// operand is a resolved 6 bit operand specifier.
type operand struct {
	mode, reg uint16
	addr      uint16 // effective address; unused in register mode
	l         uint16 // 1 for byte operands, 2 for words
	val       uint16
}

func (op operand) isReg() bool { return op.mode == 0 }

// aget computes the effective address of the operand dd, applying the
// autoincrement and autodecrement side effects of its mode. Index words are
// fetched through PC, so with R7 as the register modes 2, 3, 6 and 7 give
// immediate, absolute, relative and relative deferred addressing.
func (kb *KB11) aget(dd, l uint16) operand {
	op := operand{mode: (dd >> 3) & 7, reg: dd & 7, l: l}

	// deferred modes step over a pointer, and SP and PC only ever
	// move by whole words.
	step := l
	if op.mode&1 != 0 || op.reg >= SP {
		step = 2
	}

	r := op.reg
	switch op.mode {
	case 0: // R
	case 1: // (R)
		op.addr = kb.R[r]
	case 2: // (R)+
		op.addr = kb.R[r]
		kb.R[r] += step
	case 3: // @(R)+
		p := kb.R[r]
		kb.R[r] += 2
		op.addr = kb.read16(p)
	case 4: // -(R)
		kb.R[r] -= step
		op.addr = kb.R[r]
	case 5: // @-(R)
		kb.R[r] -= 2
		op.addr = kb.read16(kb.R[r])
	case 6: // X(R)
		x := kb.fetch16()
		op.addr = kb.R[r] + x
	case 7: // @X(R)
		x := kb.fetch16()
		op.addr = kb.read16(kb.R[r] + x)
	}
	return op
}

// resolve computes the operand dd and reads its value.
func (kb *KB11) resolve(dd, l uint16) operand {
	op := kb.aget(dd, l)
	op.val = kb.load(op)
	return op
}

func (kb *KB11) load(op operand) uint16 {
	switch {
	case op.isReg():
		return kb.R[op.reg] & mask(op.l)
	case op.l == 2:
		return kb.read16(op.addr)
	default:
		return kb.read8(op.addr)
	}
}

// store writes v back to a resolved operand without repeating any of its
// side effects. A byte store replaces only its half of the word, the other
// half is read back and written unchanged.
func (kb *KB11) store(op operand, v uint16) {
	if op.l == 2 {
		if op.isReg() {
			kb.R[op.reg] = v
		} else {
			kb.write16(op.addr, v)
		}
		return
	}
	if op.isReg() {
		kb.R[op.reg] = mergebyte(kb.R[op.reg], v, false)
		return
	}
	kb.write8(op.addr, v)
}

// mergebyte returns w with its low (or, if hi, high) byte replaced by v.
func mergebyte(w, v uint16, hi bool) uint16 {
	v &= 0xff
	if hi {
		return w&0x00ff | v<<8
	}
	return w&0xff00 | v
}

// DA returns the target of a jump to destination dd. Register mode has no
// address and is an illegal instruction.
func (kb *KB11) DA(instr uint16) uint16 {
	if (instr>>3)&7 == 0 {
		panic(trap{INTINVAL, &InstructionError{PC: kb.pc, Instr: instr, Reason: "jump to register"}})
	}
	return kb.aget(instr&077, 2).addr
}
