package main

import (
	"fmt"
	"strings"
)

// Operand layouts.
const (
	DD = 1 << 1 // destination in bits 5-0
	S  = 1 << 2 // source in bits 11-6
	RR = 1 << 3 // register in bits 8-6, or 2-0 when alone
	O  = 1 << 4 // branch offset
	N  = 1 << 5 // literal number in the bits outside the mask
	SR = 1 << 6 // source in bits 5-0 followed by the register in bits 8-6
)

// disasmaddr formats the operand m. a is the address of the next
// extension word, and the address following any word used is returned.
func (kb *KB11) disasmaddr(m, a uint16) (string, uint16) {
	word := func() (uint16, bool) {
		return kb.unibus.peek16(kb.unibus.physical(a))
	}
	r := rs[m&7]
	if m&7 == PC {
		switch m {
		case 027:
			x, ok := word()
			return octal("#", x, ok), a + 2
		case 037:
			x, ok := word()
			return octal("@#", x, ok), a + 2
		case 067:
			x, ok := word()
			return octal("", a+2+x, ok), a + 2
		case 077:
			x, ok := word()
			return octal("@", a+2+x, ok), a + 2
		}
	}

	switch m & 070 {
	case 000:
		return r, a
	case 010:
		return "(" + r + ")", a
	case 020:
		return "(" + r + ")+", a
	case 030:
		return "@(" + r + ")+", a
	case 040:
		return "-(" + r + ")", a
	case 050:
		return "@-(" + r + ")", a
	case 060:
		x, ok := word()
		return octal("", x, ok) + "(" + r + ")", a + 2
	default:
		x, ok := word()
		return octal("@", x, ok) + "(" + r + ")", a + 2
	}
}

func octal(prefix string, v uint16, ok bool) string {
	if !ok {
		return prefix + "??????"
	}
	return fmt.Sprintf("%s%06o", prefix, v)
}

// disasmop formats instr, found at address a, as the opcode op.
func (kb *KB11) disasmop(op *opcode, instr, a uint16) string {
	var b strings.Builder
	b.WriteString(op.msg)
	s := (instr & 07700) >> 6
	d := instr & 077
	next := a + 2
	var txt string
	switch op.flag {
	case S | DD:
		txt, next = kb.disasmaddr(s, next)
		b.WriteString(" " + txt + ",")
		txt, _ = kb.disasmaddr(d, next)
		b.WriteString(" " + txt)
	case DD:
		txt, _ = kb.disasmaddr(d, next)
		b.WriteString(" " + txt)
	case RR | DD:
		txt, _ = kb.disasmaddr(d, next)
		fmt.Fprintf(&b, " %s, %s", rs[(instr>>6)&7], txt)
	case SR:
		txt, _ = kb.disasmaddr(d, next)
		fmt.Fprintf(&b, " %s, %s", txt, rs[(instr>>6)&7])
	case RR:
		fmt.Fprintf(&b, " %s", rs[instr&7])
	case RR | O:
		fmt.Fprintf(&b, " %s, %06o", rs[(instr>>6)&7], a+2-2*(instr&077))
	case O:
		fmt.Fprintf(&b, " %06o", a+2+2*sext8(instr&0377))
	case N:
		fmt.Fprintf(&b, " %o", instr&^op.mask)
	}
	return b.String()
}

// disasm returns the disassembly of the instruction at a and the address
// of the instruction after it.
func (kb *KB11) disasm(a uint16) (string, uint16) {
	instr, ok := kb.unibus.peek16(kb.unibus.physical(a))
	if !ok {
		return "???", a + 2
	}
	f := kb.classify(instr)
	if f == nil {
		return fmt.Sprintf(".WORD %06o", instr), a + 2
	}
	op := f.lookup(instr)
	return kb.disasmop(op, instr, a), a + 2 + 2*extrawords(op, instr)
}

// extrawords returns the number of index or immediate words that follow
// instr.
func extrawords(op *opcode, instr uint16) uint16 {
	uses := func(m uint16) uint16 {
		if mode := (m >> 3) & 7; mode >= 6 || (m&7 == PC && (mode == 2 || mode == 3)) {
			return 1
		}
		return 0
	}
	switch op.flag {
	case S | DD:
		return uses((instr>>6)&077) + uses(instr&077)
	case DD, RR | DD, SR:
		return uses(instr & 077)
	}
	return 0
}
