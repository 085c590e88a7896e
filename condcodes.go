package main

import "strings"

// newCondCodes returns the condition code operators 000241-000277. Bit 4
// selects set or clear and bits 3-0 are the N, Z, V and C bits to change.
// 000240 with no bits is NOP and belongs to the no operand family.
func newCondCodes() *family {
	var ops []opcode
	for ins := uint16(0000241); ins <= 0000277; ins++ {
		if ins == 0000260 {
			ops = append(ops, opcode{0177777, ins, "NOP", 0, func(*KB11, uint16) {}})
			continue
		}
		ops = append(ops, opcode{0177777, ins, ccname(ins), 0, (*KB11).CC})
	}
	return newFamily("condition codes", ops)
}

// CC sets or clears the condition codes selected by the low four bits.
func (kb *KB11) CC(instr uint16) {
	bits := PSW(instr & 017)
	if instr&020 != 0 {
		kb.psw |= bits
	} else {
		kb.psw &^= bits
	}
}

func ccname(instr uint16) string {
	op := "CL"
	if instr&020 != 0 {
		op = "SE"
	}
	if instr&017 == 017 {
		if op == "CL" {
			return "CCC"
		}
		return "SCC"
	}
	var names []string
	for i, f := range "CVZN" {
		if instr&(1<<uint(i)) != 0 {
			names = append(names, op+string(f))
		}
	}
	return strings.Join(names, "!")
}
