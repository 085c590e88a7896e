package main

import "fmt"

// opcode is one instruction: the bits that identify it under mask, its
// mnemonic and operand layout, and its implementation.
type opcode struct {
	mask uint16
	ins  uint16
	msg  string
	flag uint8
	exec func(kb *KB11, instr uint16)
}

// bw returns the word form of an instruction and, with bit 15 set and a B
// suffix, its byte form.
func bw(mask, ins uint16, msg string, flag uint8, exec func(*KB11, uint16)) []opcode {
	return []opcode{
		{mask, ins, msg, flag, exec},
		{mask, ins | 0100000, msg + "B", flag, exec},
	}
}

// family is one instruction format and the opcodes encoded in it. The
// table is built once and never changes.
type family struct {
	name  string
	masks []uint16
	ops   map[uint16]*opcode
}

func newFamily(name string, ops []opcode) *family {
	f := &family{name: name, ops: make(map[uint16]*opcode)}
	for i := range ops {
		op := &ops[i]
		if op.ins&^op.mask != 0 {
			panic(fmt.Sprintf("%s: %s: opcode %06o has bits outside mask %06o", name, op.msg, op.ins, op.mask))
		}
		if dup, ok := f.ops[op.ins]; ok {
			panic(fmt.Sprintf("%s: %s: opcode %06o already used by %s", name, op.msg, op.ins, dup.msg))
		}
		f.ops[op.ins] = op
		f.addmask(op.mask)
	}
	return f
}

func (f *family) addmask(m uint16) {
	for _, x := range f.masks {
		if x == m {
			return
		}
	}
	f.masks = append(f.masks, m)
}

// lookup returns the opcode for instr, or nil if instr is not in this family.
func (f *family) lookup(instr uint16) *opcode {
	for _, m := range f.masks {
		if op, ok := f.ops[instr&m]; ok && op.mask == m {
			return op
		}
	}
	return nil
}

func (f *family) matches(instr uint16) bool { return f.lookup(instr) != nil }

// execute runs instr, which must match f. It reports false if the
// instruction halted the processor.
func (f *family) execute(kb *KB11, instr uint16) (bool, string) {
	op := f.lookup(instr)
	asm := kb.disasmop(op, instr, kb.pc)
	kb.halted = false
	op.exec(kb, instr)
	return !kb.halted, asm
}
