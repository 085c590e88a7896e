package main

// toSigned returns the two's complement value of the 16 bit word w.
func toSigned(w uint16) int { return int(int16(w)) }

// toUnsigned truncates v to a 16 bit word.
func toUnsigned(v int) uint16 { return uint16(v & 0xffff) }

// toSigned32 returns the two's complement value of the 32 bit long word l.
func toSigned32(l uint32) int64 { return int64(int32(l)) }

// toUnsigned32 truncates v to a 32 bit long word.
func toUnsigned32(v int64) uint32 { return uint32(v & 0xffffffff) }

// long joins a register pair, hi in the upper half.
func long(hi, lo uint16) uint32 { return uint32(hi)<<16 | uint32(lo) }

// sext8 sign extends the low byte of b to a word.
func sext8(b uint16) uint16 { return uint16(int8(b)) }

// mask returns the all ones value for an operand of length l (1 or 2 bytes).
func mask(l uint16) uint16 {
	if l == 2 {
		return 0xffff
	}
	return 0xff
}

// msb returns the sign bit for an operand of length l.
func msb(l uint16) uint16 {
	if l == 2 {
		return 0x8000
	}
	return 0x80
}

// length returns the operand length of a byte/word instruction, bit 15 selects byte.
func length(instr uint16) uint16 {
	if instr&0100000 != 0 {
		return 1
	}
	return 2
}
