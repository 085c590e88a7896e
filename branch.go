package main

// newBranch returns the conditional branch family, 0004xx-0034xx and
// 1000xx-1034xx. The low byte is a signed word offset from the updated PC.
func newBranch() *family {
	br := func(ins uint16, msg string, cond func(p PSW) bool) opcode {
		return opcode{0177400, ins, msg, O, func(kb *KB11, instr uint16) {
			if cond(kb.psw) {
				kb.R.Branch(instr & 0377)
			}
		}}
	}
	return newFamily("branch", []opcode{
		br(0000400, "BR", func(p PSW) bool { return true }),
		br(0001000, "BNE", func(p PSW) bool { return !p.z() }),
		br(0001400, "BEQ", func(p PSW) bool { return p.z() }),
		br(0002000, "BGE", func(p PSW) bool { return p.n() == p.v() }),
		br(0002400, "BLT", func(p PSW) bool { return p.n() != p.v() }),
		br(0003000, "BGT", func(p PSW) bool { return !p.z() && p.n() == p.v() }),
		br(0003400, "BLE", func(p PSW) bool { return p.z() || p.n() != p.v() }),
		br(0100000, "BPL", func(p PSW) bool { return !p.n() }),
		br(0100400, "BMI", func(p PSW) bool { return p.n() }),
		br(0101000, "BHI", func(p PSW) bool { return !p.c() && !p.z() }),
		br(0101400, "BLOS", func(p PSW) bool { return p.c() || p.z() }),
		br(0102000, "BVC", func(p PSW) bool { return !p.v() }),
		br(0102400, "BVS", func(p PSW) bool { return p.v() }),
		br(0103000, "BCC", func(p PSW) bool { return !p.c() }), // BHIS
		br(0103400, "BCS", func(p PSW) bool { return p.c() }),  // BLO
	})
}
