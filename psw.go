package main

import "fmt"

const (
	FLAGC = 1
	FLAGV = 2
	FLAGZ = 4
	FLAGN = 8
	FLAGT = 020
)

// PSW is the processor status word.
//
//	15-14 current mode, 13-12 previous mode, 7-5 priority,
//	4 trace trap, 3 N, 2 Z, 1 V, 0 C.
type PSW uint16

func (p PSW) n() bool { return p&FLAGN > 0 }
func (p PSW) z() bool { return p&FLAGZ > 0 }
func (p PSW) v() bool { return p&FLAGV > 0 }
func (p PSW) c() bool { return p&FLAGC > 0 }
func (p PSW) t() bool { return p&FLAGT > 0 }

// currentmode returns the current cpu mode.
// 0: kernel, 1: supervisor, 2: illegal, 3: user
func (p PSW) currentmode() uint16 { return uint16(p) >> 14 }

// previousmode returns the previous cpu mode.
func (p PSW) previousmode() uint16 { return (uint16(p) >> 12) & 3 }

// priority returns the current CPU interrupt priority.
func (p PSW) priority() uint16 { return (uint16(p) >> 5) & 7 }

func (p *PSW) flag(b bool, f PSW) {
	if b {
		*p |= f
	} else {
		*p &^= f
	}
}

func (p *PSW) SetN(b bool) { p.flag(b, FLAGN) }
func (p *PSW) SetZ(b bool) { p.flag(b, FLAGZ) }
func (p *PSW) SetV(b bool) { p.flag(b, FLAGV) }
func (p *PSW) SetC(b bool) { p.flag(b, FLAGC) }
func (p *PSW) SetT(b bool) { p.flag(b, FLAGT) }

// SetMode sets the current and previous modes.
func (p *PSW) SetMode(cur, prev uint16) {
	*p = *p&^0170000 | PSW(cur&3)<<14 | PSW(prev&3)<<12
}

// SetPriority sets the processor priority, 0-7.
func (p *PSW) SetPriority(pri uint16) {
	*p = *p&^0340 | PSW(pri&7)<<5
}

// cc returns the condition codes as NZVC, 0 or 1 each.
func (p PSW) cc() string {
	b := func(f PSW) byte {
		if p&f > 0 {
			return '1'
		}
		return '0'
	}
	return string([]byte{b(FLAGN), b(FLAGZ), b(FLAGV), b(FLAGC)})
}

// setcc updates the condition codes from a pattern in the style of the
// processor handbook's instruction tables. Each of the four characters,
// in N Z V C order, is one of
//
//	0 cleared
//	1 set
//	* set from the result: N and Z from res masked to l bytes, V and C
//	  from the supplied v and c
//	- unaffected
func (p *PSW) setcc(pattern string, res, l uint16, v, c bool) {
	if len(pattern) != 4 {
		panic(fmt.Sprintf("psw: bad condition code pattern %q", pattern))
	}
	res &= mask(l)
	computed := [4]bool{res&msb(l) != 0, res == 0, v, c}
	flags := [4]PSW{FLAGN, FLAGZ, FLAGV, FLAGC}
	for i, f := range flags {
		switch pattern[i] {
		case '0':
			p.flag(false, f)
		case '1':
			p.flag(true, f)
		case '*':
			p.flag(computed[i], f)
		case '-':
		default:
			panic(fmt.Sprintf("psw: bad condition code pattern %q", pattern))
		}
	}
}

func (p PSW) String() string {
	mode := func(m uint16) byte {
		return "KS?U"[m&3]
	}
	f := func(b bool, c byte) byte {
		if b {
			return c
		}
		return ' '
	}
	return fmt.Sprintf("[%c%c%d%c%c%c%c%c]",
		mode(p.previousmode())|0x20, mode(p.currentmode()), p.priority(),
		f(p.t(), 'T'), f(p.n(), 'N'), f(p.z(), 'Z'), f(p.v(), 'V'), f(p.c(), 'C'))
}
