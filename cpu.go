package main

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// KB11 is the PDP11 central processor.
type KB11 struct {
	unibus *UNIBUS

	pc uint16    // address of the instruction being executed
	R  Registers // R0-R7

	psw PSW // processor status word

	// families in dispatch order; several share bit patterns so the
	// order matters.
	families []*family

	halted bool  // set by HALT for the instruction in progress
	count  int64 // instructions executed

	mu      sync.Mutex // guards running
	running bool

	log *logrus.Entry
}

// NewKB11 returns a CPU attached to u. The PSW is mapped at the top
// of the I/O page.
func NewKB11(u *UNIBUS, log *logrus.Entry) (*KB11, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	kb := &KB11{
		unibus: u,
		log:    log.WithField("component", "kb11"),
		families: []*family{
			newBranch(),
			newCondCodes(),
			newNoOperand(),
			newSingleOperand(),
			newRSS(),
			newSSDD(),
			newOther(),
		},
	}
	psw := u.physical(0177776)
	if err := u.RegisterReader(psw, func(addr18) uint16 { return uint16(kb.psw) }); err != nil {
		return nil, err
	}
	if err := u.RegisterWriter(psw, func(_ addr18, v uint16) { kb.writePSW(v) }); err != nil {
		return nil, err
	}
	return kb, nil
}

// Reset clears the registers and PSW and resets every device.
func (kb *KB11) Reset() {
	kb.R = Registers{}
	kb.psw = 0
	kb.count = 0
	kb.unibus.reset()
}

// SetRun sets the run flag. Run stops within one instruction of the
// flag being cleared.
func (kb *KB11) SetRun(run bool) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	kb.running = run
}

// Running returns the run flag.
func (kb *KB11) Running() bool {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	return kb.running
}

// Count returns the number of instructions executed since reset.
func (kb *KB11) Count() int64 { return kb.count }

// Run executes instructions while the run flag is set, stopping after
// limit instructions if limit is positive. A HALT clears the run flag
// and returns nil.
func (kb *KB11) Run(limit int) error {
	for n := 0; limit <= 0 || n < limit; n++ {
		if !kb.Running() {
			return nil
		}
		ok, _, err := kb.Step()
		if err != nil {
			kb.SetRun(false)
			return err
		}
		if !ok {
			kb.SetRun(false)
			return nil
		}
	}
	return nil
}

// Step fetches and executes one instruction. It reports whether execution
// should continue and the instruction's disassembly. An instruction that
// leaves PC where it started, such as BR ., is an error rather than a
// silent loop. An error leaves any state the instruction already changed
// as it is.
func (kb *KB11) Step() (ok bool, asm string, err error) {
	defer func() {
		if r := recover(); r != nil {
			t, isTrap := r.(trap)
			if !isTrap {
				panic(r)
			}
			kb.log.WithFields(logrus.Fields{
				"pc":  fmt.Sprintf("%06o", kb.pc),
				"vec": fmt.Sprintf("%03o", t.vec),
			}).Error(t.err)
			ok, err = false, t.err
		}
	}()

	kb.pc = kb.R.PC()
	instr := kb.fetch16()
	f := kb.classify(instr)
	if f == nil {
		kb.at(instr).Error("unknown instruction")
		return false, "unknown", &InstructionError{PC: kb.pc, Instr: instr, Reason: "unknown instruction"}
	}
	ok, asm = f.execute(kb, instr)
	kb.count++
	if ok && kb.R.PC() == kb.pc {
		kb.at(instr).Error("PC did not advance")
		return false, asm, &InstructionError{PC: kb.pc, Instr: instr, Reason: "PC did not advance"}
	}
	if kb.log.Logger.IsLevelEnabled(logrus.TraceLevel) {
		kb.log.Trace(kb.printstate(asm))
	}
	return ok, asm, nil
}

// classify returns the family that owns instr, or nil.
func (kb *KB11) classify(instr uint16) *family {
	for _, f := range kb.families {
		if f.matches(instr) {
			return f
		}
	}
	return nil
}

func (kb *KB11) read16(a uint16) uint16 { return kb.unibus.read16(kb.unibus.physical(a)) }
func (kb *KB11) read8(a uint16) uint16  { return kb.unibus.read8(kb.unibus.physical(a)) }

func (kb *KB11) write16(a, v uint16) { kb.unibus.write16(kb.unibus.physical(a), v) }
func (kb *KB11) write8(a, v uint16)  { kb.unibus.write8(kb.unibus.physical(a), v) }

// fetch16 reads the word at PC and advances PC past it. It fetches both
// instructions and the index and immediate words that follow them.
func (kb *KB11) fetch16() uint16 {
	val := kb.read16(kb.R.PC())
	kb.R.IncPC()
	return val
}

func (kb *KB11) writePSW(psw uint16) {
	kb.psw = PSW(psw)
}

// trapat saves PC and PSW on the stack and continues at the handler
// whose PC and PSW are stored at vec.
func (kb *KB11) trapat(vec uint16) {
	kb.log.WithField("pc", fmt.Sprintf("%06o", kb.pc)).Infof("trap: %03o", vec)

	psw := kb.psw
	kb.push(uint16(psw))
	kb.push(kb.R.PC())

	kb.R.SetPC(kb.read16(vec))
	kb.writePSW(kb.read16(vec+2)&^030000 | psw.currentmode()<<12)
}

// at returns the log entry for instr at the current instruction address.
func (kb *KB11) at(instr uint16) *logrus.Entry {
	return kb.log.WithFields(logrus.Fields{
		"pc":    fmt.Sprintf("%06o", kb.pc),
		"instr": fmt.Sprintf("%06o", instr),
	})
}

func (kb *KB11) n() bool { return kb.psw.n() }
func (kb *KB11) z() bool { return kb.psw.z() }
func (kb *KB11) v() bool { return kb.psw.v() }
func (kb *KB11) c() bool { return kb.psw.c() }

// PSW returns the processor status word.
func (kb *KB11) PSW() PSW { return kb.psw }

func (kb *KB11) printstate(asm string) string {
	instr, _ := kb.unibus.peek16(kb.unibus.physical(kb.pc))
	return fmt.Sprintf("R0 %06o R1 %06o R2 %06o R3 %06o R4 %06o R5 %06o R6 %06o R7 %06o\n%s  instr %06o: %06o\t %s",
		kb.R[0], kb.R[1], kb.R[2], kb.R[3], kb.R[4], kb.R[5], kb.R[6], kb.R[7],
		kb.psw, kb.pc, instr, asm)
}
