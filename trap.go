package main

import "fmt"

// Trap vectors.
const (
	INTBUS   = 0004
	INTINVAL = 0010
	INTDEBUG = 0014
	INTIOT   = 0020
	INTEMT   = 0030
	INTTRAP  = 0034
)

// trap is raised with panic from deep inside instruction execution and
// recovered by Step.
type trap struct {
	vec uint16
	err error
}

func (t trap) String() string {
	return fmt.Sprintf("trap: %06o: %v", t.vec, t.err)
}

// BusError reports an access the UNIBUS cannot complete: an odd word
// address, an address beyond the end of memory or a register no device
// answers for.
type BusError struct {
	Addr   addr18
	Op     string
	Reason string
}

func (e *BusError) Error() string {
	return fmt.Sprintf("unibus: %s %06o: %s", e.Op, e.Addr, e.Reason)
}

func buserr(op string, a addr18, reason string) {
	panic(trap{INTBUS, &BusError{Addr: a, Op: op, Reason: reason}})
}

// InstructionError reports an instruction the CPU could not execute.
type InstructionError struct {
	PC     uint16
	Instr  uint16
	Reason string
}

func (e *InstructionError) Error() string {
	return fmt.Sprintf("kb11: %06o: %06o: %s", e.PC, e.Instr, e.Reason)
}
