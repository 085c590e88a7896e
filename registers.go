package main

// Register aliases.
const (
	SP = 6
	PC = 7
)

var rs = [...]string{"R0", "R1", "R2", "R3", "R4", "R5", "SP", "PC"}

// Registers are the eight general registers R0-R7.
type Registers [8]uint16

func (r *Registers) Get(i uint16) uint16    { return r[i&7] }
func (r *Registers) Set(i uint16, v uint16) { r[i&7] = v }

func (r *Registers) PC() uint16     { return r[PC] }
func (r *Registers) SetPC(v uint16) { r[PC] = v }
func (r *Registers) IncPC()         { r[PC] += 2 }
func (r *Registers) SP() uint16     { return r[SP] }
func (r *Registers) SetSP(v uint16) { r[SP] = v }

// Branch moves PC by a signed 8 bit word offset. PC has already been
// advanced past the branch by the fetch.
func (r *Registers) Branch(offset uint16) {
	r[PC] += 2 * sext8(offset)
}
