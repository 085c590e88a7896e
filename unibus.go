package main

import (
	"fmt"
	"sort"
	"sync"
)

// addr18 is a physical UNIBUS address. Despite the name it holds up to
// 24 bits when the bus is configured wider than the classic 18.
type addr18 uint32

// iopageSize is the size of the I/O page at the top of physical memory.
const iopageSize = 020000

// IOReader answers a word read of a device register.
type IOReader func(a addr18) uint16

// IOWriter accepts a word written to a device register.
type IOWriter func(a addr18, v uint16)

// UNIBUS is a PDP11 UNIBUS: a flat byte store with device registers
// overlaid on its top 8 KB.
type UNIBUS struct {
	core   []byte
	iopage addr18 // first address of the I/O page

	// mu is held for the duration of a device handler call, and only then.
	mu      sync.Mutex
	readers map[addr18]IOReader
	writers map[addr18]IOWriter
	resets  []func()
}

// NewUNIBUS returns a bus with 2^bits bytes of address space.
func NewUNIBUS(bits uint) (*UNIBUS, error) {
	switch bits {
	case 16, 18, 22, 24:
	default:
		return nil, fmt.Errorf("unibus: unsupported address width %d", bits)
	}
	size := addr18(1) << bits
	return &UNIBUS{
		core:    make([]byte, size),
		iopage:  size - iopageSize,
		readers: make(map[addr18]IOReader),
		writers: make(map[addr18]IOWriter),
	}, nil
}

// Size returns the number of bytes of address space.
func (u *UNIBUS) Size() addr18 { return addr18(len(u.core)) }

// IOPage returns the first address of the I/O page.
func (u *UNIBUS) IOPage() addr18 { return u.iopage }

// physical relocates a 16 bit CPU address. With no memory management the
// top 8 KB of the CPU's address space is the I/O page, wherever that sits
// on a wider bus.
func (u *UNIBUS) physical(a uint16) addr18 {
	if a >= 0160000 {
		return addr18(a-0160000) + u.iopage
	}
	return addr18(a)
}

func (u *UNIBUS) checkRegister(a addr18) error {
	if a < u.iopage || a >= u.Size() {
		return fmt.Errorf("unibus: %06o is outside the I/O page", a)
	}
	if a&1 != 0 {
		return fmt.Errorf("unibus: odd device register address %06o", a)
	}
	return nil
}

// RegisterReader routes reads of the word at a to fn.
func (u *UNIBUS) RegisterReader(a addr18, fn IOReader) error {
	if err := u.checkRegister(a); err != nil {
		return err
	}
	u.readers[a] = fn
	return nil
}

// RegisterWriter routes writes of the word at a to fn.
func (u *UNIBUS) RegisterWriter(a addr18, fn IOWriter) error {
	if err := u.checkRegister(a); err != nil {
		return err
	}
	u.writers[a] = fn
	return nil
}

// RegisterReset adds fn to the functions called by the RESET instruction.
func (u *UNIBUS) RegisterReset(fn func()) {
	u.resets = append(u.resets, fn)
}

// Registers returns the addresses with a device handler, lowest first.
func (u *UNIBUS) Registers() []addr18 {
	seen := make(map[addr18]bool)
	for a := range u.readers {
		seen[a] = true
	}
	for a := range u.writers {
		seen[a] = true
	}
	var as []addr18
	for a := range seen {
		as = append(as, a)
	}
	sort.Slice(as, func(i, j int) bool { return as[i] < as[j] })
	return as
}

func (u *UNIBUS) call(fn IOReader, a addr18) uint16 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(a)
}

func (u *UNIBUS) store(fn IOWriter, a addr18, v uint16) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fn(a, v)
}

// handled reports whether a has a device behind it in either direction.
// Such an address never touches core.
func (u *UNIBUS) handled(a addr18) bool {
	if a < u.iopage {
		return false
	}
	_, r := u.readers[a]
	_, w := u.writers[a]
	return r || w
}

// read16 reads the word at addr from the UNIBUS.
func (u *UNIBUS) read16(a addr18) uint16 {
	if a >= u.Size() {
		buserr("read16", a, "nonexistent memory")
	}
	if a&1 != 0 {
		buserr("read16", a, "odd address")
	}
	if u.handled(a) {
		fn, ok := u.readers[a]
		if !ok {
			buserr("read16", a, "write only register")
		}
		return u.call(fn, a)
	}
	return uint16(u.core[a]) | uint16(u.core[a+1])<<8
}

// write16 writes v to addr on the UNIBUS, low byte first.
func (u *UNIBUS) write16(a addr18, v uint16) {
	if a >= u.Size() {
		buserr("write16", a, "nonexistent memory")
	}
	if a&1 != 0 {
		buserr("write16", a, "odd address")
	}
	if u.handled(a) {
		fn, ok := u.writers[a]
		if !ok {
			buserr("write16", a, "read only register")
		}
		u.store(fn, a, v)
		return
	}
	u.core[a] = byte(v)
	u.core[a+1] = byte(v >> 8)
}

// read8 reads the byte at addr. A byte of a device register is taken
// from a full word read of that register.
func (u *UNIBUS) read8(a addr18) uint16 {
	if a >= u.Size() {
		buserr("read8", a, "nonexistent memory")
	}
	if w := a &^ 1; u.handled(w) {
		v := u.read16(w)
		if a&1 != 0 {
			v >>= 8
		}
		return v & 0xff
	}
	return uint16(u.core[a])
}

// write8 writes the low byte of v to addr. The containing word is read,
// the byte replaced and the whole word written back, so a device register
// sees a full word with its other half as it last read.
func (u *UNIBUS) write8(a addr18, v uint16) {
	if a >= u.Size() {
		buserr("write8", a, "nonexistent memory")
	}
	w := a &^ 1
	if u.handled(w) {
		var old uint16
		if _, ok := u.readers[w]; ok {
			old = u.read16(w)
		}
		u.write16(w, mergebyte(old, v, a&1 != 0))
		return
	}
	old := uint16(u.core[w]) | uint16(u.core[w+1])<<8
	nw := mergebyte(old, v, a&1 != 0)
	u.core[w] = byte(nw)
	u.core[w+1] = byte(nw >> 8)
}

// dmaRead16 and dmaWrite16 move words between a device and core without
// going through device handlers, so a handler may use them without
// retaking the bus lock.
func (u *UNIBUS) dmaRead16(a addr18) (uint16, error) {
	if a&1 != 0 || a >= u.iopage {
		return 0, &BusError{Addr: a, Op: "dma read", Reason: "not core memory"}
	}
	return uint16(u.core[a]) | uint16(u.core[a+1])<<8, nil
}

func (u *UNIBUS) dmaWrite16(a addr18, v uint16) error {
	if a&1 != 0 || a >= u.iopage {
		return &BusError{Addr: a, Op: "dma write", Reason: "not core memory"}
	}
	u.core[a] = byte(v)
	u.core[a+1] = byte(v >> 8)
	return nil
}

// peek16 reads core without side effects, for the disassembler.
func (u *UNIBUS) peek16(a addr18) (uint16, bool) {
	if a&1 != 0 || a+1 >= u.Size() || u.handled(a) {
		return 0, false
	}
	return uint16(u.core[a]) | uint16(u.core[a+1])<<8, true
}

// ReadWord, WriteWord, ReadByte8 and WriteByte8 are the error returning
// forms of the bus primitives for callers outside instruction execution.
func (u *UNIBUS) ReadWord(a addr18) (v uint16, err error) {
	defer catch(&err)
	return u.read16(a), nil
}

func (u *UNIBUS) WriteWord(a addr18, v uint16) (err error) {
	defer catch(&err)
	u.write16(a, v)
	return nil
}

func (u *UNIBUS) ReadByte8(a addr18) (v uint16, err error) {
	defer catch(&err)
	return u.read8(a), nil
}

func (u *UNIBUS) WriteByte8(a addr18, v uint16) (err error) {
	defer catch(&err)
	u.write8(a, v)
	return nil
}

// catch converts a trap raised by the bus into an error.
func catch(err *error) {
	if r := recover(); r != nil {
		t, ok := r.(trap)
		if !ok {
			panic(r)
		}
		*err = t.err
	}
}

// reset calls every device's reset hook.
func (u *UNIBUS) reset() {
	for _, fn := range u.resets {
		fn()
	}
}
