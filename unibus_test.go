package main

import (
	"sync"
	"testing"

	"github.com/matryer/is"
)

func TestUNIBUSWidths(t *testing.T) {
	is := is.New(t)
	for _, tt := range []struct {
		bits   uint
		iopage addr18
	}{
		{16, 0160000},
		{18, 0760000},
		{22, 017760000},
		{24, 077760000},
	} {
		u, err := NewUNIBUS(tt.bits)
		is.NoErr(err)
		is.Equal(u.IOPage(), tt.iopage)
		is.Equal(u.physical(0177776), tt.iopage+017776)
		is.Equal(u.physical(0157776), addr18(0157776))
	}
	_, err := NewUNIBUS(17)
	is.True(err != nil)
}

func TestUNIBUSLittleEndian(t *testing.T) {
	is := is.New(t)
	u, _ := NewUNIBUS(18)
	is.NoErr(u.WriteWord(01000, 0x1234))
	lo, err := u.ReadByte8(01000)
	is.NoErr(err)
	hi, err := u.ReadByte8(01001)
	is.NoErr(err)
	is.Equal(lo, uint16(0x34))
	is.Equal(hi, uint16(0x12))

	is.NoErr(u.WriteByte8(01001, 0xab))
	w, _ := u.ReadWord(01000)
	is.Equal(w, uint16(0xab34))
}

func TestUNIBUSErrors(t *testing.T) {
	is := is.New(t)
	u, _ := NewUNIBUS(16)

	_, err := u.ReadWord(01001)
	be, ok := err.(*BusError)
	is.True(ok)
	is.Equal(be.Reason, "odd address")

	err = u.WriteWord(0200000, 0)
	be, ok = err.(*BusError)
	is.True(ok)
	is.Equal(be.Reason, "nonexistent memory")

	_, err = u.ReadByte8(0200000)
	is.True(err != nil)
}

func TestUNIBUSHandlers(t *testing.T) {
	is := is.New(t)
	u, _ := NewUNIBUS(18)
	a := u.physical(0177570)
	var reg uint16 = 0x1234
	var writes []uint16
	is.NoErr(u.RegisterReader(a, func(addr18) uint16 { return reg }))
	is.NoErr(u.RegisterWriter(a, func(_ addr18, v uint16) {
		writes = append(writes, v)
		reg = v
	}))

	v, err := u.ReadWord(a)
	is.NoErr(err)
	is.Equal(v, uint16(0x1234))

	// the byte write is seen by the device as a whole word
	is.NoErr(u.WriteByte8(a+1, 0x56))
	is.Equal(writes, []uint16{0x5634})
	b, _ := u.ReadByte8(a + 1)
	is.Equal(b, uint16(0x56))

	// core behind a register is never touched
	is.Equal(u.core[a], byte(0))

	is.Equal(u.Registers(), []addr18{a})
}

func TestUNIBUSReadOnlyRegister(t *testing.T) {
	is := is.New(t)
	u, _ := NewUNIBUS(18)
	a := u.physical(0177570)
	is.NoErr(u.RegisterReader(a, func(addr18) uint16 { return 7 }))
	err := u.WriteWord(a, 1)
	be, ok := err.(*BusError)
	is.True(ok)
	is.Equal(be.Reason, "read only register")

	b := u.physical(0177572)
	is.NoErr(u.RegisterWriter(b, func(addr18, uint16) {}))
	_, err = u.ReadWord(b)
	be, ok = err.(*BusError)
	is.True(ok)
	is.Equal(be.Reason, "write only register")
}

func TestUNIBUSRegisterOutsideIOPage(t *testing.T) {
	is := is.New(t)
	u, _ := NewUNIBUS(18)
	is.True(u.RegisterReader(01000, func(addr18) uint16 { return 0 }) != nil)
	is.True(u.RegisterWriter(u.physical(0177571), func(addr18, uint16) {}) != nil)
}

func TestUNIBUSDMA(t *testing.T) {
	is := is.New(t)
	u, _ := NewUNIBUS(18)
	is.NoErr(u.dmaWrite16(02000, 0xbeef))
	v, err := u.dmaRead16(02000)
	is.NoErr(err)
	is.Equal(v, uint16(0xbeef))
	_, err = u.dmaRead16(u.IOPage())
	is.True(err != nil)
	is.True(u.dmaWrite16(02001, 0) != nil)
}

func TestUNIBUSReset(t *testing.T) {
	is := is.New(t)
	u, _ := NewUNIBUS(18)
	var order []int
	u.RegisterReset(func() { order = append(order, 1) })
	u.RegisterReset(func() { order = append(order, 2) })
	u.reset()
	is.Equal(order, []int{1, 2})
}

// TestUNIBUSConcurrentDevice has a device goroutine updating a register
// while the bus reads it.
func TestUNIBUSConcurrentDevice(t *testing.T) {
	is := is.New(t)
	u, _ := NewUNIBUS(18)
	kw := NewKW11(testLog())
	is.NoErr(kw.Attach(u, 0177546))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			kw.tick()
		}
	}()
	for i := 0; i < 1000; i++ {
		_, err := u.ReadWord(u.physical(0177546))
		is.NoErr(err)
		is.NoErr(u.WriteWord(u.physical(0177546), 0))
	}
	wg.Wait()
}
