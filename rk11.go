package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

const (
	RKOVR = (1 << 14)
	RKNXM = (1 << 10)
	RKNXD = (1 << 7)
	RKNXC = (1 << 6)
	RKNXS = (1 << 5)
)

// RK05 geometry.
const (
	rkCylinders = 0313
	rkSurfaces  = 2
	rkSectors   = 014
	rkSector    = 512 // bytes
)

// RK05 is a single cartridge, held in memory.
type RK05 struct {
	path  string
	buf   []byte
	pos   int
	dirty bool
}

func (d *RK05) write16(v uint16) {
	if d.pos+2 > len(d.buf) {
		d.buf = append(d.buf, make([]byte, d.pos+2-len(d.buf))...)
	}
	binary.LittleEndian.PutUint16(d.buf[d.pos:], v)
	d.pos += 2
	d.dirty = true
}

// read16 returns zero past the end of the image.
func (d *RK05) read16() uint16 {
	var v uint16
	if d.pos+2 <= len(d.buf) {
		v = binary.LittleEndian.Uint16(d.buf[d.pos:])
	}
	d.pos += 2
	return v
}

// RK11 is the disk controller. Its registers are only touched by bus
// handlers, which the bus serialises, so it carries no lock of its own.
// A GO command runs to completion inside the CSR write.
type RK11 struct {
	rkds, rker, rkcs, rkwc, rkba     uint16
	drive, sector, surface, cylinder uint32

	units [8]RK05

	unibus *UNIBUS
	log    *logrus.Entry
}

func NewRK11(log *logrus.Entry) *RK11 {
	rk := &RK11{log: log.WithField("component", "rk11")}
	rk.reset()
	return rk
}

// Attach registers the controller's six registers starting at base,
// a CPU address.
func (rk *RK11) Attach(u *UNIBUS, base uint16) error {
	rk.unibus = u
	for i := uint16(0); i < 014; i += 2 {
		a := u.physical(base + i)
		if err := u.RegisterReader(a, rk.read16); err != nil {
			return err
		}
		if i < 4 {
			// drive status and error are read only
			continue
		}
		if err := u.RegisterWriter(a, rk.write16); err != nil {
			return err
		}
	}
	u.RegisterReset(rk.reset)
	return nil
}

// Mount loads the image at path into unit.
func (rk *RK11) Mount(unit int, path string) error {
	if unit < 0 || unit >= len(rk.units) {
		return fmt.Errorf("rk11: no such unit %d", unit)
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	rk.units[unit] = RK05{path: path, buf: buf}
	rk.log.WithFields(logrus.Fields{"unit": unit, "path": path, "bytes": len(buf)}).Info("mounted")
	return nil
}

// Sync writes modified images back to their files.
func (rk *RK11) Sync() error {
	for i := range rk.units {
		d := &rk.units[i]
		if !d.dirty || d.path == "" {
			continue
		}
		if err := os.WriteFile(d.path, d.buf, 0644); err != nil {
			return fmt.Errorf("rk11: unit %d: %w", i, err)
		}
		d.dirty = false
	}
	return nil
}

func (rk *RK11) rkda() uint16 {
	return uint16(rk.drive<<13 | rk.cylinder<<5 | rk.surface<<4 | rk.sector)
}

func (rk *RK11) read16(a addr18) uint16 {
	switch a & 017 {
	case 000:
		// 777400 Drive Status
		return rk.rkds
	case 002:
		// 777402 Error Register
		return rk.rker
	case 004:
		// 777404 Control Status
		return rk.rkcs & 0xfffe // go bit is read only
	case 006:
		// 777406 Word Count
		return rk.rkwc
	case 010:
		// 777410 Bus Address
		return rk.rkba
	default:
		// 777412 Disk Address
		return rk.rkda()
	}
}

func (rk *RK11) rknotready() {
	rk.rkds &^= 1 << 6
	rk.rkcs &^= 1 << 7
}

func (rk *RK11) rkready() {
	rk.rkds |= 1 << 6
	rk.rkcs |= 1 << 7
	rk.rkcs &^= 1 // no go
}

func (rk *RK11) fail(bits uint16) {
	rk.rker |= bits
	rk.rkcs |= 1 << 15
	if rk.rker&^(RKNXD|RKNXC|RKNXS) != 0 {
		rk.rkcs |= 1 << 14 // hard error
	}
	rk.rkready()
}

func (rk *RK11) step() {
	if (rk.rkcs & 1) == 0 {
		// no GO bit
		return
	}
	fn := (rk.rkcs >> 1) & 7
	rk.log.WithFields(logrus.Fields{
		"rkcs":     fmt.Sprintf("%06o", rk.rkcs),
		"rkba":     fmt.Sprintf("%06o", rk.rkba),
		"rkwc":     fmt.Sprintf("%06o", rk.rkwc),
		"cylinder": rk.cylinder,
		"surface":  rk.surface,
		"sector":   rk.sector,
		"function": fn,
	}).Debug("go")

	switch fn {
	case 0:
		// controller reset
		rk.reset()
	case 1, 2, 3, 5: // write, read, write check, read check
		if rk.units[rk.drive].buf == nil {
			rk.fail(RKNXD)
			return
		}
		if rk.cylinder >= rkCylinders {
			rk.fail(RKNXC)
			return
		}
		if rk.sector >= rkSectors {
			rk.fail(RKNXS)
			return
		}
		rk.rknotready()
		rk.seek()
		switch fn {
		case 1:
			rk.transfer(true)
		case 2:
			rk.transfer(false)
		default:
			// checks always succeed
			rk.rkwc = 0
			rk.rkready()
		}
	case 6: // drive reset, finished as a seek
		rk.rker = 0
		rk.rkcs &^= 0140000
		fallthrough
	case 4: // seek completes immediately
		rk.seek()
		rk.rkready()
	case 7: // write lock
		rk.rkready()
	}
}

// transfer moves the whole word count, sector by sector.
func (rk *RK11) transfer(write bool) {
	d := &rk.units[rk.drive]
	for rk.rkwc != 0 {
		for i := 0; i < rkSector/2 && rk.rkwc != 0; i++ {
			a := addr18(rk.rkcs>>4&3)<<16 | addr18(rk.rkba)
			if write {
				v, err := rk.unibus.dmaRead16(a)
				if err != nil {
					rk.log.WithError(err).Warn("dma")
					rk.fail(RKNXM)
					return
				}
				d.write16(v)
			} else {
				if err := rk.unibus.dmaWrite16(a, d.read16()); err != nil {
					rk.log.WithError(err).Warn("dma")
					rk.fail(RKNXM)
					return
				}
			}
			rk.rkba += 2
			if rk.rkba == 0 {
				// carry into the extended address bits
				rk.rkcs = rk.rkcs&^060 | (rk.rkcs+020)&060
			}
			rk.rkwc++
		}
		rk.sector++
		if rk.sector >= rkSectors {
			rk.sector = 0
			rk.surface++
			if rk.surface >= rkSurfaces {
				rk.surface = 0
				rk.cylinder++
				if rk.cylinder >= rkCylinders {
					rk.fail(RKOVR)
					return
				}
			}
		}
		d.pos = rk.position()
	}
	rk.rkready()
}

func (rk *RK11) position() int {
	return ((int(rk.cylinder)*rkSurfaces+int(rk.surface))*rkSectors + int(rk.sector)) * rkSector
}

func (rk *RK11) seek() {
	rk.units[rk.drive].pos = rk.position()
}

func (rk *RK11) write16(a addr18, v uint16) {
	switch a & 017 {
	case 004:
		rk.rkcs = v&^0xf080 | (rk.rkcs & 0xf080) // Bits 7 and 12 - 15 are read only
		rk.step()
	case 006:
		rk.rkwc = v
	case 010:
		rk.rkba = v
	case 012:
		rk.drive = uint32(v >> 13)
		rk.cylinder = uint32(v>>5) & 0377
		rk.surface = uint32(v>>4) & 1
		rk.sector = uint32(v & 15)
	}
}

func (rk *RK11) reset() {
	rk.rkds = 04700 // Set bits 6, 7, 8, 11
	rk.rker = 0
	rk.rkcs = 0200
	rk.rkwc = 0
	rk.rkba = 0
	rk.drive = 0
	rk.cylinder = 0
	rk.surface = 0
	rk.sector = 0
}
