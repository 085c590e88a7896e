package main

import (
	"errors"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrClosed is returned by Receive once the console is closed.
var ErrClosed = errors.New("kl11: closed")

// KL11 is the console serial line: receiver status and buffer, then
// transmitter status and buffer, in consecutive words.
type KL11 struct {
	mu    sync.Mutex
	empty *sync.Cond // signalled when the receiver buffer is read

	rcsr, rbuf, xcsr, xbuf uint16
	closed                 bool

	out io.Writer
	log *logrus.Entry
}

// NewKL11 returns a console whose transmitter writes to out.
func NewKL11(out io.Writer, log *logrus.Entry) *KL11 {
	kl := &KL11{
		out: out,
		log: log.WithField("component", "kl11"),
	}
	kl.empty = sync.NewCond(&kl.mu)
	kl.clearterminal()
	return kl
}

// Attach registers the console's four registers at base, a CPU address.
func (kl *KL11) Attach(u *UNIBUS, base uint16) error {
	for i := uint16(0); i < 8; i += 2 {
		a := u.physical(base + i)
		if err := u.RegisterReader(a, kl.read16); err != nil {
			return err
		}
		if err := u.RegisterWriter(a, kl.write16); err != nil {
			return err
		}
	}
	u.RegisterReset(kl.reset)
	return nil
}

func (kl *KL11) clearterminal() {
	kl.rcsr = 0
	kl.xcsr = 0x80
	kl.rbuf = 0
	kl.xbuf = 0
}

func (kl *KL11) reset() {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	kl.clearterminal()
	kl.empty.Broadcast()
}

// Receive places c in the receiver buffer, first waiting for the program
// to read the previous character.
func (kl *KL11) Receive(c byte) error {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	for kl.rcsr&0x80 != 0 && !kl.closed {
		kl.empty.Wait()
	}
	if kl.closed {
		return ErrClosed
	}
	kl.rbuf = uint16(c)
	kl.rcsr |= 0x80
	return nil
}

// Close releases any caller blocked in Receive.
func (kl *KL11) Close() error {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	kl.closed = true
	kl.empty.Broadcast()
	return nil
}

func (kl *KL11) read16(a addr18) uint16 {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	switch a & 06 {
	case 00:
		return kl.rcsr
	case 02:
		if kl.rcsr&0x80 > 0 {
			kl.rcsr &^= 0x80
			kl.empty.Broadcast()
		}
		return kl.rbuf
	case 04:
		return kl.xcsr
	default:
		return 0
	}
}

func (kl *KL11) write16(a addr18, v uint16) {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	switch a & 06 {
	case 00:
		kl.rcsr = kl.rcsr&^0x40 | v&0x40
		kl.noInterrupts(v)
	case 02:
		// receiver buffer is read only
	case 04:
		kl.xcsr = kl.xcsr&^0x40 | v&0x40
		kl.noInterrupts(v)
	case 06:
		kl.xbuf = v & 0x7f
		if _, err := kl.out.Write([]byte{byte(kl.xbuf)}); err != nil {
			kl.log.WithError(err).Error("transmit")
		}
		kl.xcsr |= 0x80
	}
}

func (kl *KL11) noInterrupts(v uint16) {
	if v&0x40 != 0 {
		kl.log.Debug("interrupt enable set; interrupts are not delivered")
	}
}
