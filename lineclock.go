package main

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// KW11 is the line time clock. Each tick sets the monitor bit, bit 7,
// which the program clears by writing the CSR.
type KW11 struct {
	mu  sync.Mutex
	csr uint16

	stop chan struct{}
	done chan struct{}
	log  *logrus.Entry
}

func NewKW11(log *logrus.Entry) *KW11 {
	return &KW11{log: log.WithField("component", "kw11")}
}

// Attach registers the clock's CSR at addr, a CPU address.
func (kw *KW11) Attach(u *UNIBUS, addr uint16) error {
	a := u.physical(addr)
	if err := u.RegisterReader(a, kw.read16); err != nil {
		return err
	}
	if err := u.RegisterWriter(a, kw.write16); err != nil {
		return err
	}
	u.RegisterReset(kw.reset)
	return nil
}

func (kw *KW11) write16(_ addr18, v uint16) {
	kw.mu.Lock()
	defer kw.mu.Unlock()
	kw.csr = v & 0300
}

func (kw *KW11) read16(addr18) uint16 {
	kw.mu.Lock()
	defer kw.mu.Unlock()
	return kw.csr
}

func (kw *KW11) reset() {
	kw.mu.Lock()
	defer kw.mu.Unlock()
	kw.csr = 0
}

func (kw *KW11) tick() {
	kw.mu.Lock()
	defer kw.mu.Unlock()
	kw.csr |= 1 << 7
}

// Start ticks the clock every interval until Stop is called.
func (kw *KW11) Start(interval time.Duration) {
	kw.stop = make(chan struct{})
	kw.done = make(chan struct{})
	ticks := time.NewTicker(interval)
	go func() {
		defer close(kw.done)
		defer ticks.Stop()
		for {
			select {
			case <-ticks.C:
				kw.tick()
			case <-kw.stop:
				return
			}
		}
	}()
	kw.log.WithField("interval", interval).Debug("started")
}

// Stop stops a clock started with Start.
func (kw *KW11) Stop() {
	if kw.stop == nil {
		return
	}
	close(kw.stop)
	<-kw.done
	kw.stop = nil
}
