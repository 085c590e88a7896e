package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// ctrlE stops the processor, as on the console of a simulator.
const ctrlE = 5

// host feeds keystrokes from the controlling terminal to the console.
type host struct {
	in    *os.File
	cons  *KL11
	cpu   *KB11
	saved *term.State
	log   *logrus.Entry
}

func newHost(in *os.File, cons *KL11, cpu *KB11, log *logrus.Entry) *host {
	return &host{
		in:   in,
		cons: cons,
		cpu:  cpu,
		log:  log.WithField("component", "host"),
	}
}

// start puts the terminal in raw mode, if it is one, and starts reading.
func (h *host) start(raw bool) error {
	fd := int(h.in.Fd())
	if raw && term.IsTerminal(fd) {
		saved, err := term.MakeRaw(fd)
		if err != nil {
			return err
		}
		h.saved = saved
		if err := keepsignals(h.in.Fd()); err != nil {
			h.stop()
			return err
		}
	}
	go h.read()
	return nil
}

func (h *host) read() {
	var buf [1]byte
	for {
		if _, err := h.in.Read(buf[:]); err != nil {
			if err != io.EOF {
				h.log.WithError(err).Warn("read")
			}
			return
		}
		if buf[0] == ctrlE {
			h.log.Info("interrupted")
			h.cpu.SetRun(false)
			continue
		}
		if err := h.cons.Receive(buf[0]); err != nil {
			return
		}
	}
}

// stop restores the terminal.
func (h *host) stop() error {
	if h.saved == nil {
		return nil
	}
	err := term.Restore(int(h.in.Fd()), h.saved)
	h.saved = nil
	return err
}
