package main

import (
	"golang.org/x/sys/unix"
)

func tcget(fd uintptr) (*unix.Termios, error) {
	p, err := unix.IoctlGetTermios(int(fd), getTermios)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func tcset(fd uintptr, p *unix.Termios) error {
	return unix.IoctlSetTermios(int(fd), setTermios, p)
}

// keepsignals turns signal generation back on for a terminal in raw mode,
// so Ctrl-C still stops the emulator rather than reaching the console.
func keepsignals(fd uintptr) error {
	t, err := tcget(fd)
	if err != nil {
		return err
	}
	t.Lflag |= unix.ISIG
	return tcset(fd, t)
}
