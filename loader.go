package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Load writes words to memory starting at addr and points PC at addr.
func (kb *KB11) Load(addr uint16, words ...uint16) (err error) {
	defer catch(&err)
	for i, w := range words {
		kb.write16(addr+uint16(2*i), w)
	}
	kb.R[PC] = addr
	return nil
}

// LoadListing loads an octal listing. Each line holds an address, with
// or without a trailing colon, followed by the words stored from that
// address on. Anything after a semicolon is a comment. PC is left at
// the first address loaded.
//
//	001000: 012700 000017   ; MOV #17,R0
//	001004  000000          ; HALT
func (kb *KB11) LoadListing(r io.Reader) (start uint16, err error) {
	sc := bufio.NewScanner(r)
	first := true
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if i := strings.IndexByte(text, ';'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		addr, err := parseOctal(strings.TrimSuffix(fields[0], ":"))
		if err != nil {
			return 0, fmt.Errorf("line %d: address: %w", line, err)
		}
		var words []uint16
		for _, f := range fields[1:] {
			w, err := parseOctal(f)
			if err != nil {
				return 0, fmt.Errorf("line %d: %w", line, err)
			}
			words = append(words, w)
		}
		if addr&1 != 0 {
			return 0, fmt.Errorf("line %d: odd address %06o", line, addr)
		}
		if err := kb.Load(addr, words...); err != nil {
			return 0, fmt.Errorf("line %d: %w", line, err)
		}
		if first {
			start, first = addr, false
		}
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	if first {
		return 0, fmt.Errorf("listing is empty")
	}
	kb.R[PC] = start
	return start, nil
}

// LoadImage loads a raw little endian memory image at base.
func (kb *KB11) LoadImage(r io.Reader, base uint16) error {
	buf, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(buf)&1 != 0 {
		buf = append(buf, 0)
	}
	if int(base)+len(buf) > 0200000 {
		return fmt.Errorf("image of %d bytes does not fit at %06o", len(buf), base)
	}
	words := make([]uint16, len(buf)/2)
	for i := range words {
		words[i] = uint16(buf[2*i]) | uint16(buf[2*i+1])<<8
	}
	return kb.Load(base, words...)
}

func parseOctal(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 8, 16)
	return uint16(v), err
}
