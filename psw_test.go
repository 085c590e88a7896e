package main

import (
	"testing"

	"github.com/matryer/is"
)

func TestSetcc(t *testing.T) {
	tests := []struct {
		pattern string
		psw     PSW
		res, l  uint16
		v, c    bool
		want    string
	}{
		{"****", 0, 0, 2, false, false, "0100"},
		{"****", 0, 0100000, 2, true, true, "1011"},
		{"****", 0, 0200, 1, false, false, "1000"},
		{"****", 0, 0400, 1, false, false, "0100"}, // high byte ignored
		{"**0-", FLAGV | FLAGC, 1, 2, true, false, "0001"},
		{"0100", FLAGN | FLAGC, 5, 2, true, true, "0100"},
		{"--1-", FLAGN, 0, 2, false, false, "1010"},
		{"-*0-", FLAGN | FLAGV, 0, 2, false, false, "1100"},
	}
	for _, tt := range tests {
		p := tt.psw
		p.setcc(tt.pattern, tt.res, tt.l, tt.v, tt.c)
		if got := p.cc(); got != tt.want {
			t.Errorf("%q on %06o/%d from %s: got %s, want %s", tt.pattern, tt.res, tt.l, tt.psw.cc(), got, tt.want)
		}
	}
}

func TestSetccBadPattern(t *testing.T) {
	is := is.New(t)
	defer func() {
		is.True(recover() != nil)
	}()
	var p PSW
	p.setcc("**x*", 0, 2, false, false)
}

func TestPSWFields(t *testing.T) {
	is := is.New(t)
	var p PSW
	p.SetMode(3, 1)
	p.SetPriority(4)
	p.SetT(true)
	p.SetN(true)
	p.SetC(true)
	is.Equal(p.currentmode(), uint16(3))
	is.Equal(p.previousmode(), uint16(1))
	is.Equal(p.priority(), uint16(4))
	is.Equal(uint16(p), uint16(0150000|0200|FLAGT|FLAGN|FLAGC))
	is.Equal(p.String(), "[sU4TN  C]")

	p.SetPriority(0)
	p.SetMode(0, 0)
	is.Equal(p.String(), "[kK0TN  C]")
}
