// pdp11 emulator.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
)

func main() {
	var cli struct {
		LogLevel string `name:"log-level" default:"warn" help:"trace, debug, info, warn or error"`

		Run    runCmd    `cmd:"" default:"1" help:"help yourself to a PDP11"`
		Disasm disasmCmd `cmd:"" help:"disassemble a program without running it"`
	}

	ctx := kong.Parse(&cli,
		kong.Description("A PDP-11/40 processor emulator."),
		kong.Configuration(kong.JSON, ".pdp11.json", "~/.pdp11.json"),
	)
	lvl, err := logrus.ParseLevel(cli.LogLevel)
	ctx.FatalIfErrorf(err)
	logrus.SetLevel(lvl)
	logrus.SetOutput(os.Stderr)

	err = ctx.Run(logrus.NewEntry(logrus.StandardLogger()))
	ctx.FatalIfErrorf(err)
}

// loadProgram loads the file at path into cpu, as an octal listing or,
// if raw, as an image at startaddr. It returns the start address.
func loadProgram(cpu *KB11, path string, raw bool, startaddr string) (uint16, error) {
	start, err := parseOctal(startaddr)
	if err != nil {
		return 0, fmt.Errorf("startaddr: %w", err)
	}
	if path == "" {
		cpu.R[PC] = start
		return start, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	if raw {
		return start, cpu.LoadImage(f, start)
	}
	return cpu.LoadListing(f)
}

type runCmd struct {
	StartAddr string `name:"startaddr" default:"001000" help:"octal start address, and load address of raw images"`
	Load      string `name:"load" type:"existingfile" help:"octal listing, or raw image with --raw, to load"`
	Raw       bool   `name:"raw" help:"load a raw little endian image"`
	Bits      uint   `name:"bits" default:"18" help:"physical address width: 16, 18, 22 or 24"`

	Limit      int    `name:"limit" help:"stop after this many instructions"`
	Console    string `name:"console" default:"177560" help:"octal address of the console registers"`
	Clock      bool   `name:"clock" help:"run the 60Hz line clock"`
	RK0        string `name:"rk0" type:"existingfile" help:"path to rk0 image"`
	CPUProfile string `name:"cpuprofile" help:"write a CPU profile to this directory"`
}

func (r *runCmd) Run(log *logrus.Entry) error {
	if r.CPUProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(r.CPUProfile), profile.Quiet).Stop()
	}
	console, err := parseOctal(r.Console)
	if err != nil {
		return fmt.Errorf("console: %w", err)
	}
	pdp, err := NewPDP11(Config{Bits: r.Bits, Console: console, RK0: r.RK0}, os.Stdout, log)
	if err != nil {
		return err
	}
	defer pdp.Close()
	if _, err := loadProgram(pdp.cpu, r.Load, r.Raw, r.StartAddr); err != nil {
		return err
	}

	h := newHost(os.Stdin, pdp.cons, pdp.cpu, log)
	if err := h.start(true); err != nil {
		return err
	}
	defer h.stop()
	if r.Clock {
		pdp.clock.Start(time.Second / 60)
	}

	pdp.cpu.SetRun(true)
	err = pdp.cpu.Run(r.Limit)
	h.stop()
	fmt.Fprintf(os.Stderr, "\r\n%s\r\n%d instructions\r\n", pdp.cpu.printstate(""), pdp.cpu.Count())
	return err
}

type disasmCmd struct {
	StartAddr string `name:"startaddr" default:"001000" help:"octal start address, and load address of raw images"`
	Load      string `name:"load" type:"existingfile" help:"octal listing, or raw image with --raw, to load"`
	Raw       bool   `name:"raw" help:"load a raw little endian image"`
	Bits      uint   `name:"bits" default:"18" help:"physical address width: 16, 18, 22 or 24"`

	Count int `name:"count" default:"20" help:"number of instructions to list"`
}

func (d *disasmCmd) Run(log *logrus.Entry) error {
	pdp, err := NewPDP11(Config{Bits: d.Bits}, io.Discard, log)
	if err != nil {
		return err
	}
	defer pdp.Close()
	a, err := loadProgram(pdp.cpu, d.Load, d.Raw, d.StartAddr)
	if err != nil {
		return err
	}
	for i := 0; i < d.Count; i++ {
		asm, next := pdp.cpu.disasm(a)
		var words string
		for w := a; w != next; w += 2 {
			v, _ := pdp.unibus.peek16(pdp.unibus.physical(w))
			words += fmt.Sprintf(" %06o", v)
		}
		fmt.Printf("%06o:%-22s %s\n", a, words, asm)
		a = next
	}
	return nil
}

// Config describes the machine to build.
type Config struct {
	Bits    uint   // physical address width
	Console uint16 // CPU address of the console registers; 0 for 177560
	RK0     string // image for RK0, if any
}

// PDP11 is a processor and its peripherals on one UNIBUS.
type PDP11 struct {
	unibus *UNIBUS
	cpu    *KB11
	cons   *KL11
	clock  *KW11
	rk11   *RK11
}

// NewPDP11 builds a reset machine whose console prints to out.
func NewPDP11(cfg Config, out io.Writer, log *logrus.Entry) (*PDP11, error) {
	if cfg.Console == 0 {
		cfg.Console = 0177560
	}
	u, err := NewUNIBUS(cfg.Bits)
	if err != nil {
		return nil, err
	}
	cpu, err := NewKB11(u, log)
	if err != nil {
		return nil, err
	}
	pdp := &PDP11{
		unibus: u,
		cpu:    cpu,
		cons:   NewKL11(out, log),
		clock:  NewKW11(log),
		rk11:   NewRK11(log),
	}
	if err := pdp.cons.Attach(u, cfg.Console); err != nil {
		return nil, fmt.Errorf("console at %06o: %w", cfg.Console, err)
	}
	if err := pdp.clock.Attach(u, 0177546); err != nil {
		return nil, err
	}
	if err := pdp.rk11.Attach(u, 0177400); err != nil {
		return nil, err
	}
	if cfg.RK0 != "" {
		if err := pdp.rk11.Mount(0, cfg.RK0); err != nil {
			return nil, err
		}
	}
	cpu.Reset()
	log.WithFields(logrus.Fields{
		"bits":    cfg.Bits,
		"memory":  strconv.Itoa(int(u.IOPage())/1024) + "K",
		"console": fmt.Sprintf("%06o", cfg.Console),
	}).Debug("machine built")
	return pdp, nil
}

// Close stops the clock, releases the console and writes back disks.
func (p *PDP11) Close() error {
	p.clock.Stop()
	p.cons.Close()
	return p.rk11.Sync()
}
