package main

import (
	"bytes"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thelolagemann/gochip8/internal/chip8"
	"github.com/thelolagemann/gochip8/internal/framebuffer"
	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/timer"
	"github.com/thelolagemann/gochip8/pkg/display"
	"github.com/thelolagemann/gochip8/pkg/emulator"
	"github.com/thelolagemann/gochip8/pkg/log"
)

func parse(t *testing.T, args ...string) *config {
	t.Helper()
	var cfg config
	fs := flag.NewFlagSet("gochip8", flag.ContinueOnError)
	cfg.register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return &cfg
}

func TestConfig_Defaults(t *testing.T) {
	cfg := parse(t)
	opts, err := cfg.options(log.NewNullLogger())
	if err != nil {
		t.Fatal(err)
	}

	vm := chip8.New(opts...)
	if vm.Speed() != chip8.DefaultSpeed {
		t.Errorf("expected default speed, got %f", vm.Speed())
	}
	if vm.Framebuffer.WrapMode() != framebuffer.WrapLinear {
		t.Errorf("expected linear wrap")
	}
	if vm.Keypad.Policy() != keypad.LevelTriggered {
		t.Errorf("expected level triggered keys")
	}
	if vm.Timers.Mode() != timer.PerStep {
		t.Errorf("expected per step timers")
	}
	if vm.CPU.Quirks.IndexOverflowFlag || vm.CPU.Debug {
		t.Errorf("expected no quirks and no debug")
	}
}

func TestConfig_Options(t *testing.T) {
	cfg := parse(t, "-speed", "1200", "-wrap", "axis", "-keys", "EDGE", "-timers", "frame", "-index-flag", "-debug")
	opts, err := cfg.options(log.NewNullLogger())
	if err != nil {
		t.Fatal(err)
	}

	vm := chip8.New(opts...)
	if vm.Speed() != 1200 {
		t.Errorf("expected speed 1200, got %f", vm.Speed())
	}
	if vm.Framebuffer.WrapMode() != framebuffer.WrapAxis {
		t.Errorf("expected axis wrap")
	}
	if vm.Keypad.Policy() != keypad.EdgeTriggered {
		t.Errorf("expected edge triggered keys")
	}
	if vm.Timers.Mode() != timer.Decoupled {
		t.Errorf("expected decoupled timers")
	}
	if !vm.CPU.Quirks.IndexOverflowFlag || !vm.CPU.Debug {
		t.Errorf("expected index flag quirk and debug")
	}
}

func TestConfig_Invalid(t *testing.T) {
	for _, args := range [][]string{
		{"-wrap", "diagonal"},
		{"-keys", "sticky"},
		{"-timers", "never"},
	} {
		if _, err := parse(t, args...).options(log.NewNullLogger()); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestConfig_StateFile(t *testing.T) {
	dir := t.TempDir()
	rom := filepath.Join(dir, "pong.ch8")

	if sf := parse(t).stateFile(); sf != nil {
		t.Errorf("expected no state file")
	}
	if sf := parse(t, "-rom", rom, "-state", "auto").stateFile(); sf != nil {
		t.Errorf("expected no state file before one is saved")
	}
	if err := emulator.StateFileFor(rom).Write([]byte("state")); err != nil {
		t.Fatal(err)
	}
	sf := parse(t, "-rom", rom, "-state", "auto").stateFile()
	if sf == nil || sf.Path != filepath.Join(dir, "pong.state") {
		t.Errorf("expected pong.state, got %v", sf)
	}
	if sf := parse(t, "-state", "other.state").stateFile(); sf == nil || sf.Path != "other.state" {
		t.Errorf("expected other.state, got %v", sf)
	}
}

func TestListing(t *testing.T) {
	var b bytes.Buffer
	if err := listing(&b, []byte{0x00, 0xE0, 0x12, 0x00, 0xFF}); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), b.String())
	}
	if !strings.HasPrefix(lines[0], "200: 00E0") || !strings.Contains(lines[1], "JP") {
		t.Errorf("unexpected listing:\n%s", b.String())
	}
}

func TestDrivers(t *testing.T) {
	for _, name := range []string{"headless", "web"} {
		if display.GetDriver(name) == nil {
			t.Errorf("expected %s driver to be installed", name)
		}
	}
}
