package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/thelolagemann/gochip8/internal/chip8"
	"github.com/thelolagemann/gochip8/internal/cpu"
	"github.com/thelolagemann/gochip8/internal/disasm"
	"github.com/thelolagemann/gochip8/internal/framebuffer"
	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/memory"
	"github.com/thelolagemann/gochip8/internal/timer"
	"github.com/thelolagemann/gochip8/pkg/display"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	_ "github.com/thelolagemann/gochip8/pkg/display/headless"
	_ "github.com/thelolagemann/gochip8/pkg/display/web"
	"github.com/thelolagemann/gochip8/pkg/emulator"
	"github.com/thelolagemann/gochip8/pkg/log"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

var (
	_ display.Emulator    = &chip8.VM{}
	_ emulator.Controller = &chip8.VM{}
)

// config holds the command line configuration.
type config struct {
	rom       string
	state     string
	save      bool
	driver    string
	speed     float64
	debug     bool
	wrap      string
	keys      string
	timers    string
	indexFlag bool
	disasm    bool
	stats     bool
}

func (c *config) register(fs *flag.FlagSet) {
	fs.StringVar(&c.rom, "rom", "", "The rom file to load")
	fs.StringVar(&c.state, "state", "", "The state file to load, or auto to use the state saved next to the rom")
	fs.BoolVar(&c.save, "save", false, "Save the state next to the rom on exit")
	fs.StringVar(&c.driver, "driver", "auto", "The display driver to use. Can be auto, "+strings.Join(display.Names(), ", "))
	fs.Float64Var(&c.speed, "speed", chip8.DefaultSpeed, "The number of instructions executed per second")
	fs.BoolVar(&c.debug, "debug", false, "Log every executed instruction")
	fs.StringVar(&c.wrap, "wrap", "linear", "How sprites wrap around the screen. Can be linear or axis")
	fs.StringVar(&c.keys, "keys", "level", "Whether skipping on a key consumes it. Can be level or edge")
	fs.StringVar(&c.timers, "timers", "step", "What decrements the timers. Can be step or frame")
	fs.BoolVar(&c.indexFlag, "index-flag", false, "Set VF when ADD I, Vx overflows")
	fs.BoolVar(&c.disasm, "disasm", false, "Print a listing of the rom and exit")
	fs.BoolVar(&c.stats, "stats", false, "Serve runtime statistics on "+statsAddress)
}

// options converts the configuration into VM options.
func (c *config) options(logger log.Logger) ([]chip8.Opt, error) {
	opts := []chip8.Opt{
		chip8.WithLogger(logger),
		chip8.Speed(c.speed),
		chip8.WithQuirks(cpu.Quirks{IndexOverflowFlag: c.indexFlag}),
	}
	if c.debug {
		opts = append(opts, chip8.Debug())
	}

	switch strings.ToLower(c.wrap) {
	case "linear":
		opts = append(opts, chip8.WithWrapMode(framebuffer.WrapLinear))
	case "axis":
		opts = append(opts, chip8.WithWrapMode(framebuffer.WrapAxis))
	default:
		return nil, fmt.Errorf("invalid wrap mode %q", c.wrap)
	}

	switch strings.ToLower(c.keys) {
	case "level":
		opts = append(opts, chip8.WithKeyPolicy(keypad.LevelTriggered))
	case "edge":
		opts = append(opts, chip8.WithKeyPolicy(keypad.EdgeTriggered))
	default:
		return nil, fmt.Errorf("invalid key policy %q", c.keys)
	}

	switch strings.ToLower(c.timers) {
	case "step":
		opts = append(opts, chip8.WithTimerMode(timer.PerStep))
	case "frame":
		opts = append(opts, chip8.WithTimerMode(timer.Decoupled))
	default:
		return nil, fmt.Errorf("invalid timer mode %q", c.timers)
	}

	return opts, nil
}

// stateFile returns the save state to load, if any.
func (c *config) stateFile() *emulator.StateFile {
	switch c.state {
	case "":
		return nil
	case "auto":
		if c.rom == "" {
			return nil
		}
		if sf := emulator.StateFileFor(c.rom); sf.Exists() {
			return sf
		}
		return nil
	}
	return &emulator.StateFile{Path: c.state}
}

// listing writes a disassembly of the rom to w.
func listing(w io.Writer, rom []byte) error {
	for _, line := range disasm.Program(rom, memory.ProgramStart) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	var logger = log.New()

	if len(display.InstalledDrivers) == 0 {
		logger.Fatal("No display drivers installed. Please compile with at least one display driver")
	}

	var cfg config
	cfg.register(flag.CommandLine)
	display.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if cfg.debug {
		logger = log.NewWithLevel(true)
	}
	if cfg.stats {
		launchStats(os.Stderr)
	}

	var rom []byte
	var err error
	if cfg.rom != "" {
		// open the rom file
		rom, err = utils.LoadFile(cfg.rom)
		if err != nil {
			logger.Fatal(err.Error())
		}
	}

	if cfg.disasm {
		if err := listing(os.Stdout, rom); err != nil {
			logger.Fatal(err.Error())
		}
		return
	}

	opts, err := cfg.options(logger)
	if err != nil {
		logger.Fatal(err.Error())
	}
	if rom != nil {
		opts = append(opts, chip8.WithProgram(rom))
	}
	if sf := cfg.stateFile(); sf != nil {
		state, err := sf.Read()
		if err != nil {
			logger.Fatal(err.Error())
		}
		opts = append(opts, chip8.WithState(state))
	}

	vm := chip8.New(opts...)

	driver := display.GetDriver(cfg.driver)
	// check to make sure the driver is valid
	if driver == nil {
		logger.Fatal("invalid display driver")
	}

	// attach vm to driver
	driver.Initialize(vm)

	// create framebuffer
	fb := make(chan []byte, 60)

	// create various channels
	events := make(chan event.Event, 60)
	pressed := make(chan keypad.Key, 10)
	released := make(chan keypad.Key, 10)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = driver.Stop()
	}()

	// start vm in a goroutine
	go func() {
		if err := vm.Start(ctx, fb, events, pressed, released); err != nil && ctx.Err() == nil {
			logger.Errorf("%s", err)
		}
	}()

	if err := driver.Start(fb, events, pressed, released); err != nil {
		logger.Errorf("%s", err)
	}
	vm.Close()

	if cfg.save && cfg.rom != "" && vm.Loaded() {
		sf := emulator.StateFileFor(cfg.rom)
		if err := sf.Write(vm.Save()); err != nil {
			logger.Errorf("unable to save state: %s", err)
		} else {
			logger.Infof("saved state to %s", sf.Path)
		}
	}
}
