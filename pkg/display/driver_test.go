package display

import (
	"flag"
	"testing"

	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/pkg/display/event"
)

type testDriver struct {
	addr    string
	scale   int
	verbose bool
}

func (t *testDriver) Initialize(Emulator) {}
func (t *testDriver) Start(<-chan []byte, <-chan event.Event, chan<- keypad.Key, chan<- keypad.Key) error {
	return nil
}
func (t *testDriver) Stop() error { return nil }

func withDrivers(t *testing.T) (*testDriver, *testDriver) {
	t.Helper()
	installed := InstalledDrivers
	t.Cleanup(func() { InstalledDrivers = installed })
	InstalledDrivers = nil

	a, b := &testDriver{}, &testDriver{}
	Install("a", a, []DriverOption{
		{Name: "addr", Default: ":8090", Value: &a.addr, Type: "string"},
		{Name: "verbose", Default: false, Value: &a.verbose, Type: "bool"},
	})
	Install("b", b, []DriverOption{
		{Name: "scale", Default: 4, Value: &b.scale, Type: "int"},
		{Name: "verbose", Default: false, Value: &b.verbose, Type: "bool"},
	})
	return a, b
}

func TestGetDriver(t *testing.T) {
	a, b := withDrivers(t)

	if GetDriver("auto") != a {
		t.Errorf("expected auto to select the first driver")
	}
	if GetDriver("b") != b {
		t.Errorf("expected driver b")
	}
	if GetDriver("c") != nil {
		t.Errorf("expected nil for an unknown driver")
	}
	if names := Names(); len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("unexpected driver names %v", names)
	}
}

func TestRegisterFlags(t *testing.T) {
	a, b := withDrivers(t)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(fs)

	if err := fs.Parse([]string{"-a-addr", ":9000", "-b-scale", "8", "-verbose"}); err != nil {
		t.Fatal(err)
	}
	if a.addr != ":9000" {
		t.Errorf("expected addr :9000, got %s", a.addr)
	}
	if b.scale != 8 {
		t.Errorf("expected scale 8, got %d", b.scale)
	}
	// shared options set every driver
	if !a.verbose || !b.verbose {
		t.Errorf("expected verbose to be set on both drivers")
	}
}

func TestRegisterFlags_Defaults(t *testing.T) {
	a, b := withDrivers(t)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if a.addr != ":8090" || b.scale != 4 || a.verbose || b.verbose {
		t.Errorf("expected defaults, got %+v %+v", a, b)
	}
}
