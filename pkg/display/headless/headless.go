// Package headless provides a display driver that runs the
// interpreter without any output, optionally saving a
// screenshot of the last frame when it stops.
package headless

import (
	"errors"
	"image"
	"sync"
	"time"

	"github.com/thelolagemann/gochip8/internal/framebuffer"
	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/pkg/display"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	"github.com/thelolagemann/gochip8/pkg/log"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

func init() {
	display.Install("headless", driver, Options(driver))
}

var driver = New()

// Driver runs until the emulator quits, a number of frames
// have been received, or a duration has elapsed.
type Driver struct {
	frames     int
	duration   float64 // seconds
	screenshot string
	scale      int

	emu  display.Emulator
	log  log.Logger
	last []byte

	stop     chan struct{}
	stopOnce sync.Once
	mu       sync.Mutex
}

// New returns a headless driver that runs until stopped.
func New() *Driver {
	return &Driver{
		scale: 8,
		log:   log.New(),
		stop:  make(chan struct{}),
	}
}

// Options returns the configurable options of d.
func Options(d *Driver) []display.DriverOption {
	return []display.DriverOption{
		{
			Name:        "frames",
			Default:     0,
			Value:       &d.frames,
			Type:        "int",
			Description: "Stop after this many frames have been drawn (0 runs forever)",
		},
		{
			Name:        "duration",
			Default:     0.0,
			Value:       &d.duration,
			Type:        "float",
			Description: "Stop after this many seconds (0 runs forever)",
		},
		{
			Name:        "screenshot",
			Default:     "",
			Value:       &d.screenshot,
			Type:        "string",
			Description: "Save the last frame as a PNG to this path when stopping",
		},
		{
			Name:        "scale",
			Default:     8,
			Value:       &d.scale,
			Type:        "int",
			Description: "Scale the screenshot by this factor",
		},
	}
}

// WithLimits sets the number of frames and the duration after
// which Start returns.
func (d *Driver) WithLimits(frames int, duration time.Duration) *Driver {
	d.frames, d.duration = frames, duration.Seconds()
	return d
}

// WithScreenshot saves the last frame to path, scaled by scale,
// when Start returns.
func (d *Driver) WithScreenshot(path string, scale int) *Driver {
	d.screenshot, d.scale = path, scale
	return d
}

// WithLogger sets the logger used to report events.
func (d *Driver) WithLogger(l log.Logger) *Driver {
	d.log = l
	return d
}

func (d *Driver) Initialize(emu display.Emulator) {
	d.emu = emu
}

// Start consumes frames and events until one of the limits is
// reached, then closes the emulator.
func (d *Driver) Start(fb <-chan []byte, events <-chan event.Event, pressed, released chan<- keypad.Key) error {
	var timeout <-chan time.Time
	if d.duration > 0 {
		t := time.NewTimer(time.Duration(d.duration * float64(time.Second)))
		defer t.Stop()
		timeout = t.C
	}

	var (
		frames int
		fault  error
	)

loop:
	for {
		select {
		case <-d.stop:
			break loop
		case <-timeout:
			break loop
		case f := <-fb:
			d.mu.Lock()
			d.last = append(d.last[:0], f...)
			d.mu.Unlock()

			frames++
			if d.frames > 0 && frames >= d.frames {
				break loop
			}
		case e := <-events:
			switch e.Type {
			case event.Quit:
				break loop
			case event.Title:
				d.log.Debugf("%s", e.Data)
			case event.Fault:
				err, _ := e.Data.(error)
				d.log.Errorf("interpreter stopped: %v", err)
				fault = err
			}
		}
	}

	if d.emu != nil {
		d.emu.SendCommand(display.Close)
	}

	var err error
	if d.screenshot != "" {
		var path string
		if path, err = utils.SavePNG(d.Image(), d.screenshot, d.scale); err == nil {
			d.log.Infof("saved screenshot to %s", path)
		}
	}

	return errors.Join(fault, err)
}

func (d *Driver) Stop() error {
	d.stopOnce.Do(func() {
		close(d.stop)
	})
	return nil
}

// Image returns the last frame received, or a blank frame if
// none has been received.
func (d *Driver) Image() *image.Gray {
	d.mu.Lock()
	defer d.mu.Unlock()

	img := image.NewGray(image.Rect(0, 0, framebuffer.Width, framebuffer.Height))
	for i, p := range d.last {
		if i < len(img.Pix) && p != 0 {
			img.Pix[i] = 0xFF
		}
	}
	return img
}
