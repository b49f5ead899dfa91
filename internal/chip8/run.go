package chip8

import (
	"context"
	"fmt"
	"time"

	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/timer"
	"github.com/thelolagemann/gochip8/pkg/display/event"
)

// FrameRate is the number of frames Start runs per second.
const FrameRate = int(time.Second / timer.Rate)

// frame is the result of running a single frame.
type frame struct {
	pixels []byte // nil if the framebuffer did not change
	sound  bool
	fault  error
}

// Start runs the VM in real time until ctx is cancelled or
// the VM is closed. Every frame it executes Speed/FrameRate
// instructions, sends the framebuffer to fb when it changed and
// reports events on events. Key presses and releases are read
// from pressed and released.
func (v *VM) Start(ctx context.Context, fb chan<- []byte, events chan<- event.Event, pressed, released <-chan keypad.Key) error {
	ticker := time.NewTicker(timer.Rate)
	defer ticker.Stop()
	stats := time.NewTicker(time.Second)
	defer stats.Stop()

	var (
		frames     int
		frameTime  time.Duration
		lastFrame  = time.Now()
		lastCount  = v.Executed()
		budget     float64
		faultFired bool
	)

	defer func() {
		send(events, event.Event{Type: event.Quit})
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-v.closed:
			return nil
		case k := <-pressed:
			if err := v.SetKey(k, true); err != nil {
				v.Logger.Errorf("unable to press key: %s", err)
			}
		case k := <-released:
			if err := v.SetKey(k, false); err != nil {
				v.Logger.Errorf("unable to release key: %s", err)
			}
		case now := <-ticker.C:
			frames++
			frameTime += now.Sub(lastFrame)
			lastFrame = now

			var f frame
			f, budget = v.runFrame(budget)

			if f.pixels != nil {
				select {
				case fb <- f.pixels:
				default:
					// the driver is behind, drop the frame
				}
			}
			if f.sound {
				send(events, event.Event{Type: event.Sound})
			}
			if f.fault != nil && !faultFired {
				faultFired = true
				send(events, event.Event{Type: event.Fault, Data: f.fault})
			} else if f.fault == nil {
				faultFired = false
			}
		case <-stats.C:
			executed := v.Executed()
			ips := executed - lastCount
			if executed < lastCount {
				// the program was reloaded
				ips = executed
			}
			lastCount = executed

			send(events, event.Event{Type: event.Title, Data: fmt.Sprintf("gochip8 | %s | %d IPS", v.Status(), ips)})
			if frames > 0 {
				send(events, event.Event{Type: event.FrameTime, Data: frameTime / time.Duration(frames)})
			}
			frames, frameTime = 0, 0
		}
	}
}

// runFrame executes a single frame worth of instructions. The
// fractional part of the instructions per frame is carried over
// in budget, so speeds that are not a multiple of FrameRate are
// honoured on average.
func (v *VM) runFrame(budget float64) (frame, float64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	var f frame
	if !v.loaded || v.paused {
		return f, 0
	}

	budget += v.speed / float64(FrameRate)
	for ; budget >= 1; budget-- {
		if err := v.step(); err != nil {
			f.fault = err
			budget = 0
			break
		}
		if v.Timers.SoundActive() {
			f.sound = true
		}
	}

	if v.Timers.Mode() == timer.Decoupled && f.fault == nil {
		v.Timers.Tick()
		if v.Timers.SoundActive() {
			f.sound = true
		}
	}

	if _, dirty := v.Framebuffer.Poll(); dirty {
		f.pixels = v.Framebuffer.Bytes()
	}

	return f, budget
}

// send delivers e without blocking the VM on a slow driver.
func send(events chan<- event.Event, e event.Event) {
	select {
	case events <- e:
	default:
	}
}
