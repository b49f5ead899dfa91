package chip8

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/thelolagemann/gochip8/internal/cpu"
	"github.com/thelolagemann/gochip8/internal/framebuffer"
	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/memory"
	"github.com/thelolagemann/gochip8/internal/timer"
	"github.com/thelolagemann/gochip8/internal/types"
)

const stateVersion = 1

var stateMagic = []byte("CH8S")

// ErrInvalidState is returned when restoring from data that
// is not a save state of this version.
var ErrInvalidState = errors.New("chip8: invalid save state")

// Save returns a save state of the VM.
func (v *VM) Save() []byte {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.save()
}

func (v *VM) save() []byte {
	st := types.NewState()
	st.WriteData(stateMagic)
	st.Write8(stateVersion)

	st.WriteBool(v.loaded)
	st.WriteBool(v.CPU.Quirks.IndexOverflowFlag)
	st.Write8(uint8(v.Timers.Mode()))
	st.Write8(uint8(v.Keypad.Policy()))

	for _, c := range v.components() {
		c.Save(st)
	}

	return st.Bytes()
}

// Restore restores the VM from a save state. The program in
// the save state replaces the one used by Reset. If b is not
// a valid save state the VM is left unchanged.
func (v *VM) Restore(b []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.restore(b)
}

func (v *VM) restore(b []byte) error {
	if len(b) < len(stateMagic)+1 || !bytes.Equal(b[:len(stateMagic)], stateMagic) {
		return ErrInvalidState
	}
	if version := b[len(stateMagic)]; version != stateVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidState, version)
	}

	// restoring is not atomic, so keep the current state
	// around to roll back to
	previous := v.save()

	st := types.StateFromBytes(b[len(stateMagic)+1:])
	if err := v.loadState(st); err != nil {
		prev := types.StateFromBytes(previous[len(stateMagic)+1:])
		_ = v.loadState(prev)
		return fmt.Errorf("%w: %s", ErrInvalidState, err)
	}

	if v.loaded {
		region, _ := v.Memory.Slice(memory.ProgramStart, memory.MaxProgramSize)
		v.program = append([]byte(nil), region...)
	}
	v.fault = nil
	return nil
}

// loadState reads the components from st.
func (v *VM) loadState(st *types.State) error {
	loaded := st.ReadBool()
	v.CPU.Quirks.IndexOverflowFlag = st.ReadBool()
	v.Timers.SetMode(timer.Mode(st.Read8()))
	v.Keypad.SetPolicy(keypad.Policy(st.Read8()))

	for _, c := range v.components() {
		c.Load(st)
	}

	if err := st.Err(); err != nil {
		return err
	}
	if st.Remaining() != 0 {
		return fmt.Errorf("%d trailing bytes", st.Remaining())
	}
	if v.Framebuffer.WrapMode() > framebuffer.WrapAxis {
		return fmt.Errorf("unknown wrap mode %d", v.Framebuffer.WrapMode())
	}
	if int(v.CPU.SP) > cpu.StackSize {
		return fmt.Errorf("stack pointer %d out of range", v.CPU.SP)
	}

	v.loaded = loaded
	return nil
}
