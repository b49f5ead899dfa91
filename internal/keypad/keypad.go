// Package keypad provides the 16 key hexadecimal keypad. The
// host presses and releases keys between instructions, and
// the processor tests them.
package keypad

import (
	"fmt"

	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

// Key is the index of a key on the keypad, 0x0 through 0xF.
type Key = uint8

// KeyCount is the number of keys on the keypad.
const KeyCount = 16

// ErrInvalidKey is returned when a key index is outside of
// the keypad.
var ErrInvalidKey = fmt.Errorf("keypad: invalid key: %w", types.ErrOutOfBounds)

// Policy determines whether testing a key consumes it.
type Policy uint8

const (
	// LevelTriggered keys stay down until the host releases them.
	LevelTriggered Policy = iota
	// EdgeTriggered keys are released as soon as an instruction
	// observes them being down.
	EdgeTriggered
)

func (p Policy) String() string {
	switch p {
	case LevelTriggered:
		return "level"
	case EdgeTriggered:
		return "edge"
	}
	return "unknown"
}

// State represents the state of the keypad.
type State struct {
	keys   [KeyCount]bool
	policy Policy
}

// New returns a new keypad with every key released.
func New(policy Policy) *State {
	return &State{policy: policy}
}

func (s *State) Policy() Policy { return s.policy }

func (s *State) SetPolicy(policy Policy) { s.policy = policy }

// Press presses a key.
func (s *State) Press(k Key) error {
	return s.Set(k, true)
}

// Release releases a key.
func (s *State) Release(k Key) error {
	return s.Set(k, false)
}

// Set sets whether a key is down.
func (s *State) Set(k Key, down bool) error {
	if k >= KeyCount {
		return ErrInvalidKey
	}
	s.keys[k] = down
	return nil
}

// IsDown reports whether k is down.
func (s *State) IsDown(k Key) (bool, error) {
	if k >= KeyCount {
		return false, ErrInvalidKey
	}
	return s.keys[k], nil
}

// FirstDown returns the lowest key that is down, if any.
func (s *State) FirstDown() (Key, bool) {
	for k, down := range s.keys {
		if down {
			return Key(k), true
		}
	}
	return 0, false
}

// Consume is called when an instruction has observed k being
// down. Under EdgeTriggered the key is released.
func (s *State) Consume(k Key) {
	if s.policy == EdgeTriggered && k < KeyCount {
		s.keys[k] = false
	}
}

// Reset releases every key.
func (s *State) Reset() {
	s.keys = [KeyCount]bool{}
}

var _ types.Stater = (*State)(nil)

func (s *State) Load(st *types.State) {
	b := st.Read16()
	for k := range s.keys {
		s.keys[k] = utils.TestBit(b, uint8(k))
	}
}

func (s *State) Save(st *types.State) {
	var b uint16
	for k, down := range s.keys {
		if down {
			b = utils.SetBit(b, uint8(k))
		}
	}
	st.Write16(b)
}
