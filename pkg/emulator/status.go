package emulator

// Status represents the status of the emulator's
// CPU. It can be one of the following:
//
//   - Running
//   - Halted
//   - Paused
//   - Errored
type Status int

const (
	// Running represents the status of the
	// CPU when it is running.
	Running Status = iota
	// Halted represents the status of the
	// CPU when it has halted.
	Halted
	// Errored represents the status of the
	// CPU when it has encountered an unexpected
	// error.
	Errored
	// Paused represents the status of the CPU
	// when it has been paused by the user.
	Paused
)

func (s Status) String() string {
	switch s {
	case Running:
		return "Running"
	case Halted:
		return "Halted"
	case Errored:
		return "Errored"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

func (s Status) IsRunning() bool {
	return s == Running
}

func (s Status) IsHalted() bool {
	return s == Halted
}

func (s Status) IsErrored() bool {
	return s == Errored
}

func (s Status) IsPaused() bool {
	return s == Paused
}
