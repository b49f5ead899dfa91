package emulator

// CommandPacket is a command packet that is sent to the
// emulator to control it.
type CommandPacket struct {
	Command Command
	Data    []byte
}

// Command is a command that is sent to the emulator to
// control it.
type Command int

// ResponsePacket is a response packet that is sent
// from the emulator to the client.
type ResponsePacket struct {
	Command Command
	Data    []byte
	Error   error
}

const (
	// CommandPause pauses the emulator.
	CommandPause Command = iota
	// CommandResume resumes the emulator.
	CommandResume
	// CommandClose closes the emulator.
	CommandClose
	// CommandReset resets the emulator.
	CommandReset
	// CommandLoadROM loads the program image in Data into the emulator.
	CommandLoadROM
	// CommandLoadSave restores the save state in Data.
	CommandLoadSave
	// CommandSaveState responds with a save state of the
	// emulator in Data.
	CommandSaveState
	// CommandSetSpeed sets the speed of the emulator to the
	// little-endian float64 in Data.
	CommandSetSpeed
)

func (c Command) String() string {
	switch c {
	case CommandPause:
		return "Pause"
	case CommandResume:
		return "Resume"
	case CommandClose:
		return "Close"
	case CommandReset:
		return "Reset"
	case CommandLoadROM:
		return "LoadROM"
	case CommandLoadSave:
		return "LoadSave"
	case CommandSaveState:
		return "SaveState"
	case CommandSetSpeed:
		return "SetSpeed"
	default:
		return "Unknown"
	}
}
