package chip8

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/thelolagemann/gochip8/pkg/emulator"
)

// SendCommand sends a command packet to the VM, and returns
// its response.
func (v *VM) SendCommand(command emulator.CommandPacket) emulator.ResponsePacket {
	resp := emulator.ResponsePacket{Command: command.Command}

	switch command.Command {
	case emulator.CommandPause:
		v.Pause()
	case emulator.CommandResume:
		v.Resume()
	case emulator.CommandClose:
		v.Close()
	case emulator.CommandReset:
		resp.Error = v.Reset()
	case emulator.CommandLoadROM:
		resp.Error = v.Load(command.Data)
	case emulator.CommandLoadSave:
		resp.Error = v.Restore(command.Data)
	case emulator.CommandSaveState:
		resp.Data = v.Save()
	case emulator.CommandSetSpeed:
		if len(command.Data) != 8 {
			resp.Error = fmt.Errorf("chip8: speed must be 8 bytes, got %d", len(command.Data))
			break
		}
		v.SetSpeed(math.Float64frombits(binary.LittleEndian.Uint64(command.Data)))
	default:
		resp.Error = fmt.Errorf("chip8: unknown command %s", command.Command)
	}

	return resp
}

// SpeedCommand returns a command packet that sets the speed
// of the VM to speed.
func SpeedCommand(speed float64) emulator.CommandPacket {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, math.Float64bits(speed))
	return emulator.CommandPacket{Command: emulator.CommandSetSpeed, Data: data}
}
