package emulator

import (
	"os"
	"path/filepath"
	"strings"
)

// StateExtension is the file extension of save states.
const StateExtension = ".state"

// StateFile represents a save state stored on disk.
type StateFile struct {
	Path string // the path to the save state
}

// StateFileFor returns the StateFile that belongs to the given
// ROM, stored next to it with the ROM's extension replaced.
func StateFileFor(romPath string) *StateFile {
	base := strings.TrimSuffix(romPath, filepath.Ext(romPath))
	return &StateFile{Path: base + StateExtension}
}

// Exists reports whether the save state has been written.
func (s *StateFile) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// Read returns the contents of the save state.
func (s *StateFile) Read() ([]byte, error) {
	return os.ReadFile(s.Path)
}

// Write replaces the save state with b. The data is written
// to a temporary file first, which is then renamed over the
// original, so a failed write never leaves a truncated state.
func (s *StateFile) Write(b []byte) error {
	f, err := os.CreateTemp(filepath.Dir(s.Path), filepath.Base(s.Path)+".*")
	if err != nil {
		return err
	}

	// write bytes to file
	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), s.Path)
}
