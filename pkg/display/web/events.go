package web

// Event is the first byte of a message sent by a client.
type Event = uint8

const (
	_ Event = iota
	// KeyEvent presses or releases a key: [KeyEvent, state, rune...],
	// where rune is the UTF-8 encoded keyboard key, mapped
	// through keypad.DefaultKeyMap.
	KeyEvent
	// Control sends a command to the emulator: [Control, ControlEvent].
	Control
	KeepAlive = 254
	Closing   = 255
)

// ControlEvent is the second byte of a Control message.
type ControlEvent = uint8

const (
	ControlPause ControlEvent = iota
	ControlResume
	ControlReset
)

// Type is the first byte of a message sent to a client.
type Type = uint8

const (
	// Frame carries a frame and the cache slot it was stored in:
	// [Frame, slot lo, slot hi, data...].
	Frame Type = iota
	// FrameCache repeats the frame stored in a cache slot:
	// [FrameCache, slot lo, slot hi].
	FrameCache
	// FrameSync carries the current frame to a new client,
	// without touching the cache: [FrameSync, data...].
	FrameSync
	// CacheSync carries every cache slot to a new client:
	// [CacheSync, {slot lo, slot hi, len lo, len hi, data...}...].
	CacheSync
	// ClientInfo tells a client its ID and settings:
	// [ClientInfo, id, info].
	ClientInfo
	// ServerInfo periodically reports the latency of every
	// client: [ServerInfo, {id, latency lo, latency hi}...].
	ServerInfo
	// Title, Sound and Fault forward emulator events. Title and
	// Fault carry text.
	Title
	Sound
	Fault
)
