package web

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
	"github.com/gorilla/websocket"
	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/display"
	"github.com/thelolagemann/gochip8/pkg/emulator"
	"github.com/thelolagemann/gochip8/pkg/log"
)

// hub owns every connected client, and the state new clients
// are synchronised with. Apart from the channels, its fields
// are only touched by run.
type hub struct {
	clients map[*Client]bool

	register, unregister chan *Client
	frames, broadcast    chan []byte
	done                 chan struct{}
	closeOnce            sync.Once

	emu               display.Emulator
	log               log.Logger
	pressed, released chan<- keypad.Key

	quality int
	// caches are indexed by whether their frames are compressed
	caches  [2]*cache
	current []byte // packed

	currentID uint8
	mu        sync.Mutex
}

func newHub(emu display.Emulator, logger log.Logger, pressed, released chan<- keypad.Key, cacheSize, quality int) *hub {
	return &hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		frames:     make(chan []byte),
		broadcast:  make(chan []byte),
		done:       make(chan struct{}),
		emu:        emu,
		log:        logger,
		pressed:    pressed,
		released:   released,
		quality:    quality,
		caches:     [2]*cache{newCache(cacheSize), newCache(cacheSize)},
	}
}

func (h *hub) run() {
	t := time.NewTicker(time.Second)
	defer t.Stop()

	for {
		select {
		case <-h.done:
			for c := range h.clients {
				h.drop(c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
			h.sync(c)
		case c := <-h.unregister:
			if h.clients[c] {
				h.drop(c)
			}
		case f := <-h.frames:
			h.frame(f)
		case msg := <-h.broadcast:
			for c := range h.clients {
				h.send(c, msg)
			}
		case <-t.C:
			// build information
			var data []byte
			for c := range h.clients {
				data = append(data, c.ID)
				data = binary.LittleEndian.AppendUint16(data, c.latency())
			}

			for c := range h.clients {
				h.send(c, append([]byte{ServerInfo}, data...))
			}
		}
	}
}

// close stops run, disconnecting every client.
func (h *hub) close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

// join creates a client for conn and registers it, returning
// nil if the hub has closed.
func (h *hub) join(conn *websocket.Conn, compression bool) *Client {
	h.mu.Lock()
	h.currentID++
	id := h.currentID
	h.mu.Unlock()

	c := &Client{
		hub:         h,
		conn:        conn,
		Send:        make(chan []byte, 256),
		ID:          id,
		compression: compression,
	}

	select {
	case h.register <- c:
		return c
	case <-h.done:
		return nil
	}
}

func (h *hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// push hands a frame from the emulator to run.
func (h *hub) push(frame []byte) {
	select {
	case h.frames <- frame:
	case <-h.done:
	}
}

// publish sends msg to every client.
func (h *hub) publish(msg []byte) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

func (h *hub) key(k keypad.Key, down bool) {
	ch := h.released
	if down {
		ch = h.pressed
	}
	select {
	case ch <- k:
	case <-h.done:
	}
}

func (h *hub) control(c *Client, e ControlEvent) {
	if h.emu == nil {
		return
	}

	var packet emulator.CommandPacket
	switch e {
	case ControlPause:
		packet = display.Pause
	case ControlResume:
		packet = display.Resume
	case ControlReset:
		packet = display.Reset
	default:
		h.log.Errorf("client %d sent unknown control %d", c.ID, e)
		return
	}

	if resp := h.emu.SendCommand(packet); resp.Error != nil {
		h.log.Errorf("client %d: %s: %s", c.ID, packet.Command, resp.Error)
	}
}

// send queues msg for c, dropping the client if it has fallen
// too far behind.
func (h *hub) send(c *Client, msg []byte) {
	select {
	case c.Send <- msg:
	default:
		h.drop(c)
	}
}

func (h *hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.Send)
}

// info returns a byte of information about the hub for c. The
// byte is constructed as follows:
//
//	Bit 0: Frames are compressed
//	Bit 1: Emulator paused
//	Bit 2: Emulator errored
func (h *hub) info(c *Client) byte {
	info := uint8(0)
	if c.compression {
		info |= types.Bit0
	}
	if h.emu != nil {
		switch h.emu.Status() {
		case emulator.Paused:
			info |= types.Bit1
		case emulator.Errored:
			info |= types.Bit2
		}
	}

	return info
}

// sync sends c everything it needs to draw the next frame:
// its settings, the frame cache and the current frame.
func (h *hub) sync(c *Client) {
	h.send(c, []byte{ClientInfo, c.ID, h.info(c)})

	var data []byte
	for i, e := range h.cache(c).entries {
		if !e.used {
			continue
		}
		data = binary.LittleEndian.AppendUint16(data, uint16(i))
		data = binary.LittleEndian.AppendUint16(data, uint16(len(e.data)))
		data = append(data, e.data...)
	}
	h.send(c, append([]byte{CacheSync}, data...))

	if h.current == nil {
		return
	}
	if frame, err := h.encode(h.current, c.compression); err == nil {
		h.send(c, append([]byte{FrameSync}, frame...))
	}
}

func (h *hub) cache(c *Client) *cache {
	if c.compression {
		return h.caches[1]
	}
	return h.caches[0]
}

// frame sends f to every client, as a cache slot reference if
// the client already holds it.
func (h *hub) frame(f []byte) {
	h.current = pack(f)

	var msgs [2][]byte
	for c := range h.clients {
		variant := 0
		if c.compression {
			variant = 1
		}

		if msgs[variant] == nil {
			data, err := h.encode(h.current, c.compression)
			if err != nil {
				h.log.Errorf("unable to encode frame: %s", err)
				continue
			}

			slot, hit := h.caches[variant].store(xxhash.Sum64(data), data)
			if hit {
				msgs[variant] = slotMessage(FrameCache, slot, nil)
			} else {
				msgs[variant] = slotMessage(Frame, slot, data)
			}
		}

		h.send(c, msgs[variant])
	}
}

func (h *hub) encode(packed []byte, compression bool) ([]byte, error) {
	if !compression {
		return packed, nil
	}
	return cbrotli.Encode(packed, cbrotli.WriterOptions{Quality: h.quality})
}

func slotMessage(t Type, slot int, data []byte) []byte {
	msg := []byte{t}
	msg = binary.LittleEndian.AppendUint16(msg, uint16(slot))
	return append(msg, data...)
}
