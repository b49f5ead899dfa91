package web

import (
	"errors"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/gochip8/internal/keypad"
)

var errNoRTT = errors.New("web: round trip time unavailable")

const (
	writeWait  = 5 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Client is a single websocket connection.
type Client struct {
	hub  *hub
	conn *websocket.Conn
	Send chan []byte
	ID   uint8

	// compression is negotiated when connecting, and decides
	// which encoding of each frame the client receives
	compression bool

	mu         sync.Mutex
	avgLatency uint16 // milliseconds
}

// latency returns the average round trip time of the client.
func (c *Client) latency() uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.avgLatency
}

// ReadPump reads messages from the client until the connection
// is closed.
func (c *Client) ReadPump() {
	// deferred function to handle unregistering client
	// and closing connection
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) == 0 {
			continue
		}

		switch message[0] {
		case KeyEvent:
			if len(message) < 3 {
				continue
			}
			r, _ := utf8.DecodeRune(message[2:])
			k, ok := keypad.Lookup(r)
			if !ok {
				continue
			}
			c.hub.key(k, message[1] != 0)
		case Control:
			if len(message) < 2 {
				continue
			}
			c.hub.control(c, message[1])
		case KeepAlive:
		case Closing: // websocket client request close
			return
		}
	}
}

// WritePump writes queued messages to the client until the hub
// closes Send.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	// deferred function to handle unregistering client
	// and closing connection
	defer func() {
		ticker.Stop()
		c.hub.leave(c)
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			// hub closed the connection
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// try to write message to client
			if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				return
			}

			// update average latency
			if us, err := rtt(c.conn.UnderlyingConn()); err == nil {
				c.mu.Lock()
				c.avgLatency = uint16((uint32(c.avgLatency)*9 + us/1000) / 10)
				c.mu.Unlock()
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
